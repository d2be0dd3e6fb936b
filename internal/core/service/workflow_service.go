package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/core/state"
)

// WorkflowService drives the company and applicant lifecycles. Validation
// happens here, before any command is dispatched: the reducer itself stays a
// total function that no-ops on unknown ids.
type WorkflowService struct {
	container *state.Container
	analytics ports.AnalyticsService
	log       zerolog.Logger
}

func NewWorkflowService(container *state.Container, analytics ports.AnalyticsService, log zerolog.Logger) *WorkflowService {
	return &WorkflowService{container: container, analytics: analytics, log: log}
}

// CreateCompany inserts a company together with its company-role credential in
// a single atomic transition and returns the generated login for out-of-band
// distribution.
func (s *WorkflowService) CreateCompany(ctx context.Context, name string) (ports.CompanyGrant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.CompanyGrant{}, domain.ErrNameRequired
	}

	companyID := newID()
	cred := domain.Credential{
		ID:       newID(),
		Username: generateUsername(companyUserPrefix, name),
		Password: randomPassword(),
		Role:     domain.RoleCompany,
		LinkedID: companyID,
	}
	company := domain.Company{
		ID:            companyID,
		Name:          name,
		Proforma2:     "",
		Applicants:    []string{},
		CredentialsID: cred.ID,
	}

	if err := s.container.Dispatch(ctx, state.CreateCompany{Company: company, Credential: cred}); err != nil {
		s.log.Warn().Err(err).Str("company_id", companyID).Msg("company not persisted")
	}

	s.record(ctx, ports.EventInput{
		Type:      domain.EventCompanyCreated,
		ActorRole: domain.RoleAdmin,
		CompanyID: companyID,
		Meta:      map[string]any{"name": name},
	})
	s.log.Info().Str("company_id", companyID).Str("name", name).Msg("company created")

	return ports.CompanyGrant{CompanyID: companyID, Username: cred.Username, Password: cred.Password}, nil
}

// SaveProforma2 overwrites the company's proforma 2 text. Unlimited
// resubmission is allowed.
func (s *WorkflowService) SaveProforma2(ctx context.Context, companyID, content string) error {
	if _, ok := s.Company(companyID); !ok {
		return domain.ErrCompanyNotFound
	}
	if err := s.container.Dispatch(ctx, state.SaveProforma2{CompanyID: companyID, Content: content}); err != nil {
		s.log.Warn().Err(err).Str("company_id", companyID).Msg("proforma 2 not persisted")
	}
	s.record(ctx, ports.EventInput{
		Type:      domain.EventProforma2Saved,
		ActorRole: domain.RoleCompany,
		CompanyID: companyID,
	})
	return nil
}

// CreateApplicant inserts an applicant, its credential, and the back-link into
// the owning company's list as one atomic transition. The company must exist.
func (s *WorkflowService) CreateApplicant(ctx context.Context, companyID, name string) (ports.ApplicantGrant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.ApplicantGrant{}, domain.ErrNameRequired
	}
	if _, ok := s.Company(companyID); !ok {
		return ports.ApplicantGrant{}, domain.ErrCompanyNotFound
	}

	applicantID := newID()
	cred := domain.Credential{
		ID:       newID(),
		Username: generateUsername(applicantUserPrefix, name),
		Password: randomPassword(),
		Role:     domain.RoleApplicant,
		LinkedID: applicantID,
	}
	applicant := domain.Applicant{
		ID:            applicantID,
		Name:          name,
		CompanyID:     companyID,
		Proforma1:     "",
		Documents:     []string{},
		CredentialsID: cred.ID,
	}

	if err := s.container.Dispatch(ctx, state.CreateApplicant{Applicant: applicant, Credential: cred}); err != nil {
		s.log.Warn().Err(err).Str("applicant_id", applicantID).Msg("applicant not persisted")
	}

	s.record(ctx, ports.EventInput{
		Type:        domain.EventApplicantCreated,
		ActorRole:   domain.RoleCompany,
		CompanyID:   companyID,
		ApplicantID: applicantID,
		Meta:        map[string]any{"name": name},
	})
	s.log.Info().Str("applicant_id", applicantID).Str("company_id", companyID).Msg("applicant created")

	return ports.ApplicantGrant{ApplicantID: applicantID, Username: cred.Username, Password: cred.Password}, nil
}

// SaveProforma1 overwrites the applicant's proforma 1 wholesale. Editing is
// rejected once submitted; up to that point it may be called any number of
// times.
func (s *WorkflowService) SaveProforma1(ctx context.Context, applicantID, content string) error {
	a, ok := s.Applicant(applicantID)
	if !ok {
		return domain.ErrApplicantNotFound
	}
	if a.Submitted {
		return domain.ErrAlreadySubmitted
	}
	if err := s.container.Dispatch(ctx, state.SaveProforma1{ApplicantID: applicantID, Content: content}); err != nil {
		s.log.Warn().Err(err).Str("applicant_id", applicantID).Msg("proforma 1 not persisted")
	}
	s.record(ctx, ports.EventInput{
		Type:        domain.EventProforma1Saved,
		ActorRole:   domain.RoleApplicant,
		ApplicantID: applicantID,
	})
	return nil
}

// SubmitProforma1 moves the applicant from draft to submitted. Blank content
// is rejected; submitting an already-submitted applicant is a no-op.
func (s *WorkflowService) SubmitProforma1(ctx context.Context, applicantID string) error {
	a, ok := s.Applicant(applicantID)
	if !ok {
		return domain.ErrApplicantNotFound
	}
	if a.Submitted {
		return nil
	}
	if strings.TrimSpace(a.Proforma1) == "" {
		return domain.ErrBlankSubmission
	}
	if err := s.container.Dispatch(ctx, state.SubmitProforma1{ApplicantID: applicantID}); err != nil {
		s.log.Warn().Err(err).Str("applicant_id", applicantID).Msg("submission not persisted")
	}
	s.record(ctx, ports.EventInput{
		Type:        domain.EventProforma1Submitted,
		ActorRole:   domain.RoleApplicant,
		ApplicantID: applicantID,
	})
	s.log.Info().Str("applicant_id", applicantID).Msg("proforma 1 submitted")
	return nil
}

// ApproveApplicant marks the applicant approved. Approval is independent of
// document-kit assignment; an approval with an empty kit is valid state.
func (s *WorkflowService) ApproveApplicant(ctx context.Context, applicantID string) error {
	a, ok := s.Applicant(applicantID)
	if !ok {
		return domain.ErrApplicantNotFound
	}
	if err := s.container.Dispatch(ctx, state.ApproveApplicant{ApplicantID: applicantID}); err != nil {
		s.log.Warn().Err(err).Str("applicant_id", applicantID).Msg("approval not persisted")
	}
	s.record(ctx, ports.EventInput{
		Type:        domain.EventApplicantApproved,
		ActorRole:   domain.RoleAdmin,
		CompanyID:   a.CompanyID,
		ApplicantID: applicantID,
	})
	s.log.Info().Str("applicant_id", applicantID).Msg("applicant approved")
	return nil
}

// SetDocumentKit wholesale-replaces the applicant's document list. The list is
// trusted verbatim.
func (s *WorkflowService) SetDocumentKit(ctx context.Context, applicantID string, documents []string) error {
	a, ok := s.Applicant(applicantID)
	if !ok {
		return domain.ErrApplicantNotFound
	}
	if err := s.container.Dispatch(ctx, state.SetDocumentKit{ApplicantID: applicantID, Documents: documents}); err != nil {
		s.log.Warn().Err(err).Str("applicant_id", applicantID).Msg("document kit not persisted")
	}
	s.record(ctx, ports.EventInput{
		Type:        domain.EventKitCreated,
		ActorRole:   domain.RoleAdmin,
		CompanyID:   a.CompanyID,
		ApplicantID: applicantID,
		Meta:        map[string]any{"documents": len(documents)},
	})
	return nil
}

func (s *WorkflowService) Company(id string) (domain.Company, bool) {
	return s.container.Snapshot().Company(id)
}

func (s *WorkflowService) Applicant(id string) (domain.Applicant, bool) {
	return s.container.Snapshot().Applicant(id)
}

// Companies lists all companies in creation order (ULIDs sort by time).
func (s *WorkflowService) Companies() []domain.Company {
	snap := s.container.Snapshot()
	out := make([]domain.Company, 0, len(snap.Companies))
	for _, c := range snap.Companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Applicants lists all applicants in creation order.
func (s *WorkflowService) Applicants() []domain.Applicant {
	snap := s.container.Snapshot()
	out := make([]domain.Applicant, 0, len(snap.Applicants))
	for _, a := range snap.Applicants {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// record appends an analytics event, non-fatally.
func (s *WorkflowService) record(ctx context.Context, in ports.EventInput) {
	if err := s.analytics.Record(ctx, in); err != nil {
		s.log.Warn().Err(err).Str("type", string(in.Type)).Msg("failed to record event")
	}
}
