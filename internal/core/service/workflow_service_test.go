package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/core/state"
	"github.com/docukit/approval-system/internal/infrastructure/storage/memory"
)

// recordingAnalytics captures event inputs so tests can assert what the
// services emit without a real store behind them.
type recordingAnalytics struct {
	mu     sync.Mutex
	inputs []ports.EventInput
	err    error
}

func (r *recordingAnalytics) Record(_ context.Context, in ports.EventInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.inputs = append(r.inputs, in)
	return nil
}

func (r *recordingAnalytics) Events(context.Context) ([]domain.AnalyticsEvent, error) {
	return nil, nil
}

func (r *recordingAnalytics) Filter(context.Context, ports.EventFilter) ([]domain.AnalyticsEvent, error) {
	return nil, nil
}

func (r *recordingAnalytics) CountsByType([]domain.AnalyticsEvent) map[domain.EventType]int {
	return nil
}

func (r *recordingAnalytics) Clear(context.Context) error { return nil }

func (r *recordingAnalytics) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.inputs))
	for _, in := range r.inputs {
		out = append(out, in.Type)
	}
	return out
}

func testAdmin() domain.Credential {
	return domain.Credential{ID: "cred-admin", Username: "aarnav", Password: "aarnav", Role: domain.RoleAdmin}
}

func newTestWorkflow(t *testing.T) (*WorkflowService, *recordingAnalytics) {
	t.Helper()
	container := state.NewContainer(memory.New(), testAdmin(), zerolog.Nop())
	if err := container.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	analytics := &recordingAnalytics{}
	return NewWorkflowService(container, analytics, zerolog.Nop()), analytics
}

func TestCreateCompany(t *testing.T) {
	svc, analytics := newTestWorkflow(t)
	ctx := context.Background()

	grant, err := svc.CreateCompany(ctx, "  Acme Corp  ")
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	if grant.Username == "" || grant.Password == "" {
		t.Fatalf("grant missing generated login: %+v", grant)
	}

	company, ok := svc.Company(grant.CompanyID)
	if !ok {
		t.Fatalf("company not stored")
	}
	if company.Name != "Acme Corp" {
		t.Errorf("name not trimmed: %q", company.Name)
	}
	if company.Proforma2 != "" || len(company.Applicants) != 0 {
		t.Errorf("company not pristine: %+v", company)
	}

	got := analytics.types()
	if len(got) != 1 || got[0] != domain.EventCompanyCreated {
		t.Errorf("events = %v, want [company_created]", got)
	}
}

func TestCreateCompany_BlankName(t *testing.T) {
	svc, analytics := newTestWorkflow(t)

	if _, err := svc.CreateCompany(context.Background(), "   "); !errors.Is(err, domain.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if len(svc.Companies()) != 0 {
		t.Fatalf("blank name must not create a company")
	}
	if len(analytics.types()) != 0 {
		t.Fatalf("rejected create must not emit events")
	}
}

func TestCreateApplicant_LinksBothWays(t *testing.T) {
	svc, analytics := newTestWorkflow(t)
	ctx := context.Background()

	company, _ := svc.CreateCompany(ctx, "Acme")
	grant, err := svc.CreateApplicant(ctx, company.CompanyID, "Jane Doe")
	if err != nil {
		t.Fatalf("create applicant: %v", err)
	}

	applicant, ok := svc.Applicant(grant.ApplicantID)
	if !ok {
		t.Fatalf("applicant not stored")
	}
	if applicant.CompanyID != company.CompanyID {
		t.Errorf("applicant points at %q, want %q", applicant.CompanyID, company.CompanyID)
	}

	stored, _ := svc.Company(company.CompanyID)
	found := 0
	for _, id := range stored.Applicants {
		if id == grant.ApplicantID {
			found++
		}
	}
	if found != 1 {
		t.Errorf("company lists applicant %d times, want exactly once", found)
	}

	got := analytics.types()
	if len(got) != 2 || got[1] != domain.EventApplicantCreated {
		t.Errorf("events = %v, want [..., applicant_created]", got)
	}
}

func TestCreateApplicant_UnknownCompany(t *testing.T) {
	svc, _ := newTestWorkflow(t)

	if _, err := svc.CreateApplicant(context.Background(), "co-missing", "Jane"); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	if len(svc.Applicants()) != 0 {
		t.Fatalf("orphan applicant created")
	}
}

func TestSubmitProforma1_Lifecycle(t *testing.T) {
	svc, analytics := newTestWorkflow(t)
	ctx := context.Background()

	company, _ := svc.CreateCompany(ctx, "Acme")
	grant, _ := svc.CreateApplicant(ctx, company.CompanyID, "Jane")

	// Blank draft cannot be submitted.
	if err := svc.SubmitProforma1(ctx, grant.ApplicantID); !errors.Is(err, domain.ErrBlankSubmission) {
		t.Fatalf("expected ErrBlankSubmission, got %v", err)
	}
	if err := svc.SaveProforma1(ctx, grant.ApplicantID, "   \n\t"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.SubmitProforma1(ctx, grant.ApplicantID); !errors.Is(err, domain.ErrBlankSubmission) {
		t.Fatalf("whitespace-only draft must be rejected, got %v", err)
	}

	if err := svc.SaveProforma1(ctx, grant.ApplicantID, "my answers"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.SubmitProforma1(ctx, grant.ApplicantID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	a, _ := svc.Applicant(grant.ApplicantID)
	if !a.Submitted || a.Stage() != domain.StageSubmitted {
		t.Fatalf("expected submitted stage, got %+v", a)
	}

	// Editing after submission is rejected; re-submitting is a silent no-op.
	if err := svc.SaveProforma1(ctx, grant.ApplicantID, "revised"); !errors.Is(err, domain.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
	if err := svc.SubmitProforma1(ctx, grant.ApplicantID); err != nil {
		t.Fatalf("repeat submit should no-op, got %v", err)
	}

	a, _ = svc.Applicant(grant.ApplicantID)
	if a.Proforma1 != "my answers" {
		t.Fatalf("submitted content overwritten: %q", a.Proforma1)
	}

	submitted := 0
	for _, tp := range analytics.types() {
		if tp == domain.EventProforma1Submitted {
			submitted++
		}
	}
	if submitted != 1 {
		t.Fatalf("proforma1_submitted recorded %d times, want 1", submitted)
	}
}

func TestApproveAndDocumentKit(t *testing.T) {
	svc, analytics := newTestWorkflow(t)
	ctx := context.Background()

	company, _ := svc.CreateCompany(ctx, "Acme")
	grant, _ := svc.CreateApplicant(ctx, company.CompanyID, "Jane")

	// Approval does not require a prior submission or a kit.
	if err := svc.ApproveApplicant(ctx, grant.ApplicantID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	a, _ := svc.Applicant(grant.ApplicantID)
	if !a.Approved || a.Stage() != domain.StageApproved {
		t.Fatalf("expected approved, got %+v", a)
	}

	if err := svc.SetDocumentKit(ctx, grant.ApplicantID, []string{"passport-copy", "offer-letter"}); err != nil {
		t.Fatalf("set kit: %v", err)
	}
	if err := svc.SetDocumentKit(ctx, grant.ApplicantID, []string{"visa-form"}); err != nil {
		t.Fatalf("set kit: %v", err)
	}
	a, _ = svc.Applicant(grant.ApplicantID)
	if len(a.Documents) != 1 || a.Documents[0] != "visa-form" {
		t.Fatalf("kit must replace wholesale, got %v", a.Documents)
	}

	got := analytics.types()
	want := []domain.EventType{
		domain.EventCompanyCreated,
		domain.EventApplicantCreated,
		domain.EventApplicantApproved,
		domain.EventKitCreated,
		domain.EventKitCreated,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestMutations_UnknownApplicant(t *testing.T) {
	svc, _ := newTestWorkflow(t)
	ctx := context.Background()

	if err := svc.SaveProforma1(ctx, "ap-missing", "x"); !errors.Is(err, domain.ErrApplicantNotFound) {
		t.Errorf("SaveProforma1: %v", err)
	}
	if err := svc.SubmitProforma1(ctx, "ap-missing"); !errors.Is(err, domain.ErrApplicantNotFound) {
		t.Errorf("SubmitProforma1: %v", err)
	}
	if err := svc.ApproveApplicant(ctx, "ap-missing"); !errors.Is(err, domain.ErrApplicantNotFound) {
		t.Errorf("ApproveApplicant: %v", err)
	}
	if err := svc.SetDocumentKit(ctx, "ap-missing", []string{"x"}); !errors.Is(err, domain.ErrApplicantNotFound) {
		t.Errorf("SetDocumentKit: %v", err)
	}
	if err := svc.SaveProforma2(ctx, "co-missing", "x"); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("SaveProforma2: %v", err)
	}
}

func TestAnalyticsFailureIsNonFatal(t *testing.T) {
	svc, analytics := newTestWorkflow(t)
	analytics.err = errors.New("event store down")

	grant, err := svc.CreateCompany(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("create company must survive analytics failure: %v", err)
	}
	if _, ok := svc.Company(grant.CompanyID); !ok {
		t.Fatalf("company lost")
	}
}
