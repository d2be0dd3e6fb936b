package ports

import (
	"context"

	"github.com/docukit/approval-system/internal/core/domain"
)

// CompanyGrant is returned from company creation: the generated login, for
// out-of-band distribution to the company. There is no notification subsystem.
type CompanyGrant struct {
	CompanyID string `json:"companyId"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// ApplicantGrant is the applicant-creation counterpart of CompanyGrant.
type ApplicantGrant struct {
	ApplicantID string `json:"applicantId"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// WorkflowService drives the company and applicant lifecycles over the state
// container. Validation lives here: the container's commands are no-ops on
// unknown ids, while this layer reports ErrCompanyNotFound and friends.
type WorkflowService interface {
	CreateCompany(ctx context.Context, name string) (CompanyGrant, error)
	SaveProforma2(ctx context.Context, companyID, content string) error

	CreateApplicant(ctx context.Context, companyID, name string) (ApplicantGrant, error)
	SaveProforma1(ctx context.Context, applicantID, content string) error
	// SubmitProforma1 moves the applicant from draft to submitted. Blank
	// proforma content is rejected; re-submitting is an idempotent no-op.
	SubmitProforma1(ctx context.Context, applicantID string) error
	ApproveApplicant(ctx context.Context, applicantID string) error
	// SetDocumentKit wholesale-replaces the applicant's document list.
	SetDocumentKit(ctx context.Context, applicantID string, documents []string) error

	Company(id string) (domain.Company, bool)
	Applicant(id string) (domain.Applicant, bool)
	Companies() []domain.Company
	Applicants() []domain.Applicant
}
