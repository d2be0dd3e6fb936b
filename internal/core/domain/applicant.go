package domain

import "errors"

var ErrApplicantNotFound = errors.New("applicant not found")
var ErrAlreadySubmitted = errors.New("proforma already submitted")
var ErrBlankSubmission = errors.New("cannot submit a blank proforma")

// Stage is the derived position of an applicant in the approval workflow.
type Stage string

const (
	StageDraft     Stage = "draft"
	StageSubmitted Stage = "submitted"
	StageApproved  Stage = "approved"
)

// Applicant is an individual created under a company. Its lifecycle is a
// strictly forward state machine: draft → submitted → approved. The submitted
// and approved flags are monotonic — no command ever clears them.
type Applicant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CompanyID     string   `json:"companyId"`
	Proforma1     string   `json:"proforma1"`
	Submitted     bool     `json:"submitted"`
	Approved      bool     `json:"approved"`
	Documents     []string `json:"documents"`
	CredentialsID string   `json:"credentialsId"`
}

// Stage derives the workflow stage from the two monotonic flags.
func (a Applicant) Stage() Stage {
	switch {
	case a.Approved:
		return StageApproved
	case a.Submitted:
		return StageSubmitted
	}
	return StageDraft
}
