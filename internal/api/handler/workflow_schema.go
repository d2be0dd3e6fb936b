package handler

import (
	"github.com/docukit/approval-system/internal/core/domain"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createCompanyRequest struct {
	Name string `json:"name" validate:"required"`
}

type createApplicantRequest struct {
	Name string `json:"name" validate:"required"`
}

type proformaRequest struct {
	Content string `json:"content"`
}

type documentKitRequest struct {
	Documents []string `json:"documents" validate:"required,min=1"`
}

// approveRequest optionally carries the document kit so the admin can approve
// and assemble the kit in one request. Approval and kit assignment remain two
// independent commands underneath.
type approveRequest struct {
	Documents []string `json:"documents"`
}

type proformaResponse struct {
	Content string `json:"content"`
}

// applicantView is the applicant record plus its derived workflow stage.
type applicantView struct {
	domain.Applicant
	Stage domain.Stage `json:"stage"`
}

func toApplicantView(a domain.Applicant) applicantView {
	return applicantView{Applicant: a, Stage: a.Stage()}
}

func toApplicantViews(as []domain.Applicant) []applicantView {
	out := make([]applicantView, 0, len(as))
	for _, a := range as {
		out = append(out, toApplicantView(a))
	}
	return out
}

type companyDashboard struct {
	Company    domain.Company  `json:"company"`
	Applicants []applicantView `json:"applicants"`
}

type adminDashboard struct {
	Companies  []domain.Company `json:"companies"`
	Applicants []applicantView  `json:"applicants"`
	// Pending lists submitted-but-not-yet-approved applicants, the admin's
	// work queue.
	Pending []applicantView `json:"pending"`
}

type analyticsReport struct {
	Events []domain.AnalyticsEvent  `json:"events"`
	Counts map[domain.EventType]int `json:"counts"`
	Total  int                      `json:"total"`
}
