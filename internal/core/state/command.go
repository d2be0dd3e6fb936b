package state

import "github.com/docukit/approval-system/internal/core/domain"

// Command is one step of the closed mutation set. Apply is a pure transition
// function: it never mutates the input aggregate and either fully applies or
// returns the input unchanged, so no partially applied command is ever
// observable.
type Command interface {
	// Name labels the command for logs and metrics.
	Name() string
	Apply(s State) State
}

// Login points the session at a credential id.
type Login struct {
	UserID string
}

func (Login) Name() string { return "login" }

func (c Login) Apply(s State) State {
	s.CurrentUserID = c.UserID
	return s
}

// Logout clears the session pointer. Idempotent.
type Logout struct{}

func (Logout) Name() string { return "logout" }

func (Logout) Apply(s State) State {
	s.CurrentUserID = ""
	return s
}

// CreateCompany inserts a company and its credential in one transition.
type CreateCompany struct {
	Company    domain.Company
	Credential domain.Credential
}

func (CreateCompany) Name() string { return "create_company" }

func (c CreateCompany) Apply(s State) State {
	return s.withCredential(c.Credential).withCompany(c.Company)
}

// CreateApplicant inserts an applicant and its credential, and appends the
// applicant id to the owning company's list, all in one transition. When the
// company is unknown the applicant is still inserted without a back-link,
// preserving the permissive behavior of the source design; callers that want
// to forbid orphans must check company existence before dispatching.
type CreateApplicant struct {
	Applicant  domain.Applicant
	Credential domain.Credential
}

func (CreateApplicant) Name() string { return "create_applicant" }

func (c CreateApplicant) Apply(s State) State {
	s = s.withCredential(c.Credential).withApplicant(c.Applicant)
	company, ok := s.Companies[c.Applicant.CompanyID]
	if !ok {
		return s
	}
	company.Applicants = append(cloneStrings(company.Applicants), c.Applicant.ID)
	return s.withCompany(company)
}

// SaveProforma2 overwrites a company's proforma 2 text. No-op on unknown id.
type SaveProforma2 struct {
	CompanyID string
	Content   string
}

func (SaveProforma2) Name() string { return "save_proforma2" }

func (c SaveProforma2) Apply(s State) State {
	company, ok := s.Companies[c.CompanyID]
	if !ok {
		return s
	}
	company.Proforma2 = c.Content
	return s.withCompany(company)
}

// SaveProforma1 overwrites an applicant's proforma 1 text. No-op on unknown id.
type SaveProforma1 struct {
	ApplicantID string
	Content     string
}

func (SaveProforma1) Name() string { return "save_proforma1" }

func (c SaveProforma1) Apply(s State) State {
	a, ok := s.Applicants[c.ApplicantID]
	if !ok {
		return s
	}
	a.Proforma1 = c.Content
	return s.withApplicant(a)
}

// SubmitProforma1 marks the applicant submitted. The flag is monotonic: no
// command in the set clears it. Idempotent.
type SubmitProforma1 struct {
	ApplicantID string
}

func (SubmitProforma1) Name() string { return "submit_proforma1" }

func (c SubmitProforma1) Apply(s State) State {
	a, ok := s.Applicants[c.ApplicantID]
	if !ok {
		return s
	}
	a.Submitted = true
	return s.withApplicant(a)
}

// ApproveApplicant marks the applicant approved. Monotonic, idempotent, and
// independent of document-kit assignment.
type ApproveApplicant struct {
	ApplicantID string
}

func (ApproveApplicant) Name() string { return "approve_applicant" }

func (c ApproveApplicant) Apply(s State) State {
	a, ok := s.Applicants[c.ApplicantID]
	if !ok {
		return s
	}
	a.Approved = true
	return s.withApplicant(a)
}

// SetDocumentKit wholesale-replaces the applicant's document list. The
// supplied list is trusted verbatim: no ordering or dedup is imposed.
type SetDocumentKit struct {
	ApplicantID string
	Documents   []string
}

func (SetDocumentKit) Name() string { return "set_document_kit" }

func (c SetDocumentKit) Apply(s State) State {
	a, ok := s.Applicants[c.ApplicantID]
	if !ok {
		return s
	}
	a.Documents = cloneStrings(c.Documents)
	return s.withApplicant(a)
}
