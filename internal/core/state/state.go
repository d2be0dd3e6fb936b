// Package state holds the single application aggregate and the closed command
// set that mutates it. Every mutation is a pure transition function from the
// current aggregate value to a new one; nothing outside this package writes to
// the aggregate. The Container serializes command application and persists the
// whole aggregate after every change.
package state

import "github.com/docukit/approval-system/internal/core/domain"

// StorageKey is the fixed key the aggregate is persisted under.
const StorageKey = "app_state_v1"

// State is the full application aggregate: all credentials, companies and
// applicants, plus the single "who is logged in" pointer.
type State struct {
	Credentials   map[string]domain.Credential `json:"credentials"`
	Companies     map[string]domain.Company    `json:"companies"`
	Applicants    map[string]domain.Applicant  `json:"applicants"`
	CurrentUserID string                       `json:"currentUserId,omitempty"`
}

// Default returns the aggregate for a first run: the bootstrap admin
// credential and nothing else.
func Default(admin domain.Credential) State {
	return State{
		Credentials: map[string]domain.Credential{admin.ID: admin},
		Companies:   map[string]domain.Company{},
		Applicants:  map[string]domain.Applicant{},
	}
}

// CurrentCredential resolves the session pointer, if any.
func (s State) CurrentCredential() (domain.Credential, bool) {
	if s.CurrentUserID == "" {
		return domain.Credential{}, false
	}
	c, ok := s.Credentials[s.CurrentUserID]
	return c, ok
}

// FindCredential scans for an exact, case-sensitive username/password match.
func (s State) FindCredential(username, password string) (domain.Credential, bool) {
	for _, c := range s.Credentials {
		if c.Username == username && c.Password == password {
			return c, true
		}
	}
	return domain.Credential{}, false
}

// HasAdmin reports whether a credential with the admin role and the given
// username exists.
func (s State) HasAdmin(username string) bool {
	for _, c := range s.Credentials {
		if c.Role == domain.RoleAdmin && c.Username == username {
			return true
		}
	}
	return false
}

// Company returns the company by id.
func (s State) Company(id string) (domain.Company, bool) {
	c, ok := s.Companies[id]
	return c, ok
}

// Applicant returns the applicant by id.
func (s State) Applicant(id string) (domain.Applicant, bool) {
	a, ok := s.Applicants[id]
	return a, ok
}

// Clone returns a deep copy of the aggregate, safe to hand outside the
// container's lock.
func (s State) Clone() State {
	out := State{
		Credentials:   make(map[string]domain.Credential, len(s.Credentials)),
		Companies:     make(map[string]domain.Company, len(s.Companies)),
		Applicants:    make(map[string]domain.Applicant, len(s.Applicants)),
		CurrentUserID: s.CurrentUserID,
	}
	for id, c := range s.Credentials {
		out.Credentials[id] = c
	}
	for id, c := range s.Companies {
		c.Applicants = cloneStrings(c.Applicants)
		out.Companies[id] = c
	}
	for id, a := range s.Applicants {
		a.Documents = cloneStrings(a.Documents)
		out.Applicants[id] = a
	}
	return out
}

// cloneStrings copies a slice, preserving the nil / empty distinction so a
// cloned aggregate compares deep-equal to its source.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// normalized ensures all maps are non-nil, so a rehydrated aggregate behaves
// like a freshly built one.
func (s State) normalized() State {
	if s.Credentials == nil {
		s.Credentials = map[string]domain.Credential{}
	}
	if s.Companies == nil {
		s.Companies = map[string]domain.Company{}
	}
	if s.Applicants == nil {
		s.Applicants = map[string]domain.Applicant{}
	}
	return s
}

// withCredential returns a copy of s with the credential upserted.
func (s State) withCredential(c domain.Credential) State {
	creds := make(map[string]domain.Credential, len(s.Credentials)+1)
	for id, v := range s.Credentials {
		creds[id] = v
	}
	creds[c.ID] = c
	s.Credentials = creds
	return s
}

// withCompany returns a copy of s with the company upserted.
func (s State) withCompany(c domain.Company) State {
	companies := make(map[string]domain.Company, len(s.Companies)+1)
	for id, v := range s.Companies {
		companies[id] = v
	}
	companies[c.ID] = c
	s.Companies = companies
	return s
}

// withApplicant returns a copy of s with the applicant upserted.
func (s State) withApplicant(a domain.Applicant) State {
	applicants := make(map[string]domain.Applicant, len(s.Applicants)+1)
	for id, v := range s.Applicants {
		applicants[id] = v
	}
	applicants[a.ID] = a
	s.Applicants = applicants
	return s
}
