package domain

// Credential models a username/password record used for login and for linking
// a non-admin actor to the Company or Applicant it operates on.
//
// Passwords are stored and compared in plaintext. That is the documented
// contract of this system (local single-user storage, no trust boundary), not
// an oversight.
type Credential struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	// LinkedID references the owning Company or Applicant for company and
	// applicant roles. Empty for admin credentials.
	LinkedID string `json:"linkedId,omitempty"`
}
