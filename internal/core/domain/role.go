package domain

import "errors"

// Role identifies the kind of actor a credential belongs to.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCompany   Role = "company"
	RoleApplicant Role = "applicant"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleApplicant:
		return true
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNameRequired = errors.New("name is required")
var ErrForbidden = errors.New("access forbidden")
