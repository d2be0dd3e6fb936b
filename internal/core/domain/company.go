package domain

import "errors"

var ErrCompanyNotFound = errors.New("company not found")

// Company is a foreign company enrolled by the admin. It owns its applicants
// by id reference only; the Applicant records themselves live in the state
// aggregate's applicant table.
type Company struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Proforma2     string   `json:"proforma2"`
	Applicants    []string `json:"applicants"`
	CredentialsID string   `json:"credentialsId"`
}
