package domain

// EventType is the fixed vocabulary of recordable domain actions.
type EventType string

const (
	EventLoginSuccess       EventType = "login_success"
	EventCompanyCreated     EventType = "company_created"
	EventApplicantCreated   EventType = "applicant_created"
	EventProforma1Saved     EventType = "proforma1_saved"
	EventProforma1Submitted EventType = "proforma1_submitted"
	EventProforma2Saved     EventType = "proforma2_saved"
	EventApplicantApproved  EventType = "applicant_approved"
	EventKitCreated         EventType = "kit_created"
)

// AnalyticsEvent is an immutable record of a notable domain action. Events are
// one-directional: services append them, the reporting view reads them, and
// nothing ever replays them back into the state aggregate.
type AnalyticsEvent struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Timestamp   int64          `json:"timestamp"` // unix milliseconds
	ActorRole   Role           `json:"actorRole"`
	ActorID     string         `json:"actorId,omitempty"`
	CompanyID   string         `json:"companyId,omitempty"`
	ApplicantID string         `json:"applicantId,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}
