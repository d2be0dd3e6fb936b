package ports

import (
	"context"

	"github.com/docukit/approval-system/internal/core/domain"
)

// EventInput is an analytics event before the log assigns id and timestamp.
type EventInput struct {
	Type        domain.EventType
	ActorRole   domain.Role
	ActorID     string
	CompanyID   string
	ApplicantID string
	Meta        map[string]any
}

// EventFilter narrows the reporting view. Zero values mean "any".
type EventFilter struct {
	Month       int // 1-12
	Year        int
	CompanyID   string
	ApplicantID string
	Type        domain.EventType
}

// AnalyticsService is the append-only event log and its reporting view. The
// log is one-directional: the identity and workflow services write to it and
// never read it, and it is never replayed into the state aggregate.
type AnalyticsService interface {
	// Record assigns a fresh id and timestamp and prepends the event
	// (newest-first ordering).
	Record(ctx context.Context, in EventInput) error
	// Events returns the full log, newest first.
	Events(ctx context.Context) ([]domain.AnalyticsEvent, error)
	// Filter returns the events matching f, newest first.
	Filter(ctx context.Context, f EventFilter) ([]domain.AnalyticsEvent, error)
	// CountsByType aggregates the given events per event type.
	CountsByType(events []domain.AnalyticsEvent) map[domain.EventType]int
	// Clear truncates the log to empty.
	Clear(ctx context.Context) error
}
