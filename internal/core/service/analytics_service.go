package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/pkg/metrics"
)

// EventsStorageKey is the fixed key the event log is persisted under,
// independent of the state aggregate's key.
const EventsStorageKey = "analytics_events_v1"

// AnalyticsService is the append-only event log. Every operation is a full
// read-modify-write of the persisted sequence, newest first. The log is never
// read by the identity or workflow services and never feeds back into the
// state aggregate.
type AnalyticsService struct {
	mu    sync.Mutex
	store ports.KVStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewAnalyticsService(store ports.KVStore, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, log: log, now: time.Now}
}

// Record assigns a fresh id and the current timestamp and prepends the event.
func (s *AnalyticsService) Record(ctx context.Context, in ports.EventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAll(ctx)
	evt := domain.AnalyticsEvent{
		ID:          newID(),
		Type:        in.Type,
		Timestamp:   s.now().UnixMilli(),
		ActorRole:   in.ActorRole,
		ActorID:     in.ActorID,
		CompanyID:   in.CompanyID,
		ApplicantID: in.ApplicantID,
		Meta:        in.Meta,
	}

	if err := s.writeAll(ctx, append([]domain.AnalyticsEvent{evt}, all...)); err != nil {
		metrics.EventsRecordFailuresTotal.Inc()
		return fmt.Errorf("record event: %w", err)
	}
	metrics.EventsRecordedTotal.WithLabelValues(string(evt.Type)).Inc()
	return nil
}

// Events returns the full log, newest first.
func (s *AnalyticsService) Events(ctx context.Context) ([]domain.AnalyticsEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(ctx), nil
}

// Filter returns the events matching f, newest first. Month and year compare
// against the event timestamp in local time, matching the reporting view this
// log was built for.
func (s *AnalyticsService) Filter(ctx context.Context, f ports.EventFilter) ([]domain.AnalyticsEvent, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AnalyticsEvent, 0, len(events))
	for _, e := range events {
		ts := time.UnixMilli(e.Timestamp)
		if f.Month != 0 && int(ts.Month()) != f.Month {
			continue
		}
		if f.Year != 0 && ts.Year() != f.Year {
			continue
		}
		if f.CompanyID != "" && e.CompanyID != f.CompanyID {
			continue
		}
		if f.ApplicantID != "" && e.ApplicantID != f.ApplicantID {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// CountsByType aggregates events per type, for the distribution view.
func (s *AnalyticsService) CountsByType(events []domain.AnalyticsEvent) map[domain.EventType]int {
	counts := make(map[domain.EventType]int)
	for _, e := range events {
		counts[e.Type]++
	}
	return counts
}

// Clear truncates the log to empty.
func (s *AnalyticsService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeAll(ctx, []domain.AnalyticsEvent{}); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	return nil
}

// readAll loads the persisted sequence. Missing or corrupt storage yields an
// empty log (start-fresh rule); corruption is logged.
func (s *AnalyticsService) readAll(ctx context.Context) []domain.AnalyticsEvent {
	raw, err := s.store.Get(ctx, EventsStorageKey)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.log.Warn().Err(err).Msg("event log read failed")
		}
		return nil
	}
	var events []domain.AnalyticsEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		s.log.Warn().Err(err).Msg("corrupt event log, starting fresh")
		return nil
	}
	return events
}

func (s *AnalyticsService) writeAll(ctx context.Context, events []domain.AnalyticsEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, EventsStorageKey, raw)
}
