package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/infrastructure/storage/memory"
)

func newTestAnalytics(t *testing.T) *AnalyticsService {
	t.Helper()
	return NewAnalyticsService(memory.New(), zerolog.Nop())
}

func TestRecord_NewestFirst(t *testing.T) {
	svc := newTestAnalytics(t)
	ctx := context.Background()

	if err := svc.Record(ctx, ports.EventInput{Type: domain.EventCompanyCreated, ActorRole: domain.RoleAdmin, CompanyID: "co-1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(ctx, ports.EventInput{Type: domain.EventApplicantCreated, ActorRole: domain.RoleCompany, CompanyID: "co-1", ApplicantID: "ap-1"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	events, err := svc.Events(ctx)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != domain.EventApplicantCreated || events[1].Type != domain.EventCompanyCreated {
		t.Fatalf("log not newest-first: %v, %v", events[0].Type, events[1].Type)
	}
	if events[0].ID == "" || events[0].Timestamp == 0 {
		t.Fatalf("id and timestamp must be assigned: %+v", events[0])
	}
}

func TestEvents_EmptyLog(t *testing.T) {
	svc := newTestAnalytics(t)

	events, err := svc.Events(context.Background())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty log, got %d events", len(events))
	}
}

func TestEvents_SurvivesCorruptLog(t *testing.T) {
	store := memory.New()
	if err := store.Set(context.Background(), EventsStorageKey, []byte("[{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewAnalyticsService(store, zerolog.Nop())

	events, err := svc.Events(context.Background())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("corrupt log must read as empty, got %d", len(events))
	}

	// The log stays writable afterwards.
	if err := svc.Record(context.Background(), ports.EventInput{Type: domain.EventLoginSuccess}); err != nil {
		t.Fatalf("record after corruption: %v", err)
	}
}

func TestFilter(t *testing.T) {
	svc := newTestAnalytics(t)
	ctx := context.Background()

	// Drive the clock so month/year filters have a fixed reference.
	stamps := []time.Time{
		time.Date(2026, time.March, 5, 10, 0, 0, 0, time.Local),
		time.Date(2026, time.March, 20, 10, 0, 0, 0, time.Local),
		time.Date(2026, time.April, 1, 10, 0, 0, 0, time.Local),
		time.Date(2025, time.March, 1, 10, 0, 0, 0, time.Local),
	}
	i := 0
	svc.now = func() time.Time { ts := stamps[i]; i++; return ts }

	inputs := []ports.EventInput{
		{Type: domain.EventCompanyCreated, CompanyID: "co-1"},
		{Type: domain.EventApplicantCreated, CompanyID: "co-1", ApplicantID: "ap-1"},
		{Type: domain.EventApplicantCreated, CompanyID: "co-2", ApplicantID: "ap-2"},
		{Type: domain.EventLoginSuccess},
	}
	for _, in := range inputs {
		if err := svc.Record(ctx, in); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	cases := []struct {
		name   string
		filter ports.EventFilter
		want   int
	}{
		{"all", ports.EventFilter{}, 4},
		{"march 2026", ports.EventFilter{Month: 3, Year: 2026}, 2},
		{"march any year", ports.EventFilter{Month: 3}, 3},
		{"year 2025", ports.EventFilter{Year: 2025}, 1},
		{"company", ports.EventFilter{CompanyID: "co-1"}, 2},
		{"applicant", ports.EventFilter{ApplicantID: "ap-2"}, 1},
		{"type", ports.EventFilter{Type: domain.EventApplicantCreated}, 2},
		{"type and company", ports.EventFilter{Type: domain.EventApplicantCreated, CompanyID: "co-1"}, 1},
		{"no match", ports.EventFilter{Month: 12, Year: 2026}, 0},
	}
	for _, tc := range cases {
		got, err := svc.Filter(ctx, tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got) != tc.want {
			t.Errorf("%s: got %d events, want %d", tc.name, len(got), tc.want)
		}
	}
}

func TestCountsByType(t *testing.T) {
	svc := newTestAnalytics(t)
	events := []domain.AnalyticsEvent{
		{Type: domain.EventLoginSuccess},
		{Type: domain.EventLoginSuccess},
		{Type: domain.EventKitCreated},
	}

	counts := svc.CountsByType(events)
	if counts[domain.EventLoginSuccess] != 2 || counts[domain.EventKitCreated] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 distinct types, got %d", len(counts))
	}
}

func TestClear(t *testing.T) {
	svc := newTestAnalytics(t)
	ctx := context.Background()

	if err := svc.Record(ctx, ports.EventInput{Type: domain.EventLoginSuccess}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	events, err := svc.Events(ctx)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("log not cleared: %d events remain", len(events))
	}
}
