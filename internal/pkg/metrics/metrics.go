// Package metrics defines all custom Prometheus metrics for the approval
// workflow service. It is the single source of truth for metric names, labels,
// and help strings; HTTP-level request metrics come from echoprometheus and
// are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "approval"

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "fail"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CommandsAppliedTotal counts state container commands applied.
// Label:
//   - command: command name (e.g. "create_company", "submit_proforma1")
var CommandsAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_applied_total",
		Help:      "Total number of state commands applied, by command name.",
	},
	[]string{"command"},
)

// StatePersistFailuresTotal counts failed writes of the state aggregate. The
// in-memory aggregate stays authoritative when this fires.
var StatePersistFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_persist_failures_total",
		Help:      "Total number of failed state aggregate writes.",
	},
)

// EventsRecordedTotal counts analytics events appended to the event log.
// Label:
//   - type: the event type (e.g. "company_created")
var EventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_recorded_total",
		Help:      "Total number of analytics events recorded, by type.",
	},
	[]string{"type"},
)

// EventsRecordFailuresTotal counts analytics events that could not be
// persisted. Recording failures never fail the domain operation that produced
// them.
var EventsRecordFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_record_failures_total",
		Help:      "Total number of analytics events that failed to persist.",
	},
)
