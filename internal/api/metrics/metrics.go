// Package metrics defines the custom Prometheus metrics of the pharmacy API.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pharmacy"

// ── Identity metrics ──────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Labels:
//   - role: patient, doctor or pharmacist (as requested)
//   - result: "created", "conflict", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - method: "identifier" or "username"
//   - result: "success", "not_found", "bad_password", "throttled", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by lookup method and result.",
	},
	[]string{"method", "result"},
)

// ── Prescription metrics ──────────────────────────────────────────────────────

// PrescriptionsCreatedTotal counts newly written prescriptions.
// Label:
//   - kind: "diabetes" or "general"
var PrescriptionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prescriptions_created_total",
		Help:      "Total number of prescriptions created, by kind.",
	},
	[]string{"kind"},
)

// PrescriptionsFulfilledTotal counts successful fulfil calls, repeats included.
var PrescriptionsFulfilledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prescriptions_fulfilled_total",
		Help:      "Total number of successful fulfil operations (repeats included).",
	},
)

// PrescriptionsRevertedTotal counts prescriptions flipped back to unfulfilled
// by the bulk revert operation.
var PrescriptionsRevertedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prescriptions_reverted_total",
		Help:      "Total number of prescriptions reverted to unfulfilled.",
	},
)
