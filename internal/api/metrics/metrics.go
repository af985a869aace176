// Package metrics defines and registers the custom Prometheus metrics of the
// Wishlist accounts API. Metrics are registered with the default registry on
// package load through promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wishlist"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "invalid" (validation failed) or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// ValidationViolationsTotal counts individual rule violations.
// Labels:
//   - field: the user attribute (e.g. "email")
//   - code:  the violation code (e.g. "not_unique")
var ValidationViolationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_violations_total",
		Help:      "Total number of validation rule violations, by field and code.",
	},
	[]string{"field", "code"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - method: "password" or "remember"
//   - result: "success", "failure" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// LogoutsTotal counts explicit logouts (remember digest cleared).
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// ── Credential metrics ────────────────────────────────────────────────────────

// DigestDuration measures bcrypt digest computation time.
// Label:
//   - secret: "password" or "remember_token"
var DigestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "digest_duration_seconds",
		Help:      "Duration of bcrypt digest computation.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"secret"},
)
