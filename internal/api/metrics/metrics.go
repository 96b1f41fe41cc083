// Package metrics defines and registers all custom Prometheus metrics of the
// FitTrack API. Metrics register with the default registry on package init
// through promauto; echoprometheus serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fittrack"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - action: "login" or "register"
//   - result: "success", "invalid_credentials", "exists", "invalid_role", "rate_limited", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and registration attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// AccessDecisionsTotal counts role checks performed by the RBAC middleware.
// Label:
//   - decision: "allow" or "deny"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of role-based access decisions.",
	},
	[]string{"decision"},
)

// ── Fitness metrics ───────────────────────────────────────────────────────────

var WorkoutsLoggedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workouts_logged_total",
		Help:      "Total number of workouts created.",
	},
)

// MealsLoggedTotal counts created meals.
// Label:
//   - meal_type: "breakfast", "lunch", "dinner" or "snack"
var MealsLoggedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meals_logged_total",
		Help:      "Total number of meals created, by meal type.",
	},
	[]string{"meal_type"},
)

// ── Reset mail metrics ────────────────────────────────────────────────────────

// ResetMailsTotal counts reset mails handled by the dispatcher.
// Label:
//   - result: "sent" or "failed"
var ResetMailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_mails_total",
		Help:      "Total number of password reset mails processed, by result.",
	},
	[]string{"result"},
)

// ResetMailQueueDepth tracks the mails waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ResetMailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reset_mail_queue_depth",
		Help:      "Current number of reset mails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ResetMailDuration measures how long delivering one mail takes.
var ResetMailDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reset_mail_duration_seconds",
		Help:      "Duration of reset mail delivery from dequeue to send.",
		Buckets:   prometheus.DefBuckets,
	},
)
