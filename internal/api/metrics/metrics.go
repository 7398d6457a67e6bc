// Package metrics defines and registers all custom Prometheus metrics
// for the authentication API. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package
// init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts successfully created accounts, self-service
// and admin-created alike.
// Label:
//   - origin: "self" (POST /auth/register) or "admin" (POST /admin/create-user)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by origin.",
	},
	[]string{"origin"},
)

// LoginsTotal counts login evaluations by outcome.
// Label:
//   - result: "success", "wrong_password", "blocked", "unverified", "unknown_user"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts minted session token pairs.
// Label:
//   - role: the subject's role claim
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session token pairs issued, by subject role.",
	},
	[]string{"role"},
)

// ApprovalRequestsTotal counts approval tokens issued for blocked accounts.
var ApprovalRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_requests_total",
		Help:      "Total number of admin-approval tokens issued.",
	},
)

// ApprovalsTotal counts consumed approval tokens (accounts unblocked).
var ApprovalsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approvals_total",
		Help:      "Total number of blocked accounts cleared by admin approval.",
	},
)

// LoginDuration measures how long a login evaluation takes end-to-end,
// password hashing included.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login evaluation from request decode to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
