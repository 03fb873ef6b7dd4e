// Package metrics defines and registers the custom Prometheus metrics of the
// blog. HTTP request metrics come from echo-contrib's echoprometheus
// middleware; the counters here cover application outcomes.
//
// Metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: role assigned at registration ("admin" for the bootstrap account, else "user")
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered accounts, by assigned role.",
	},
	[]string{"role"},
)

// LoginAttemptsTotal counts login form submissions.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// GuardDenialsTotal counts requests short-circuited by a route guard.
// Label:
//   - guard: "authenticated" or "role"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests rejected by an authorization guard.",
	},
	[]string{"guard"},
)

// OwnershipDenialsTotal counts edit/delete attempts on posts by non-authors.
// Label:
//   - action: "edit" or "delete"
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of post edits or deletes rejected because the session is not the author.",
	},
	[]string{"action"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of blog posts created.",
	},
)

// PostsDuplicateTotal counts resubmissions dropped by the submission guard.
var PostsDuplicateTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_duplicate_total",
		Help:      "Total number of post submissions skipped as duplicates.",
	},
)
