// Package metrics defines and registers all custom Prometheus metrics for the
// expense tracker. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at package load via
// promauto; the /metrics endpoint is role-protected and scraped with the
// rotated service token.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expensetracker"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthOutcomesTotal counts per-request authentication gate outcomes.
// Label:
//   - outcome: "anonymous", "authenticated", or "rejected"
var AuthOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_outcomes_total",
		Help:      "Total number of authentication gate decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Reconciliation metrics ────────────────────────────────────────────────────

// ReconcileRunsTotal counts daily reconciliation batch runs.
// Label:
//   - result: "completed" or "skipped" (lock held by another instance)
var ReconcileRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_runs_total",
		Help:      "Total number of daily reconciliation runs, by result.",
	},
	[]string{"result"},
)

// ReconcileAccountsTotal counts per-account reconciliations.
// Label:
//   - result: "ok" or "error"
var ReconcileAccountsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_accounts_total",
		Help:      "Total number of per-account balance reconciliations, by result.",
	},
	[]string{"result"},
)

// ReconcileDuration measures how long one account's reconciliation takes.
var ReconcileDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reconcile_duration_seconds",
		Help:      "Duration of a single account balance reconciliation.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Token rotation metrics ────────────────────────────────────────────────────

// TokenRotationsTotal counts scraper-token rotations.
// Label:
//   - result: "ok" or "error"
var TokenRotationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rotations_total",
		Help:      "Total number of metrics scraper token rotations, by result.",
	},
	[]string{"result"},
)
