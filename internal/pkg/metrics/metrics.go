// Package metrics holds the Prometheus collectors of the salary engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Slips ──────────────────────────────────────────────────────────────────

// SlipCalculations counts calculator runs by employee type and outcome.
var SlipCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "washpay",
	Subsystem: "salary",
	Name:      "calculations_total",
	Help:      "Salary calculations by employee type and result.",
}, []string{"employee_type", "result"})

// SlipsSaved counts persisted slips by status.
var SlipsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "washpay",
	Subsystem: "salary",
	Name:      "slips_saved_total",
	Help:      "Salary slips upserted, by status.",
}, []string{"status"})

// SlipPreviews counts slips returned without being stored.
var SlipPreviews = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "washpay",
	Subsystem: "salary",
	Name:      "slip_previews_total",
	Help:      "Unsaved slip previews served.",
})

// CalculationDuration tracks end-to-end slip computation latency, storage reads included.
var CalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "washpay",
	Subsystem: "salary",
	Name:      "calculation_duration_seconds",
	Help:      "Time to load inputs and compute one slip.",
	Buckets:   prometheus.DefBuckets,
})

// ─── Settings ───────────────────────────────────────────────────────────────

// SettingsChanges counts settings writes by operation.
var SettingsChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "washpay",
	Subsystem: "settings",
	Name:      "changes_total",
	Help:      "Settings writes by operation (seed, update, save, reset).",
}, []string{"operation"})

// ─── Draft runs ─────────────────────────────────────────────────────────────

// DraftRunSlips counts per-worker outcomes of draft runs.
var DraftRunSlips = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "washpay",
	Subsystem: "runs",
	Name:      "slips_total",
	Help:      "Draft run outcomes per worker (saved, skipped, failed).",
}, []string{"outcome"})

// ─── Scheduler ──────────────────────────────────────────────────────────────

// CronRuns counts scheduled job executions by job and result.
var CronRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "washpay",
	Subsystem: "cron",
	Name:      "runs_total",
	Help:      "Scheduled job executions by job name and result.",
}, []string{"job", "result"})
