// Package metrics holds the Prometheus collectors of the admin backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TrackerScrapes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqadmin_tracker_scrapes_total",
			Help: "Tracker stats scrapes by outcome (success, error, rejected)",
		},
		[]string{"outcome"},
	)

	TrackerScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sqadmin_tracker_scrape_duration_seconds",
			Help:    "Duration of tracker stats scrapes that reached the tracker",
			Buckets: prometheus.DefBuckets,
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sqadmin_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	StatsSnapshots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqadmin_stats_snapshots_total",
			Help: "Computed stats snapshots by shape (full, degraded)",
		},
		[]string{"shape"},
	)

	ReportsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sqadmin_reports_created_total",
			Help: "Reports filed by users",
		},
	)

	ReportsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sqadmin_reports_resolved_total",
			Help: "Resolve operations that matched a report",
		},
	)
)

const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"

	ShapeFull     = "full"
	ShapeDegraded = "degraded"
)
