// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// outcome: success, not_found, parcel_error, address_required
	Reconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefill_reconciliations_total",
			Help: "Reconciliation runs by outcome",
		},
		[]string{"outcome"},
	)

	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefill_source_failures_total",
			Help: "Failed calls per data source",
		},
		[]string{"source"},
	)

	SourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prefill_source_duration_seconds",
			Help:    "Latency of each data source lookup",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// result: license_and_business, license_only, none, skipped, error
	RegistryLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefill_registry_lookups_total",
			Help: "Registry lookups by result",
		},
		[]string{"result"},
	)

	Verdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefill_verdicts_total",
			Help: "Validation and ownership verdicts",
		},
		[]string{"property_type", "valid", "ownership"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefill_api_requests_total",
			Help: "HTTP API requests by route and status code",
		},
		[]string{"route", "code"},
	)
)
