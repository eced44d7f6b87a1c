package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// WorkerMetrics instruments the extraction worker: jobs and pages by
// status, durations, queue lag and the count of redacted sensitive values
// by kind. Each instance owns its registry.
type WorkerMetrics struct {
	registry *prometheus.Registry

	jobTotal        *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	jobInFlight     prometheus.Gauge
	pageTotal       *prometheus.CounterVec
	transactions    prometheus.Counter
	redactionsTotal *prometheus.CounterVec
	queueLag        *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	jobTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stx",
			Subsystem: "worker",
			Name:      "extraction_jobs_total",
			Help:      "Total extraction jobs by status.",
		},
		[]string{"service", "status"},
	)
	jobDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stx",
			Subsystem: "worker",
			Name:      "extraction_job_duration_seconds",
			Help:      "Extraction job duration in seconds by status.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"service", "status"},
	)
	jobInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stx",
			Subsystem: "worker",
			Name:      "extraction_jobs_in_flight",
			Help:      "Number of in-flight extraction jobs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pageTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stx",
			Subsystem: "worker",
			Name:      "pages_processed_total",
			Help:      "Total statement pages processed by status.",
		},
		[]string{"service", "status"},
	)
	transactions := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stx",
			Subsystem: "worker",
			Name:      "transactions_extracted_total",
			Help:      "Total transactions extracted across all jobs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	redactionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stx",
			Subsystem: "worker",
			Name:      "security_redactions_total",
			Help:      "Total redacted sensitive values by kind.",
		},
		[]string{"service", "kind"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stx",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between job enqueue and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(jobTotal, jobDuration, jobInFlight, pageTotal, transactions, redactionsTotal, queueLag)

	return &WorkerMetrics{
		registry:        registry,
		jobTotal:        jobTotal,
		jobDuration:     jobDuration,
		jobInFlight:     jobInFlight,
		pageTotal:       pageTotal,
		transactions:    transactions,
		redactionsTotal: redactionsTotal,
		queueLag:        queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartJob() {
	m.jobInFlight.Inc()
}

func (m *WorkerMetrics) FinishJob(service string, duration time.Duration, err error) {
	m.jobInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.jobTotal.WithLabelValues(service, status).Inc()
	m.jobDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

// RecordResult folds a completed extraction into the page, transaction and
// redaction counters.
func (m *WorkerMetrics) RecordResult(service string, result *domain.ExtractionResult) {
	if result == nil {
		return
	}
	m.pageTotal.WithLabelValues(service, "success").Add(float64(result.Analytics.SuccessfulPages))
	m.pageTotal.WithLabelValues(service, "error").Add(float64(result.Analytics.FailedPages))
	m.transactions.Add(float64(len(result.Transactions)))

	for kind, count := range result.Security.ByKind() {
		if count > 0 {
			m.redactionsTotal.WithLabelValues(service, kind).Add(float64(count))
		}
	}
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
