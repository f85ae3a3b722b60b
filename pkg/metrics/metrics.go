package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	DocumentsIngestedTotal  *prometheus.CounterVec
	ExtractionFailuresTotal prometheus.Counter
	ShareLinksCreatedTotal  prometheus.Counter
	ShareResolutionsTotal   *prometheus.CounterVec

	AIRequestDuration *prometheus.HistogramVec
	AIRequestsTotal   *prometheus.CounterVec

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		DocumentsIngestedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "records",
			Name:      "documents_ingested_total",
			Help:      "Total documents committed to the record store by document type.",
		}, []string{"type"}),

		ExtractionFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "records",
			Name:      "extraction_failures_total",
			Help:      "Total uploads the AI collaborator could not parse.",
		}),

		ShareLinksCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "sharing",
			Name:      "links_created_total",
			Help:      "Total doctor share links minted.",
		}),

		ShareResolutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "sharing",
			Name:      "resolutions_total",
			Help:      "Share token resolutions by outcome (granted, denied).",
		}, []string{"outcome"}),

		AIRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "ai",
			Name:      "request_duration_seconds",
			Help:      "Generative-AI collaborator call latency by operation.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		}, []string{"operation"}),

		AIRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ai",
			Name:      "requests_total",
			Help:      "Generative-AI collaborator calls by operation and outcome.",
		}, []string{"operation", "outcome"}),

		AuditEntriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}

// ObserveAIRequest records one collaborator call.
func (c *Collector) ObserveAIRequest(operation string, elapsed time.Duration, ok bool) {
	c.AIRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	c.AIRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
