package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics provides observability for submission intake.
type Metrics struct {
	SubmissionsCreated  prometheus.Counter
	ValidationFailures  prometheus.Counter
	ReferenceCollisions prometheus.Counter
	LookupCache         *prometheus.CounterVec
	StoreDuration       *prometheus.HistogramVec
	EventsPublished     *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers every intake metric on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SubmissionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "intake_submissions_created_total",
			Help: "Total number of questionnaires persisted",
		}),
		ValidationFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "intake_submission_validation_failures_total",
			Help: "Total number of submissions rejected by validation",
		}),
		ReferenceCollisions: f.NewCounter(prometheus.CounterOpts{
			Name: "intake_reference_collisions_total",
			Help: "Generated reference numbers that were already taken",
		}),
		LookupCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_lookup_cache_total",
			Help: "Reference lookups by cache outcome (hit, miss)",
		}, []string{"result"}),
		StoreDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_store_operation_duration_seconds",
			Help:    "Duration of submission store operations",
			Buckets: durationBuckets,
		}, []string{"operation"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_events_published_total",
			Help: "submission.created events handed to the publisher, by outcome",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: durationBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}
}

// ObserveStore records the duration of a store operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveStore(operation string, start time.Time) {
	m.StoreDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
