// Package observability exposes the portal's prometheus metrics and
// the HTTP instrumentation middleware.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Domain counters.
var (
	// FormSubmissions counts accepted questionnaire submissions.
	FormSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deputy_form_submissions_total",
		Help: "Accepted questionnaire submissions",
	})

	// UserActivations counts approved registrations.
	UserActivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deputy_user_activations_total",
		Help: "Approved user registrations",
	})

	// RelayTasks counts relay calls by task type and outcome.
	RelayTasks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deputy_relay_tasks_total",
		Help: "Relay task calls by type and outcome",
	}, []string{"type", "status"})

	// RenderedReports counts generated PDF reports.
	RenderedReports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deputy_rendered_reports_total",
		Help: "Generated PDF reports",
	})
)

// HTTP metrics.
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deputy_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deputy_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// MetricsMiddleware records request counts and latencies per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// Handler returns the prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
