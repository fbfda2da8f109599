package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of requests answered with an error status",
		},
		[]string{"method", "path", "status"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementHTTPErrors(method, path, status string) {
	HTTPErrorsTotal.WithLabelValues(method, path, status).Inc()
}

// Middleware records every request under its route pattern, so ids in
// paths don't produce one series per resource.
func Middleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	code := c.Writer.Status()
	status := strconv.Itoa(code)

	RecordHTTPRequestDuration(c.Request.Method, path, status, time.Since(start))
	if code >= 400 {
		IncrementHTTPErrors(c.Request.Method, path, status)
	}
}
