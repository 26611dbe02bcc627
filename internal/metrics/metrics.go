// Package metrics defines the Prometheus metrics for the review API and the
// fiber middleware that records them.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reviewdb"

// RequestsTotal counts handled HTTP requests by route, method and status.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"route", "method", "status"},
)

// RequestDuration measures request latency by route and method.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// RatingsRecomputed counts title ratings persisted by the write-on-read
// aggregation path.
var RatingsRecomputed = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_recomputed_total",
		Help:      "Title ratings recomputed and persisted during list/read.",
	},
)

// Middleware records count and latency per request. Registered routes are
// used as the label, so path parameters do not explode cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}

		route := c.Route().Path
		RequestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}
