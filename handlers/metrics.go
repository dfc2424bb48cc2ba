package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpaste_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quickpaste_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	pastesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpaste_pastes_created_total",
		Help: "Pastes created.",
	})

	pastesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpaste_pastes_deleted_total",
		Help: "Pastes removed by explicit delete.",
	})

	pastesBurned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpaste_pastes_burned_total",
		Help: "Burn-after-read pastes destroyed on first read.",
	})
)

// Metrics returns a middleware that records request counts and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// MetricsEndpoint exposes the prometheus registry via GET /metrics.
func MetricsEndpoint() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
