// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled requests by route and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_web_app_requests_total",
		Help: "The total number of requests by method, route and status code",
	}, []string{"method", "route", "status"})

	// RequestDuration observes request latency by route
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "events_web_app_request_duration_seconds",
		Help:    "The request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AuthenticatedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "events_web_app_authenticated_requests_total",
		Help: "The total number of requests with a valid access token",
	})

	// AuthAttemptsTotal counts login, registration and refresh outcomes
	AuthAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_web_app_auth_attempts_total",
		Help: "The total number of authentication attempts by kind and status",
	}, []string{"kind", "status"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "events_web_app_rate_limited_total",
		Help: "The total number of requests rejected by the rate limiter",
	})
)
