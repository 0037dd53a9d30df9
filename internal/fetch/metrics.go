package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricebot_fetch_attempts_total",
			Help: "Total number of upstream GET attempts by host",
		}, []string{"host"})

	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricebot_fetch_rate_limited_total",
			Help: "Total number of 429 responses by host",
		}, []string{"host"})

	hardErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricebot_fetch_hard_errors_total",
			Help: "Total number of non-retryable upstream failures by host",
		}, []string{"host"})

	requestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricebot_fetch_request_duration_seconds",
			Help:    "Duration of individual upstream requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		})
)
