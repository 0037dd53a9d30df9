package pricecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var resultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pricebot_price_cache_results_total",
		Help: "Price cache lookups by result",
	}, []string{"result"})
