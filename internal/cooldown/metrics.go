package cooldown

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pricebot_cooldown_decisions_total",
		Help: "Cooldown guard decisions by outcome",
	}, []string{"decision"})
