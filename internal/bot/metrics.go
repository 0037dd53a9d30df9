package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var commandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pricebot_commands_total",
		Help: "Bot commands by outcome",
	}, []string{"command", "outcome"})
