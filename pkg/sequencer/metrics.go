package sequencer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var commandCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_commands_total",
		Help: "How many commands were executed, partitioned by command and result.",
	},
	[]string{"command", "result"},
)

var commandDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "ledger_command_duration_seconds",
		Help: "The command execution latencies in seconds.",
	},
	[]string{"command"},
)

// Collectors returns the Prometheus collectors for command metrics.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		commandCount,
		commandDuration,
	}
}

func observe(c Command, err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}

	commandCount.WithLabelValues(c.Kind(), result).Inc()
	commandDuration.WithLabelValues(c.Kind()).Observe(elapsed.Seconds())
}
