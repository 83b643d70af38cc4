// Package metrics exposes Prometheus counters for the tick loop. The
// splitter itself emits no telemetry beyond zap logs; these counters exist
// so long unattended sessions can be checked for silent read failures.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TicksTotal counts orchestrator invocations, attached or not.
	TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spinsplit_ticks_total",
		Help: "Total tick invocations",
	})

	// DetachedTicks counts ticks skipped because the emulator was not
	// reachable or had no content loaded.
	DetachedTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spinsplit_detached_ticks_total",
		Help: "Ticks skipped because no game was attached",
	})

	// ReadFailures counts individual memory reads that came back empty.
	ReadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spinsplit_read_failures_total",
		Help: "Memory reads that failed and fell back to prior state",
	})

	// SignalsTotal counts emitted timer signals by kind.
	SignalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spinsplit_signals_total",
		Help: "Timer control signals emitted, by signal",
	}, []string{"signal"})
)

// Handler returns the /metrics HTTP handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
