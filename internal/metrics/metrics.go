package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the optimizer.
	Registry = prometheus.NewRegistry()
	// Solves counts solve outcomes by status.
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimizer_solves_total", Help: "Solve attempts by outcome status."},
		[]string{"status"},
	)
	// SolveDuration records wall-clock solve durations in seconds.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "optimizer_solve_duration_seconds", Help: "Solve duration in seconds.", Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300}},
		[]string{"status"},
	)
	// DefaultedCostEntries counts lanes with demand that had no cost entry
	// and were priced at zero during model construction.
	DefaultedCostEntries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "optimizer_defaulted_cost_entries_total", Help: "Cost matrix lookups that fell back to zero cost."},
	)
)

// RegisterDefault registers collectors to the optimizer registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(DefaultedCostEntries)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
