package manager

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	compilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vizd",
			Subsystem: "manager",
			Name:      "compiles_total",
			Help:      "Compile attempts by result",
		},
		[]string{"result"},
	)

	compileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vizd",
			Subsystem: "manager",
			Name:      "compile_duration_seconds",
			Help:      "Duration of compile attempts in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vizd",
			Subsystem: "manager",
			Name:      "loads_total",
			Help:      "Artifact load attempts by result",
		},
		[]string{"result"},
	)

	compilesInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vizd",
			Subsystem: "manager",
			Name:      "compiles_in_progress",
			Help:      "Compiles currently running",
		},
	)

	loadedModules = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vizd",
			Subsystem: "manager",
			Name:      "loaded_modules",
			Help:      "Dynamic modules currently mapped",
		},
	)
)

func init() {
	prometheus.MustRegister(compilesTotal, compileDuration, loadsTotal, compilesInProgress, loadedModules)
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
