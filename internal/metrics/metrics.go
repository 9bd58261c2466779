package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	workflowRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderdesk",
		Subsystem: "workflow",
		Name:      "runs_total",
		Help:      "Order workflows broken down by workflow and result.",
	}, []string{"workflow", "result"})

	monthLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderdesk",
		Subsystem: "loader",
		Name:      "loads_total",
		Help:      "Month loads broken down by outcome: ok, mismatch, stale, error.",
	}, []string{"outcome"})
)

const (
	LoadOK       = "ok"
	LoadMismatch = "mismatch"
	LoadStale    = "stale"
	LoadError    = "error"
)

func Workflow(name string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	workflowRuns.WithLabelValues(name, result).Inc()
}

func MonthLoad(outcome string) {
	monthLoads.WithLabelValues(outcome).Inc()
}
