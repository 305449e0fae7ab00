// Package metrics holds the Prometheus collectors shared by the task
// registry, the event bus and the module loader.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "enginecore"

var (
	TaskExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "task",
			Name:      "executions_total",
			Help:      "Total number of task executions by task identifier and outcome",
		},
		[]string{"task", "outcome"},
	)

	TaskExecutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "task",
			Name:      "run_cpu_duration_seconds",
			Help:      "Duration of RunCPU calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"task"},
	)

	DispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event",
			Name:      "dispatches_total",
			Help:      "Total number of event dispatches by event identifier and outcome",
		},
		[]string{"event", "outcome"},
	)

	HandlerInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event",
			Name:      "handler_invocations_total",
			Help:      "Total number of handler invocations by event identifier",
		},
		[]string{"event"},
	)

	CancellationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event",
			Name:      "cancelled_total",
			Help:      "Total number of dispatches that finished with the event cancelled",
		},
		[]string{"event"},
	)

	ModulesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "plugin",
			Name:      "modules_loaded",
			Help:      "Number of modules whose Run entry point completed",
		},
	)
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

func init() {
	prometheus.MustRegister(
		TaskExecutionsTotal,
		TaskExecutionDuration,
		DispatchesTotal,
		HandlerInvocationsTotal,
		CancellationsTotal,
		ModulesLoaded,
	)
}
