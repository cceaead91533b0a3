package eventlog

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics
var (
	eventsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "webhound", Subsystem: "eventlog", Name: "events_dispatched_total", Help: "Total broadcasts per event name."},
		[]string{"event"},
	)
	handlerFaults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "webhound", Subsystem: "eventlog", Name: "handler_faults_total", Help: "Total isolated backend handler failures."},
		[]string{"module", "event"},
	)
	behaviorWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "webhound", Subsystem: "eventlog", Name: "behavior_warnings_total", Help: "Total behavior warnings recorded."},
	)
)

func init() {
	_ = prometheus.Register(eventsDispatched)
	_ = prometheus.Register(handlerFaults)
	_ = prometheus.Register(behaviorWarnings)
}
