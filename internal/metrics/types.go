package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	SchedulesGenerated prometheus.Counter
	ResultsRecorded    prometheus.Counter
	FinalizeRuns       prometheus.Counter
	FinalizeDuration   prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// Well-known durable counter keys.
const (
	CounterSchedulesGenerated = "schedules_generated"
	CounterResultsRecorded    = "results_recorded"
	CounterFinalizeRuns       = "finalize_runs"
)
