package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSchedulesGenerated()
	IncResultsRecorded()
	IncFinalizeRuns()
	ObserveFinalizeDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// CounterStore defines the interface for durable operation counters.
type CounterStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
