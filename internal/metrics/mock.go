package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	schedulesGenerated int
	resultsRecorded    int
	finalizeRuns       int
	finalizeDurations  []float64
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		finalizeDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSchedulesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedulesGenerated++
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncFinalizeRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizeRuns++
}

func (m *Mock) ObserveFinalizeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizeDurations = append(m.finalizeDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SchedulesGenerated returns the number of times IncSchedulesGenerated was called.
func (m *Mock) SchedulesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedulesGenerated
}

// ResultsRecorded returns the number of times IncResultsRecorded was called.
func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

// FinalizeRuns returns the number of times IncFinalizeRuns was called.
func (m *Mock) FinalizeRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finalizeRuns
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
