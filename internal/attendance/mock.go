package attendance

import "sync"

// MockLedger is a mock implementation of the Ledger interface for testing.
type MockLedger struct {
	mu sync.Mutex

	MarkFunc                func(matchDayID, playerID string, present bool) error
	MarkBulkFunc            func(matchDayID string, records []Record) error
	GetForDayFunc           func(matchDayID string) ([]Record, error)
	GetPresentPlayerIDsFunc func(matchDayID string) ([]string, error)
	GetAbsentPlayerIDsFunc  func(matchDayID string) ([]string, error)

	MarkBulkCalls []struct {
		MatchDayID string
		Records    []Record
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockLedger {
	return &MockLedger{}
}

func (m *MockLedger) Mark(matchDayID, playerID string, present bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkFunc != nil {
		return m.MarkFunc(matchDayID, playerID, present)
	}
	return nil
}

func (m *MockLedger) MarkBulk(matchDayID string, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkBulkCalls = append(m.MarkBulkCalls, struct {
		MatchDayID string
		Records    []Record
	}{matchDayID, records})
	if m.MarkBulkFunc != nil {
		return m.MarkBulkFunc(matchDayID, records)
	}
	return nil
}

func (m *MockLedger) GetForDay(matchDayID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetForDayFunc != nil {
		return m.GetForDayFunc(matchDayID)
	}
	return nil, nil
}

func (m *MockLedger) GetPresentPlayerIDs(matchDayID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPresentPlayerIDsFunc != nil {
		return m.GetPresentPlayerIDsFunc(matchDayID)
	}
	return nil, nil
}

func (m *MockLedger) GetAbsentPlayerIDs(matchDayID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAbsentPlayerIDsFunc != nil {
		return m.GetAbsentPlayerIDsFunc(matchDayID)
	}
	return nil, nil
}
