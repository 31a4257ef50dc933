package ledger

import "sync"

// MockLedger is a mock implementation of the Ledger interface for testing.
type MockLedger struct {
	mu sync.Mutex

	GetByMatchFunc    func(matchID string) ([]Award, error)
	SumByMatchDayFunc func(matchDayID string) (map[string]int, error)
}

// NewMock creates a new mock instance.
func NewMock() *MockLedger {
	return &MockLedger{}
}

func (m *MockLedger) GetByMatch(matchID string) ([]Award, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByMatchFunc != nil {
		return m.GetByMatchFunc(matchID)
	}
	return nil, nil
}

func (m *MockLedger) SumByMatchDay(matchDayID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SumByMatchDayFunc != nil {
		return m.SumByMatchDayFunc(matchDayID)
	}
	return map[string]int{}, nil
}
