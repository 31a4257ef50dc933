package schedule

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	mu sync.Mutex

	GetOrCreateMatchDayFunc func(date string) (*MatchDay, error)
	GetMatchDayFunc         func(matchDayID string) (*MatchDay, error)
	GetMatchDayByDateFunc   func(date string) (*MatchDay, error)
	CreateMatchesFunc       func(matches []Match) error
	GetMatchFunc            func(matchID string) (*Match, error)
	GetMatchesForDayFunc    func(matchDayID string) ([]Match, error)
	HasMatchesFunc          func(matchDayID string) (bool, error)
	UpdateMatchResultFunc   func(matchID string, winnerIDs []string, score string, deltas map[string]int) error
	UpdateMatchTeamsFunc    func(matchID string, team1, team2 []string, score string) error
	UpdateMatchScoreFunc    func(matchID string, score string) error

	CreateMatchesCalls [][]Match
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetOrCreateMatchDay(date string) (*MatchDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetOrCreateMatchDayFunc != nil {
		return m.GetOrCreateMatchDayFunc(date)
	}
	return &MatchDay{ID: "mock-day", Date: date}, nil
}

func (m *MockStore) GetMatchDay(matchDayID string) (*MatchDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchDayFunc != nil {
		return m.GetMatchDayFunc(matchDayID)
	}
	return nil, ErrMatchDayNotFound
}

func (m *MockStore) GetMatchDayByDate(date string) (*MatchDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchDayByDateFunc != nil {
		return m.GetMatchDayByDateFunc(date)
	}
	return nil, ErrMatchDayNotFound
}

func (m *MockStore) CreateMatches(matches []Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchesCalls = append(m.CreateMatchesCalls, matches)
	if m.CreateMatchesFunc != nil {
		return m.CreateMatchesFunc(matches)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) GetMatchesForDay(matchDayID string) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesForDayFunc != nil {
		return m.GetMatchesForDayFunc(matchDayID)
	}
	return nil, nil
}

func (m *MockStore) HasMatches(matchDayID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HasMatchesFunc != nil {
		return m.HasMatchesFunc(matchDayID)
	}
	return false, nil
}

func (m *MockStore) UpdateMatchResult(matchID string, winnerIDs []string, score string, deltas map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateMatchResultFunc != nil {
		return m.UpdateMatchResultFunc(matchID, winnerIDs, score, deltas)
	}
	return nil
}

func (m *MockStore) UpdateMatchTeams(matchID string, team1, team2 []string, score string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateMatchTeamsFunc != nil {
		return m.UpdateMatchTeamsFunc(matchID, team1, team2, score)
	}
	return nil
}

func (m *MockStore) UpdateMatchScore(matchID string, score string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateMatchScoreFunc != nil {
		return m.UpdateMatchScoreFunc(matchID, score)
	}
	return nil
}
