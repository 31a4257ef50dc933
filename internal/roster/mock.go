package roster

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayerFunc             func(player PlayerInfo) error
	UpsertPlayersFunc            func(players []PlayerInfo) error
	GetPlayerFunc                func(playerID string) (*PlayerInfo, error)
	GetPlayersFunc               func(playerIDs []string) ([]PlayerInfo, error)
	GetAllPlayersFunc            func() ([]PlayerInfo, error)
	GetPlayersSortedByRatingFunc func() ([]PlayerInfo, error)
	IsKnownPlayerFunc            func(playerID string) bool
	ApplyRatingDeltasFunc        func(matchDayID string, deltas map[string]int, appliedAt time.Time) (int, error)
	GetRatingSnapshotsFunc       func(playerID string) ([]RatingSnapshot, error)

	// Call records
	UpsertPlayerCalls      []PlayerInfo
	UpsertPlayersCalls     [][]PlayerInfo
	GetPlayersCalls        [][]string
	ApplyRatingDeltasCalls []struct {
		MatchDayID string
		Deltas     map[string]int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayer(player PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, player)
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(player)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayersSortedByRating() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersSortedByRatingFunc != nil {
		return m.GetPlayersSortedByRatingFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) ApplyRatingDeltas(matchDayID string, deltas map[string]int, appliedAt time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyRatingDeltasCalls = append(m.ApplyRatingDeltasCalls, struct {
		MatchDayID string
		Deltas     map[string]int
	}{matchDayID, deltas})
	if m.ApplyRatingDeltasFunc != nil {
		return m.ApplyRatingDeltasFunc(matchDayID, deltas, appliedAt)
	}
	return len(deltas), nil
}

func (m *MockStore) GetRatingSnapshots(playerID string) ([]RatingSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRatingSnapshotsFunc != nil {
		return m.GetRatingSnapshotsFunc(playerID)
	}
	return nil, nil
}
