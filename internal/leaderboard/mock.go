package leaderboard

import (
	"context"
	"sort"
	"sync"
)

// MockMirror is an in-memory Mirror implementation for testing.
// It is safe for concurrent use.
type MockMirror struct {
	mu      sync.Mutex
	ratings map[string]int

	BatchSetRatingsCalls []map[string]int
}

// NewMock creates a new mock instance.
func NewMock() *MockMirror {
	return &MockMirror{
		ratings: make(map[string]int),
	}
}

func (m *MockMirror) Close() error {
	return nil
}

func (m *MockMirror) BatchSetRatings(_ context.Context, ratings map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchSetRatingsCalls = append(m.BatchSetRatingsCalls, ratings)
	for playerID, rating := range ratings {
		m.ratings[playerID] = rating
	}
	return nil
}

func (m *MockMirror) TopN(_ context.Context, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, len(m.ratings))
	for playerID, rating := range m.ratings {
		entries = append(entries, Entry{PlayerID: playerID, Rating: rating})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	if n < len(entries) {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (m *MockMirror) PlayerRank(ctx context.Context, playerID string) (*Entry, error) {
	m.mu.Lock()
	total := len(m.ratings)
	m.mu.Unlock()

	entries, err := m.TopN(ctx, total)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.PlayerID == playerID {
			return &entry, nil
		}
	}
	return nil, ErrPlayerNotRanked
}
