package notifier

import (
	"sync"

	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/mauv0809/solid-garbanzo/internal/settlement"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendScheduleNotificationCalls []struct {
		Date   string
		Groups []schedule.CourtGroup
	}
	SendSettlementNotificationCalls []struct {
		Date   string
		Result *settlement.FinalizeResult
	}
	SendLeaderboardCalls [][]roster.PlayerInfo

	// Spies
	SendScheduleNotificationFunc   func(date string, groups []schedule.CourtGroup, names map[string]string, dryRun bool) error
	SendSettlementNotificationFunc func(date string, result *settlement.FinalizeResult, names map[string]string, dryRun bool) error
	SendLeaderboardFunc            func(players []roster.PlayerInfo, dryRun bool) error
	FormatLeaderboardResponseFunc  func(players []roster.PlayerInfo) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScheduleNotificationCalls = nil
	m.SendSettlementNotificationCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) SendScheduleNotification(date string, groups []schedule.CourtGroup, names map[string]string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScheduleNotificationCalls = append(m.SendScheduleNotificationCalls, struct {
		Date   string
		Groups []schedule.CourtGroup
	}{date, groups})
	if m.SendScheduleNotificationFunc != nil {
		return m.SendScheduleNotificationFunc(date, groups, names, dryRun)
	}
	return nil
}

func (m *Mock) SendSettlementNotification(date string, result *settlement.FinalizeResult, names map[string]string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSettlementNotificationCalls = append(m.SendSettlementNotificationCalls, struct {
		Date   string
		Result *settlement.FinalizeResult
	}{date, result})
	if m.SendSettlementNotificationFunc != nil {
		return m.SendSettlementNotificationFunc(date, result, names, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(players []roster.PlayerInfo, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, players)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(players, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(players []roster.PlayerInfo) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(players)
	}
	return "formatted_leaderboard", nil
}
