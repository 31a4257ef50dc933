package notifier

import (
	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/mauv0809/solid-garbanzo/internal/settlement"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly generated match day draw
	SendScheduleNotification(date string, groups []schedule.CourtGroup, names map[string]string, dryRun bool) error
	// For an applied settlement
	SendSettlementNotification(date string, result *settlement.FinalizeResult, names map[string]string, dryRun bool) error
	// For the rating standings
	SendLeaderboard(players []roster.PlayerInfo, dryRun bool) error

	// For formatting responses without posting
	FormatLeaderboardResponse(players []roster.PlayerInfo) (any, error)
}
