package slack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/mauv0809/solid-garbanzo/internal/settlement"
	"github.com/slack-go/slack"
)

func displayName(names map[string]string, playerID string) string {
	if name, ok := names[playerID]; ok && name != "" {
		return name
	}
	return playerID
}

func teamLabel(names map[string]string, team []string) string {
	labels := make([]string, len(team))
	for i, id := range team {
		labels[i] = displayName(names, id)
	}
	return strings.Join(labels, " & ")
}

// formatSchedule creates the Slack message for a generated draw using Block Kit.
func (s *Notifier) formatSchedule(date string, groups []schedule.CourtGroup, names map[string]string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏸 Schedule for %s 🏸", date), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	for _, group := range groups {
		var lines []string
		for _, match := range group.Matches {
			lines = append(lines, fmt.Sprintf("%s: %s vs %s",
				match.MatchCode,
				teamLabel(names, match.Team1),
				teamLabel(names, match.Team2),
			))
		}
		courtText := fmt.Sprintf("Court %d\n%s", group.Court, strings.Join(lines, "\n"))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", courtText, true, false), nil, nil))
	}

	if len(groups) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Not enough players for a full court today.", true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatSettlement creates the Slack message for applied rating movements.
func (s *Notifier) formatSettlement(date string, result *settlement.FinalizeResult, names map[string]string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏸 Ratings settled for %s 🏸", date), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	playerIDs := make([]string, 0, len(result.Deltas))
	for playerID := range result.Deltas {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Slice(playerIDs, func(i, j int) bool {
		if result.Deltas[playerIDs[i]] != result.Deltas[playerIDs[j]] {
			return result.Deltas[playerIDs[i]] > result.Deltas[playerIDs[j]]
		}
		return playerIDs[i] < playerIDs[j]
	})

	var lines []string
	for _, playerID := range playerIDs {
		lines = append(lines, fmt.Sprintf("• %s: %+d", displayName(names, playerID), result.Deltas[playerID]))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%d players updated", result.UpdatedPlayers), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for the rating standings.
func (s *Notifier) formatLeaderboard(players []roster.PlayerInfo) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Rating Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	medals := []string{"🥇", "🥈", "🥉"}
	var lines []string
	for i, player := range players {
		prefix := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			prefix = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d", prefix, player.Name, player.CurrentRating))
	}
	if len(lines) == 0 {
		lines = append(lines, "No players yet.")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
