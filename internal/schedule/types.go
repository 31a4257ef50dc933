package schedule

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles database operations for match days and matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	// ErrMatchNotFound is returned when a match id has no row.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchDayNotFound is returned when a match day id or date has no row.
	ErrMatchDayNotFound = errors.New("match day not found")
	// ErrAlreadyGenerated is returned when schedule generation is requested
	// for a date that already has matches.
	ErrAlreadyGenerated = errors.New("schedule already generated for this date")
)

const (
	MatchTypeSingles = "singles"
	MatchTypeDoubles = "doubles"
)

// MatchDay is one calendar date's tournament session.
type MatchDay struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Finalized bool   `json:"finalized"`
	CreatedAt int64  `json:"created_at"`
}

// Match is a single pairing on a court. Team1 and Team2 always have the same
// size; WinnerIDs is nil until a result is recorded and then equals one
// team's member set.
type Match struct {
	ID         string   `json:"id"`
	MatchDayID string   `json:"match_day_id"`
	Court      int      `json:"court"`
	MatchCode  string   `json:"match_code"`
	MatchType  string   `json:"match_type"`
	Date       string   `json:"date"`
	Team1      []string `json:"team1"`
	Team2      []string `json:"team2"`
	WinnerIDs  []string `json:"winner_ids,omitempty"`
	Score      string   `json:"score,omitempty"`
	CreatedAt  int64    `json:"created_at"`
}

// CourtGroup is one court's batch of matches for a day.
type CourtGroup struct {
	Court   int     `json:"court"`
	Matches []Match `json:"matches"`
}

// Participants returns all player ids in the match, team1 first.
func (m *Match) Participants() []string {
	participants := make([]string, 0, len(m.Team1)+len(m.Team2))
	participants = append(participants, m.Team1...)
	participants = append(participants, m.Team2...)
	return participants
}

// LoserIDs returns the participants not in the winner set. Empty when no
// winner has been recorded.
func (m *Match) LoserIDs() []string {
	if len(m.WinnerIDs) == 0 {
		return nil
	}
	winners := make(map[string]bool, len(m.WinnerIDs))
	for _, id := range m.WinnerIDs {
		winners[id] = true
	}
	var losers []string
	for _, id := range m.Participants() {
		if !winners[id] {
			losers = append(losers, id)
		}
	}
	return losers
}

// DeriveMatchType returns singles iff both teams have exactly one member.
func DeriveMatchType(team1, team2 []string) string {
	if len(team1) == 1 && len(team2) == 1 {
		return MatchTypeSingles
	}
	return MatchTypeDoubles
}
