package settlement

import (
	"errors"
	"sync"

	"github.com/mauv0809/solid-garbanzo/internal/attendance"
	"github.com/mauv0809/solid-garbanzo/internal/ledger"
	"github.com/mauv0809/solid-garbanzo/internal/metrics"
	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
)

// ErrAlreadyFinalized is returned when a match day's settlement has already
// been applied.
var ErrAlreadyFinalized = roster.ErrAlreadySettled

// ErrNoMatches is returned when finalize is requested for a match day with
// no generated matches.
var ErrNoMatches = errors.New("no matches for match day")

// ValidationError describes an invalid match edit. No mutation happens when
// one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// MatchPatch is a partial update to a match. Nil fields are left untouched.
type MatchPatch struct {
	Team1      []string
	Team2      []string
	WinnerTeam string // "team1" or "team2"
	Score      *string
}

// FinalizeResult reports the outcome of a match day settlement.
type FinalizeResult struct {
	MatchDayID     string         `json:"match_day_id"`
	UpdatedPlayers int            `json:"updated_players"`
	Deltas         map[string]int `json:"deltas"`
}

// Engine computes rating deltas for match results and commits them to the
// roster at finalize.
type Engine struct {
	schedule   schedule.Store
	awards     ledger.Ledger
	roster     roster.RosterStore
	attendance attendance.Ledger
	metrics    metrics.Metrics

	// finalizeMu serializes finalize calls per match day.
	finalizeMu sync.Mutex
	inFlight   map[string]*sync.Mutex
}
