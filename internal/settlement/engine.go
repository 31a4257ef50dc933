package settlement

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/solid-garbanzo/internal/attendance"
	"github.com/mauv0809/solid-garbanzo/internal/ledger"
	"github.com/mauv0809/solid-garbanzo/internal/metrics"
	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/mauv0809/solid-garbanzo/internal/scoring"
)

// NewEngine creates a new settlement Engine.
func NewEngine(
	scheduleStore schedule.Store,
	awards ledger.Ledger,
	rosterStore roster.RosterStore,
	attendanceLedger attendance.Ledger,
	m metrics.Metrics,
) *Engine {
	return &Engine{
		schedule:   scheduleStore,
		awards:     awards,
		roster:     rosterStore,
		attendance: attendanceLedger,
		metrics:    m,
		inFlight:   make(map[string]*sync.Mutex),
	}
}

// RecordResult stores a match's winner set and score and overwrites the
// award deltas for every participant. Player ratings are not touched here;
// that happens at finalize. Calling again with a different winner flips the
// deltas because awards are overwritten, never accumulated.
func (e *Engine) RecordResult(matchID string, winnerIDs []string, score string) (*schedule.Match, error) {
	match, err := e.schedule.GetMatch(matchID)
	if err != nil {
		return nil, err
	}

	if !sameMembers(winnerIDs, match.Team1) && !sameMembers(winnerIDs, match.Team2) {
		return nil, &ValidationError{Reason: "winner ids must exactly match one team"}
	}

	winnerSum, err := e.ratingSum(winnerIDs)
	if err != nil {
		return nil, err
	}
	loserIDs := subtract(match.Participants(), winnerIDs)
	loserSum, err := e.ratingSum(loserIDs)
	if err != nil {
		return nil, err
	}

	deltas := scoring.Deltas(match.MatchCode, winnerSum, loserSum)

	awardDeltas := make(map[string]int, len(winnerIDs)+len(loserIDs))
	for _, id := range winnerIDs {
		awardDeltas[id] = deltas.Winner
	}
	for _, id := range loserIDs {
		awardDeltas[id] = deltas.Loser
	}

	if err := e.schedule.UpdateMatchResult(matchID, winnerIDs, score, awardDeltas); err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.IncResultsRecorded()
	}
	log.Info("Recorded match result",
		"matchID", matchID,
		"matchCode", match.MatchCode,
		"winnerDelta", deltas.Winner,
		"loserDelta", deltas.Loser,
	)
	return e.schedule.GetMatch(matchID)
}

// UpdateMatch applies a partial edit to a match. Team changes are validated
// (no duplicate ids within a team, no overlap, arity preserved) before any
// write; on a team change every existing award row is replaced with fresh
// zero-delta rows and any prior winner selection is cleared so the caller
// must pick again. If a winner is resolved after the edit, deltas are
// recomputed via RecordResult.
func (e *Engine) UpdateMatch(matchID string, patch MatchPatch) (*schedule.Match, error) {
	match, err := e.schedule.GetMatch(matchID)
	if err != nil {
		return nil, err
	}

	newTeam1 := match.Team1
	if patch.Team1 != nil {
		newTeam1 = patch.Team1
	}
	newTeam2 := match.Team2
	if patch.Team2 != nil {
		newTeam2 = patch.Team2
	}

	if hasDuplicates(newTeam1) || hasDuplicates(newTeam2) {
		return nil, &ValidationError{Reason: "a player cannot appear twice in a team"}
	}
	if overlaps(newTeam1, newTeam2) {
		return nil, &ValidationError{Reason: "a player cannot be on both teams"}
	}
	if len(newTeam1) != len(match.Team1) || len(newTeam2) != len(match.Team2) {
		return nil, &ValidationError{Reason: "team sizes must match the original match"}
	}

	teamsChanged := !sameMembers(newTeam1, match.Team1) || !sameMembers(newTeam2, match.Team2)

	score := match.Score
	if patch.Score != nil {
		score = *patch.Score
	}

	winnerIDs := match.WinnerIDs
	if teamsChanged {
		// A different roster invalidates the previous winner selection.
		winnerIDs = nil
	}
	switch patch.WinnerTeam {
	case "":
	case "team1":
		winnerIDs = newTeam1
	case "team2":
		winnerIDs = newTeam2
	default:
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown winner team %q", patch.WinnerTeam)}
	}

	if teamsChanged {
		// One transaction rewrites the teams, clears the winner and
		// replaces the award rows with zeros for the new lineup.
		if err := e.schedule.UpdateMatchTeams(matchID, newTeam1, newTeam2, score); err != nil {
			return nil, err
		}
		log.Info("Replaced match teams", "matchID", matchID)
	}

	if len(winnerIDs) > 0 {
		return e.RecordResult(matchID, winnerIDs, score)
	}

	if !teamsChanged && patch.Score != nil {
		if err := e.schedule.UpdateMatchScore(matchID, score); err != nil {
			return nil, err
		}
	}
	return e.schedule.GetMatch(matchID)
}

// FinalizeMatchDay sums every award delta for the day per player, adds the
// absence penalty for players explicitly marked absent, and atomically
// applies the totals to the roster, stamping snapshots. A second call for
// the same day fails with ErrAlreadyFinalized. Concurrent calls for the
// same day are serialized.
func (e *Engine) FinalizeMatchDay(matchDayID string) (*FinalizeResult, error) {
	dayMu := e.lockFor(matchDayID)
	dayMu.Lock()
	defer dayMu.Unlock()

	start := time.Now()

	if _, err := e.schedule.GetMatchDay(matchDayID); err != nil {
		return nil, err
	}
	hasMatches, err := e.schedule.HasMatches(matchDayID)
	if err != nil {
		return nil, err
	}
	if !hasMatches {
		return nil, fmt.Errorf("finalize %s: %w", matchDayID, ErrNoMatches)
	}

	totals, err := e.awards.SumByMatchDay(matchDayID)
	if err != nil {
		return nil, err
	}

	absent, err := e.attendance.GetAbsentPlayerIDs(matchDayID)
	if err != nil {
		return nil, err
	}
	for _, playerID := range absent {
		totals[playerID] += scoring.AbsencePenalty
	}

	updated, err := e.roster.ApplyRatingDeltas(matchDayID, totals, time.Now())
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.IncFinalizeRuns()
		e.metrics.ObserveFinalizeDuration(time.Since(start).Seconds())
	}
	log.Info("Finalized match day", "matchDayID", matchDayID, "updatedPlayers", updated)

	return &FinalizeResult{
		MatchDayID:     matchDayID,
		UpdatedPlayers: updated,
		Deltas:         totals,
	}, nil
}

func (e *Engine) lockFor(matchDayID string) *sync.Mutex {
	e.finalizeMu.Lock()
	defer e.finalizeMu.Unlock()
	mu, ok := e.inFlight[matchDayID]
	if !ok {
		mu = &sync.Mutex{}
		e.inFlight[matchDayID] = mu
	}
	return mu
}

func (e *Engine) ratingSum(playerIDs []string) (int, error) {
	players, err := e.roster.GetPlayers(playerIDs)
	if err != nil {
		return 0, err
	}
	if len(players) != len(playerIDs) {
		return 0, fmt.Errorf("roster lookup for %d players returned %d: %w", len(playerIDs), len(players), roster.ErrPlayerNotFound)
	}
	sum := 0
	for _, player := range players {
		sum += player.CurrentRating
	}
	return sum, nil
}

// sameMembers compares two id sets order-insensitively.
func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string{}, a...)
	bs := append([]string{}, b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func hasDuplicates(team []string) bool {
	seen := make(map[string]bool, len(team))
	for _, id := range team {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

func overlaps(a, b []string) bool {
	seen := make(map[string]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	for _, id := range b {
		if seen[id] {
			return true
		}
	}
	return false
}

func subtract(all, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	var rest []string
	for _, id := range all {
		if !drop[id] {
			rest = append(rest, id)
		}
	}
	return rest
}
