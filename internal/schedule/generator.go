package schedule

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/solid-garbanzo/internal/attendance"
)

// Generator expands a day's attendance into the fixed per-court draw.
type Generator struct {
	store      Store
	attendance attendance.Ledger
}

// NewGenerator creates a new schedule Generator.
func NewGenerator(store Store, ledger attendance.Ledger) *Generator {
	return &Generator{
		store:      store,
		attendance: ledger,
	}
}

// Generate partitions the players marked present for a date into consecutive
// groups of eight, in attendance-recording order, and expands each full
// group into the 12-match template on its own court. Players left over after
// partitioning are dropped from the draw. A date that already has matches
// fails with ErrAlreadyGenerated; the caller is expected to surface that
// non-destructively.
func (g *Generator) Generate(date string) ([]CourtGroup, error) {
	day, err := g.store.GetOrCreateMatchDay(date)
	if err != nil {
		return nil, err
	}
	if day.Finalized {
		return nil, fmt.Errorf("generate schedule for %s: %w", date, ErrAlreadyGenerated)
	}

	hasMatches, err := g.store.HasMatches(day.ID)
	if err != nil {
		return nil, err
	}
	if hasMatches {
		return nil, fmt.Errorf("generate schedule for %s: %w", date, ErrAlreadyGenerated)
	}

	present, err := g.attendance.GetPresentPlayerIDs(day.ID)
	if err != nil {
		return nil, err
	}

	numGroups := len(present) / GroupSize
	if dropped := len(present) % GroupSize; dropped > 0 {
		log.Warn("Dropping residual players from draw", "date", date, "dropped", dropped)
	}
	if numGroups == 0 {
		log.Info("Not enough present players for a full court", "date", date, "present", len(present))
		return []CourtGroup{}, nil
	}

	now := time.Now().Unix()
	groups := make([]CourtGroup, 0, numGroups)
	var allMatches []Match

	for groupIdx := 0; groupIdx < numGroups; groupIdx++ {
		court := groupIdx + 1
		groupPlayers := present[groupIdx*GroupSize : (groupIdx+1)*GroupSize]

		group := CourtGroup{Court: court, Matches: make([]Match, 0, MatchesPerCourt)}
		for _, slot := range matchTemplate {
			team1 := pickTeam(groupPlayers, slot.Team1)
			team2 := pickTeam(groupPlayers, slot.Team2)
			match := Match{
				ID:         uuid.New().String(),
				MatchDayID: day.ID,
				Court:      court,
				MatchCode:  slot.Code,
				MatchType:  DeriveMatchType(team1, team2),
				Date:       date,
				Team1:      team1,
				Team2:      team2,
				CreatedAt:  now,
			}
			group.Matches = append(group.Matches, match)
		}
		groups = append(groups, group)
		allMatches = append(allMatches, group.Matches...)
	}

	if err := g.store.CreateMatches(allMatches); err != nil {
		return nil, fmt.Errorf("failed to persist schedule for %s: %w", date, err)
	}

	log.Info("Generated schedule", "date", date, "courts", numGroups, "matches", len(allMatches))
	return groups, nil
}
