package schedule_test

import (
	"database/sql"
	"testing"

	"github.com/mauv0809/solid-garbanzo/internal/attendance"
	"github.com/mauv0809/solid-garbanzo/internal/database"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGenerator(t *testing.T) (*schedule.Generator, schedule.Store, attendance.Ledger, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := schedule.New(db)
	ledger := attendance.New(db)
	return schedule.NewGenerator(store, ledger), store, ledger, db, teardown
}

func markPresent(t *testing.T, ledger attendance.Ledger, store schedule.Store, date string, playerIDs []string) string {
	t.Helper()
	day, err := store.GetOrCreateMatchDay(date)
	require.NoError(t, err)
	for _, id := range playerIDs {
		require.NoError(t, ledger.Mark(day.ID, id, true))
	}
	return day.ID
}

func TestGenerate_FullGroup(t *testing.T) {
	gen, store, ledger, db, teardown := setupGenerator(t)
	defer teardown()

	ids := seedPlayers(t, db, 8)
	dayID := markPresent(t, ledger, store, "2025-08-25", ids)

	groups, err := gen.Generate("2025-08-25")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Court)
	require.Len(t, groups[0].Matches, 12)

	// Four doubles, four singles, then four more doubles.
	for i, match := range groups[0].Matches {
		if i >= 4 && i < 8 {
			assert.Equal(t, schedule.MatchTypeSingles, match.MatchType, "match %s", match.MatchCode)
		} else {
			assert.Equal(t, schedule.MatchTypeDoubles, match.MatchType, "match %s", match.MatchCode)
		}
	}

	// Every player appears in exactly five matches: four doubles slots and
	// one singles slot each, 40 participant slots over 8 players.
	appearances := make(map[string]int)
	for _, match := range groups[0].Matches {
		for _, id := range match.Participants() {
			appearances[id]++
		}
	}
	require.Len(t, appearances, 8)
	for id, count := range appearances {
		assert.Equal(t, 5, count, "player %s", id)
	}

	// The draw is persisted.
	stored, err := store.GetMatchesForDay(dayID)
	require.NoError(t, err)
	assert.Len(t, stored, 12)
}

func TestGenerate_MultipleCourts(t *testing.T) {
	gen, store, ledger, db, teardown := setupGenerator(t)
	defer teardown()

	ids := seedPlayers(t, db, 16)
	markPresent(t, ledger, store, "2025-08-25", ids)

	groups, err := gen.Generate("2025-08-25")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Court)
	assert.Equal(t, 2, groups[1].Court)

	// Partitioning follows attendance-recording order: the first eight
	// players marked present land on court 1.
	court1 := make(map[string]bool)
	for _, match := range groups[0].Matches {
		for _, id := range match.Participants() {
			court1[id] = true
		}
	}
	for _, id := range ids[:8] {
		assert.True(t, court1[id], "player %s should be on court 1", id)
	}
	for _, id := range ids[8:] {
		assert.False(t, court1[id], "player %s should not be on court 1", id)
	}
}

func TestGenerate_DropsRemainder(t *testing.T) {
	gen, store, ledger, db, teardown := setupGenerator(t)
	defer teardown()

	ids := seedPlayers(t, db, 11)
	markPresent(t, ledger, store, "2025-08-25", ids)

	groups, err := gen.Generate("2025-08-25")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	// The three leftover players are not scheduled anywhere.
	scheduled := make(map[string]bool)
	for _, match := range groups[0].Matches {
		for _, id := range match.Participants() {
			scheduled[id] = true
		}
	}
	assert.Len(t, scheduled, 8)
	for _, id := range ids[8:] {
		assert.False(t, scheduled[id], "player %s", id)
	}
}

func TestGenerate_TooFewPlayers(t *testing.T) {
	gen, store, ledger, db, teardown := setupGenerator(t)
	defer teardown()

	ids := seedPlayers(t, db, 7)
	dayID := markPresent(t, ledger, store, "2025-08-25", ids)

	groups, err := gen.Generate("2025-08-25")
	require.NoError(t, err)
	assert.Empty(t, groups)

	has, err := store.HasMatches(dayID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGenerate_AlreadyGenerated(t *testing.T) {
	gen, store, ledger, db, teardown := setupGenerator(t)
	defer teardown()

	ids := seedPlayers(t, db, 8)
	markPresent(t, ledger, store, "2025-08-25", ids)

	_, err := gen.Generate("2025-08-25")
	require.NoError(t, err)

	_, err = gen.Generate("2025-08-25")
	assert.ErrorIs(t, err, schedule.ErrAlreadyGenerated)
}

func TestGenerate_RefusesFinalizedDay(t *testing.T) {
	gen, store, ledger, db, teardown := setupGenerator(t)
	defer teardown()

	ids := seedPlayers(t, db, 8)
	dayID := markPresent(t, ledger, store, "2025-08-25", ids)

	_, err := db.Exec("UPDATE match_days SET finalized = 1 WHERE id = ?", dayID)
	require.NoError(t, err)

	_, err = gen.Generate("2025-08-25")
	assert.ErrorIs(t, err, schedule.ErrAlreadyGenerated)
}
