package schedule_test

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/mauv0809/solid-garbanzo/internal/database"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (schedule.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return schedule.New(db), db, teardown
}

func seedPlayers(t *testing.T, db *sql.DB, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("p%d", i+1)
		_, err := db.Exec(
			"INSERT INTO players (id, name, initial_rating, current_rating) VALUES (?, ?, 1500, 1500)",
			ids[i], fmt.Sprintf("Player %d", i+1),
		)
		require.NoError(t, err)
	}
	return ids
}

func TestGetOrCreateMatchDay(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	day, err := store.GetOrCreateMatchDay("2025-08-25")
	require.NoError(t, err)
	assert.NotEmpty(t, day.ID)
	assert.False(t, day.Finalized)

	// A second call for the same date returns the same day.
	again, err := store.GetOrCreateMatchDay("2025-08-25")
	require.NoError(t, err)
	assert.Equal(t, day.ID, again.ID)

	byDate, err := store.GetMatchDayByDate("2025-08-25")
	require.NoError(t, err)
	assert.Equal(t, day.ID, byDate.ID)

	byID, err := store.GetMatchDay(day.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-25", byID.Date)
}

func TestGetMatchDay_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetMatchDay("ghost")
	assert.ErrorIs(t, err, schedule.ErrMatchDayNotFound)

	_, err = store.GetMatchDayByDate("1999-01-01")
	assert.ErrorIs(t, err, schedule.ErrMatchDayNotFound)
}

func TestCreateMatches_WritesZeroAwards(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	ids := seedPlayers(t, db, 4)
	day, err := store.GetOrCreateMatchDay("2025-08-25")
	require.NoError(t, err)

	match := schedule.Match{
		ID:         "m1",
		MatchDayID: day.ID,
		Court:      1,
		MatchCode:  "M1",
		MatchType:  schedule.MatchTypeDoubles,
		Date:       day.Date,
		Team1:      []string{ids[0], ids[1]},
		Team2:      []string{ids[2], ids[3]},
	}
	require.NoError(t, store.CreateMatches([]schedule.Match{match}))

	stored, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[1]}, stored.Team1)
	assert.Equal(t, []string{ids[2], ids[3]}, stored.Team2)
	assert.Empty(t, stored.WinnerIDs)

	var awardCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*), COALESCE(SUM(delta), 0) FROM awards WHERE match_id = 'm1'").Scan(&awardCount, new(int)))
	assert.Equal(t, 4, awardCount)

	has, err := store.HasMatches(day.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCreateMatches_RollsBackOnFailure(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	ids := seedPlayers(t, db, 4)
	day, err := store.GetOrCreateMatchDay("2025-08-25")
	require.NoError(t, err)

	good := schedule.Match{
		ID: "m1", MatchDayID: day.ID, Court: 1, MatchCode: "M1",
		MatchType: schedule.MatchTypeDoubles, Date: day.Date,
		Team1: []string{ids[0], ids[1]}, Team2: []string{ids[2], ids[3]},
	}
	// Unknown participant violates the awards foreign key.
	bad := schedule.Match{
		ID: "m2", MatchDayID: day.ID, Court: 1, MatchCode: "M2",
		MatchType: schedule.MatchTypeDoubles, Date: day.Date,
		Team1: []string{ids[0], "ghost"}, Team2: []string{ids[2], ids[3]},
	}

	err = store.CreateMatches([]schedule.Match{good, bad})
	require.Error(t, err)

	// The whole batch rolled back, including the valid match.
	has, err := store.HasMatches(day.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func awardDeltas(t *testing.T, db *sql.DB, matchID string) map[string]int {
	t.Helper()
	rows, err := db.Query("SELECT player_id, delta FROM awards WHERE match_id = ?", matchID)
	require.NoError(t, err)
	defer rows.Close()

	deltas := make(map[string]int)
	for rows.Next() {
		var playerID string
		var delta int
		require.NoError(t, rows.Scan(&playerID, &delta))
		deltas[playerID] = delta
	}
	require.NoError(t, rows.Err())
	return deltas
}

func TestUpdateMatchResult(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	ids := seedPlayers(t, db, 2)
	day, err := store.GetOrCreateMatchDay("2025-08-25")
	require.NoError(t, err)
	require.NoError(t, store.CreateMatches([]schedule.Match{{
		ID: "m1", MatchDayID: day.ID, Court: 1, MatchCode: "M5",
		MatchType: schedule.MatchTypeSingles, Date: day.Date,
		Team1: []string{ids[0]}, Team2: []string{ids[1]},
	}}))

	require.NoError(t, store.UpdateMatchResult("m1", []string{ids[0]}, "21-15", map[string]int{
		ids[0]: 10, ids[1]: -10,
	}))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0]}, match.WinnerIDs)
	assert.Equal(t, []string{ids[1]}, match.LoserIDs())
	assert.Equal(t, "21-15", match.Score)

	// The award deltas landed in the same write.
	assert.Equal(t, map[string]int{ids[0]: 10, ids[1]: -10}, awardDeltas(t, db, "m1"))
}

func TestUpdateMatchResult_UnknownMatchWritesNothing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	ids := seedPlayers(t, db, 2)

	err := store.UpdateMatchResult("ghost", []string{ids[0]}, "21-15", map[string]int{
		ids[0]: 10, ids[1]: -10,
	})
	assert.ErrorIs(t, err, schedule.ErrMatchNotFound)

	// The whole write rolled back: no orphaned award rows either.
	assert.Empty(t, awardDeltas(t, db, "ghost"))
}

func TestUpdateMatchTeams_ResetsAwardsAndWinner(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	ids := seedPlayers(t, db, 5)
	day, err := store.GetOrCreateMatchDay("2025-08-25")
	require.NoError(t, err)
	require.NoError(t, store.CreateMatches([]schedule.Match{{
		ID: "m1", MatchDayID: day.ID, Court: 1, MatchCode: "M1",
		MatchType: schedule.MatchTypeDoubles, Date: day.Date,
		Team1: []string{ids[0], ids[1]}, Team2: []string{ids[2], ids[3]},
	}}))
	require.NoError(t, store.UpdateMatchResult("m1", []string{ids[0], ids[1]}, "21-15", map[string]int{
		ids[0]: 5, ids[1]: 5, ids[2]: -5, ids[3]: -5,
	}))

	// Swap one player out of team1.
	require.NoError(t, store.UpdateMatchTeams("m1", []string{ids[0], ids[4]}, []string{ids[2], ids[3]}, ""))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[4]}, match.Team1)
	assert.Equal(t, schedule.MatchTypeDoubles, match.MatchType)
	assert.Empty(t, match.WinnerIDs)

	// Zero awards exist exactly for the new lineup; no stale row for the
	// swapped-out player survives.
	assert.Equal(t, map[string]int{ids[0]: 0, ids[4]: 0, ids[2]: 0, ids[3]: 0}, awardDeltas(t, db, "m1"))
}

func TestUpdateMatchScore(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	ids := seedPlayers(t, db, 2)
	day, err := store.GetOrCreateMatchDay("2025-08-25")
	require.NoError(t, err)
	require.NoError(t, store.CreateMatches([]schedule.Match{{
		ID: "m1", MatchDayID: day.ID, Court: 1, MatchCode: "M5",
		MatchType: schedule.MatchTypeSingles, Date: day.Date,
		Team1: []string{ids[0]}, Team2: []string{ids[1]},
	}}))
	require.NoError(t, store.UpdateMatchResult("m1", []string{ids[0]}, "21-15", map[string]int{
		ids[0]: 10, ids[1]: -10,
	}))

	require.NoError(t, store.UpdateMatchScore("m1", "21-17"))

	// Winner and awards are untouched by a score correction.
	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, "21-17", match.Score)
	assert.Equal(t, []string{ids[0]}, match.WinnerIDs)
	assert.Equal(t, map[string]int{ids[0]: 10, ids[1]: -10}, awardDeltas(t, db, "m1"))

	assert.ErrorIs(t, store.UpdateMatchScore("ghost", "0-0"), schedule.ErrMatchNotFound)
}
