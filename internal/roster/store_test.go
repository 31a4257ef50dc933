package roster_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/solid-garbanzo/internal/database"
	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (roster.RosterStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	return store, db, teardown
}

func TestUpsertAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertPlayers([]roster.PlayerInfo{
		{ID: "p1", Name: "Anna", Gender: "F", InitialRating: 1500, JoiningDate: "2025-01-10"},
		{ID: "p2", Name: "Bent", Gender: "M", InitialRating: 1400, JoiningDate: "2025-02-01"},
	})
	require.NoError(t, err)

	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p3"))

	player, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", player.Name)
	assert.Equal(t, 1500, player.InitialRating)
	assert.Equal(t, 1500, player.CurrentRating)
	assert.Nil(t, player.LastRatingUpdatedTS)

	all, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpsertPlayerDoesNotResetRatings(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayer(roster.PlayerInfo{ID: "p1", Name: "Anna", InitialRating: 1500}))

	// Simulate settled rating drift.
	_, err := db.Exec("UPDATE players SET current_rating = 1540 WHERE id = 'p1'")
	require.NoError(t, err)

	// A profile update must not touch either rating.
	require.NoError(t, store.UpsertPlayer(roster.PlayerInfo{ID: "p1", Name: "Anna B", InitialRating: 9999}))

	player, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, "Anna B", player.Name)
	assert.Equal(t, 1500, player.InitialRating)
	assert.Equal(t, 1540, player.CurrentRating)
}

func TestGetPlayer_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetPlayer("ghost")
	assert.ErrorIs(t, err, roster.ErrPlayerNotFound)
}

func TestGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]roster.PlayerInfo{
		{ID: "p1", Name: "Anna", InitialRating: 1500},
		{ID: "p2", Name: "Bent", InitialRating: 1400},
		{ID: "p3", Name: "Carl", InitialRating: 1300},
	}))

	t.Run("gets multiple players", func(t *testing.T) {
		players, err := store.GetPlayers([]string{"p1", "p3"})
		require.NoError(t, err)
		require.Len(t, players, 2)

		playerMap := make(map[string]roster.PlayerInfo)
		for _, p := range players {
			playerMap[p.ID] = p
		}
		assert.Contains(t, playerMap, "p1")
		assert.Contains(t, playerMap, "p3")
	})

	t.Run("returns empty slice for empty id slice", func(t *testing.T) {
		players, err := store.GetPlayers([]string{})
		require.NoError(t, err)
		assert.Len(t, players, 0)
	})
}

func TestGetPlayersSortedByRating(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]roster.PlayerInfo{
		{ID: "p1", Name: "Anna", InitialRating: 1500},
		{ID: "p2", Name: "Bent", InitialRating: 1700},
		{ID: "p3", Name: "Carl", InitialRating: 1300},
	}))

	players, err := store.GetPlayersSortedByRating()
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "Bent", players[0].Name)
	assert.Equal(t, "Anna", players[1].Name)
	assert.Equal(t, "Carl", players[2].Name)
}

func TestApplyRatingDeltas(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]roster.PlayerInfo{
		{ID: "p1", Name: "Anna", InitialRating: 1500},
		{ID: "p2", Name: "Bent", InitialRating: 1400},
		{ID: "p3", Name: "Carl", InitialRating: 1300},
	}))
	_, err := db.Exec("INSERT INTO match_days (id, date, created_at) VALUES ('d1', '2025-08-25', 0)")
	require.NoError(t, err)

	appliedAt := time.Date(2025, 8, 25, 21, 0, 0, 0, time.UTC)
	updated, err := store.ApplyRatingDeltas("d1", map[string]int{"p1": 15, "p2": -15, "p3": -10}, appliedAt)
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	p1, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, 1515, p1.CurrentRating)
	assert.Equal(t, 1500, p1.InitialRating)
	require.NotNil(t, p1.LastRatingUpdatedTS)
	assert.Equal(t, appliedAt.Unix(), *p1.LastRatingUpdatedTS)

	p2, err := store.GetPlayer("p2")
	require.NoError(t, err)
	assert.Equal(t, 1385, p2.CurrentRating)

	// Snapshots record the post-settlement rating.
	snaps, err := store.GetRatingSnapshots("p1")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "d1", snaps[0].MatchDayID)
	assert.Equal(t, 1515, snaps[0].Rating)

	t.Run("second settlement for the same day is refused", func(t *testing.T) {
		_, err := store.ApplyRatingDeltas("d1", map[string]int{"p1": 15}, appliedAt)
		assert.ErrorIs(t, err, roster.ErrAlreadySettled)

		// Ratings unchanged by the refused call.
		p1, err := store.GetPlayer("p1")
		require.NoError(t, err)
		assert.Equal(t, 1515, p1.CurrentRating)
	})
}

func TestApplyRatingDeltas_UnknownPlayerRollsBack(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayer(roster.PlayerInfo{ID: "p1", Name: "Anna", InitialRating: 1500}))
	_, err := db.Exec("INSERT INTO match_days (id, date, created_at) VALUES ('d1', '2025-08-25', 0)")
	require.NoError(t, err)

	_, err = store.ApplyRatingDeltas("d1", map[string]int{"p1": 15, "ghost": -15}, time.Now())
	require.Error(t, err)

	// Nothing applied, day still open.
	p1, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, 1500, p1.CurrentRating)

	var finalized int
	require.NoError(t, db.QueryRow("SELECT finalized FROM match_days WHERE id = 'd1'").Scan(&finalized))
	assert.Equal(t, 0, finalized)
}
