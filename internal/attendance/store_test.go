package attendance_test

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/mauv0809/solid-garbanzo/internal/attendance"
	"github.com/mauv0809/solid-garbanzo/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (attendance.Ledger, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO match_days (id, date, created_at) VALUES ('d1', '2025-08-25', 0)")
	require.NoError(t, err)
	for i := 1; i <= 4; i++ {
		_, err = db.Exec("INSERT INTO players (id, name) VALUES (?, ?)", fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i))
		require.NoError(t, err)
	}

	return attendance.New(db), db, teardown
}

func TestMarkAndGet(t *testing.T) {
	ledger, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, ledger.Mark("d1", "p1", true))
	require.NoError(t, ledger.Mark("d1", "p2", false))

	records, err := ledger.GetForDay("d1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Present)
	assert.False(t, records[1].Present)

	present, err := ledger.GetPresentPlayerIDs("d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, present)

	absent, err := ledger.GetAbsentPlayerIDs("d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, absent)
}

func TestMark_UpsertsSingleRecord(t *testing.T) {
	ledger, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, ledger.Mark("d1", "p1", true))
	require.NoError(t, ledger.Mark("d1", "p1", false))

	records, err := ledger.GetForDay("d1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Present)
}

func TestMarkBulk_PreservesRecordingOrder(t *testing.T) {
	ledger, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, ledger.MarkBulk("d1", []attendance.Record{
		{PlayerID: "p3", Present: true},
		{PlayerID: "p1", Present: true},
		{PlayerID: "p4", Present: true},
		{PlayerID: "p2", Present: true},
	}))

	// Generation partitions the present list in recording order, not sorted.
	present, err := ledger.GetPresentPlayerIDs("d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1", "p4", "p2"}, present)
}
