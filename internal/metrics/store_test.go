package metrics

import (
	"testing"

	"github.com/mauv0809/solid-garbanzo/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (CounterStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no counters
	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	// 2. Increment a new key
	store.Increment(CounterSchedulesGenerated)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{CounterSchedulesGenerated: 1}, counters)

	// 3. Increment the same key again
	store.Increment(CounterSchedulesGenerated)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{CounterSchedulesGenerated: 2}, counters)

	// 4. Increment a different key
	store.Increment(CounterFinalizeRuns)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		CounterSchedulesGenerated: 2,
		CounterFinalizeRuns:       1,
	}, counters)
}
