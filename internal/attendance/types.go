package attendance

import (
	"database/sql"
	"sync"
)

// store handles database operations for the attendance ledger.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Record is one player's present/absent flag for a match day. Exactly one
// record exists per (match day, player) pair.
type Record struct {
	MatchDayID string `json:"match_day_id"`
	PlayerID   string `json:"player_id"`
	Present    bool   `json:"present"`
}
