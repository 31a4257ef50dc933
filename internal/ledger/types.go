package ledger

import (
	"database/sql"
	"sync"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Award is a per-match, per-player rating delta. A match has exactly one
// award row per participant; re-recording a result overwrites the row
// rather than stacking a second delta on top.
type Award struct {
	MatchID  string `json:"match_id"`
	PlayerID string `json:"player_id"`
	Delta    int    `json:"delta"`
}
