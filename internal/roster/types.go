package roster

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for the player roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ErrPlayerNotFound is returned when a player id has no roster entry.
var ErrPlayerNotFound = errors.New("player not found")

// ErrAlreadySettled is returned when rating deltas are applied twice for the
// same match day.
var ErrAlreadySettled = errors.New("match day already settled")

// PlayerInfo represents a player in the roster.
// InitialRating is fixed when the player is first inserted; CurrentRating is
// mutated only through ApplyRatingDeltas.
type PlayerInfo struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Gender              string `json:"gender"`
	InitialRating       int    `json:"initial_rating"`
	CurrentRating       int    `json:"current_rating"`
	JoiningDate         string `json:"joining_date"`
	LastRatingUpdatedTS *int64 `json:"last_rating_updated_ts,omitempty"`
}

// RatingSnapshot is a player's rating as of one match day's settlement.
// Snapshots are append-only.
type RatingSnapshot struct {
	PlayerID   string `json:"player_id"`
	MatchDayID string `json:"match_day_id"`
	Rating     int    `json:"rating"`
	CreatedAt  int64  `json:"created_at"`
}
