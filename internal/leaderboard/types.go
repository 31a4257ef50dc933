package leaderboard

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

type mirror struct {
	client *redis.Client
}

// ErrPlayerNotRanked is returned when a player has no entry in the mirror.
var ErrPlayerNotRanked = errors.New("player not ranked")

// Entry is one row of the rating leaderboard.
type Entry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Rating   int    `json:"rating"`
}

// ratingsKey is the sorted set holding every player's current rating.
const ratingsKey = "leaderboard:ratings"
