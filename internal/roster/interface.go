package roster

import "time"

// RosterStore defines the interface for interacting with the player roster.
type RosterStore interface {
	UpsertPlayer(player PlayerInfo) error
	UpsertPlayers(players []PlayerInfo) error
	GetPlayer(playerID string) (*PlayerInfo, error)
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)
	GetAllPlayers() ([]PlayerInfo, error)
	GetPlayersSortedByRating() ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool
	ApplyRatingDeltas(matchDayID string, deltas map[string]int, appliedAt time.Time) (int, error)
	GetRatingSnapshots(playerID string) ([]RatingSnapshot, error)
}
