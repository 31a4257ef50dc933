package leaderboard

import "context"

// Mirror keeps a fast, queryable copy of player ratings. The database is the
// source of truth; the mirror is refreshed after every settlement.
type Mirror interface {
	BatchSetRatings(ctx context.Context, ratings map[string]int) error
	TopN(ctx context.Context, n int) ([]Entry, error)
	PlayerRank(ctx context.Context, playerID string) (*Entry, error)
	Close() error
}
