package leaderboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// New connects to Redis and returns a rating Mirror.
func New(addr, password string, db int) (Mirror, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	log.Info("Connected to Redis leaderboard mirror", "addr", addr)
	return &mirror{client: client}, nil
}

// NewWithClient wraps an existing Redis client. Useful for tests.
func NewWithClient(client *redis.Client) Mirror {
	return &mirror{client: client}
}

func (m *mirror) Close() error {
	return m.client.Close()
}

// BatchSetRatings writes every player's rating in one pipeline.
func (m *mirror) BatchSetRatings(ctx context.Context, ratings map[string]int) error {
	pipe := m.client.Pipeline()
	for playerID, rating := range ratings {
		pipe.ZAdd(ctx, ratingsKey, redis.Z{
			Score:  float64(rating),
			Member: playerID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("batch setting ratings: %w", err)
	}
	log.Debug("Refreshed leaderboard mirror", "players", len(ratings))
	return nil
}

// TopN returns the highest-rated players in descending order.
func (m *mirror) TopN(ctx context.Context, n int) ([]Entry, error) {
	results, err := m.client.ZRevRangeWithScores(ctx, ratingsKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting top n: %w", err)
	}

	entries := make([]Entry, len(results))
	for i, result := range results {
		entries[i] = Entry{
			Rank:     i + 1,
			PlayerID: result.Member.(string),
			Rating:   int(result.Score),
		}
	}
	return entries, nil
}

// PlayerRank returns a single player's rank and mirrored rating.
func (m *mirror) PlayerRank(ctx context.Context, playerID string) (*Entry, error) {
	pipe := m.client.Pipeline()
	rankCmd := pipe.ZRevRank(ctx, ratingsKey, playerID)
	scoreCmd := pipe.ZScore(ctx, ratingsKey, playerID)
	if _, err := pipe.Exec(ctx); err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotRanked
		}
		return nil, fmt.Errorf("getting player rank: %w", err)
	}

	return &Entry{
		Rank:     int(rankCmd.Val()) + 1,
		PlayerID: playerID,
		Rating:   int(scoreCmd.Val()),
	}, nil
}
