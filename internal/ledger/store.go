package ledger

import (
	"database/sql"
	"fmt"
)

// New creates a new award Ledger.
func New(db *sql.DB) Ledger {
	return &store{
		db: db,
	}
}

// GetByMatch retrieves the award rows for a match.
func (s *store) GetByMatch(matchID string) ([]Award, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT match_id, player_id, delta FROM awards WHERE match_id = ? ORDER BY player_id", matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query awards for match %s: %w", matchID, err)
	}
	defer rows.Close()

	var awards []Award
	for rows.Next() {
		var award Award
		if err := rows.Scan(&award.MatchID, &award.PlayerID, &award.Delta); err != nil {
			return nil, fmt.Errorf("failed to scan award: %w", err)
		}
		awards = append(awards, award)
	}
	return awards, rows.Err()
}

// SumByMatchDay totals each player's awards across every match of a day.
func (s *store) SumByMatchDay(matchDayID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT a.player_id, SUM(a.delta)
		FROM awards a
		JOIN matches m ON m.id = a.match_id
		WHERE m.match_day_id = ?
		GROUP BY a.player_id
	`, matchDayID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum awards for day %s: %w", matchDayID, err)
	}
	defer rows.Close()

	sums := make(map[string]int)
	for rows.Next() {
		var playerID string
		var total int
		if err := rows.Scan(&playerID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan award sum: %w", err)
		}
		sums[playerID] = total
	}
	return sums, rows.Err()
}
