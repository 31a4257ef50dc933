package schedule

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new schedule Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// GetOrCreateMatchDay returns the match day for a date, creating it lazily
// the first time the date is touched.
func (s *store) GetOrCreateMatchDay(date string) (*MatchDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, err := s.getMatchDayByDateLocked(date)
	if err == nil {
		return day, nil
	}
	if err != ErrMatchDayNotFound {
		return nil, err
	}

	day = &MatchDay{
		ID:        uuid.New().String(),
		Date:      date,
		CreatedAt: time.Now().Unix(),
	}
	_, err = s.db.Exec(
		"INSERT INTO match_days (id, date, finalized, created_at) VALUES (?, ?, 0, ?)",
		day.ID, day.Date, day.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match day for %s: %w", date, err)
	}
	log.Info("Created match day", "matchDayID", day.ID, "date", date)
	return day, nil
}

// GetMatchDay retrieves a match day by id.
func (s *store) GetMatchDay(matchDayID string) (*MatchDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, date, finalized, created_at FROM match_days WHERE id = ?", matchDayID)
	return scanMatchDay(row)
}

// GetMatchDayByDate retrieves a match day by calendar date.
func (s *store) GetMatchDayByDate(date string) (*MatchDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMatchDayByDateLocked(date)
}

func (s *store) getMatchDayByDateLocked(date string) (*MatchDay, error) {
	row := s.db.QueryRow("SELECT id, date, finalized, created_at FROM match_days WHERE date = ?", date)
	return scanMatchDay(row)
}

func scanMatchDay(row *sql.Row) (*MatchDay, error) {
	var day MatchDay
	var finalized int
	err := row.Scan(&day.ID, &day.Date, &finalized, &day.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMatchDayNotFound
		}
		return nil, fmt.Errorf("failed to scan match day: %w", err)
	}
	day.Finalized = finalized != 0
	return &day, nil
}

// CreateMatches inserts a batch of matches together with a zero-delta award
// row for every participant, all in one transaction. A failure anywhere
// leaves no match or award rows behind.
func (s *store) CreateMatches(matches []Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schedule transaction: %w", err)
	}
	defer tx.Rollback()

	matchStmt, err := tx.Prepare(`
		INSERT INTO matches (id, match_day_id, court, match_code, match_type, date, team1_json, team2_json, winners_json, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer matchStmt.Close()

	awardStmt, err := tx.Prepare("INSERT INTO awards (match_id, player_id, delta) VALUES (?, ?, 0)")
	if err != nil {
		return fmt.Errorf("failed to prepare award insert: %w", err)
	}
	defer awardStmt.Close()

	for _, match := range matches {
		team1JSON, err := json.Marshal(match.Team1)
		if err != nil {
			return fmt.Errorf("failed to marshal team1 for match %s: %w", match.ID, err)
		}
		team2JSON, err := json.Marshal(match.Team2)
		if err != nil {
			return fmt.Errorf("failed to marshal team2 for match %s: %w", match.ID, err)
		}

		var winnersJSON any
		if len(match.WinnerIDs) > 0 {
			raw, err := json.Marshal(match.WinnerIDs)
			if err != nil {
				return fmt.Errorf("failed to marshal winners for match %s: %w", match.ID, err)
			}
			winnersJSON = string(raw)
		}

		_, err = matchStmt.Exec(
			match.ID, match.MatchDayID, match.Court, match.MatchCode, match.MatchType,
			match.Date, string(team1JSON), string(team2JSON), winnersJSON, match.Score, match.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
		}

		for _, playerID := range match.Participants() {
			if _, err := awardStmt.Exec(match.ID, playerID); err != nil {
				return fmt.Errorf("failed to insert award for match %s player %s: %w", match.ID, playerID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schedule: %w", err)
	}
	log.Info("Created matches", "count", len(matches))
	return nil
}

// GetMatch retrieves a single match by id.
func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, match_day_id, court, match_code, match_type, date, team1_json, team2_json, winners_json, score, created_at
		FROM matches WHERE id = ?
	`, matchID)

	match, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return match, nil
}

// GetMatchesForDay retrieves all matches for a match day in generation order.
func (s *store) GetMatchesForDay(matchDayID string) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, match_day_id, court, match_code, match_type, date, team1_json, team2_json, winners_json, score, created_at
		FROM matches WHERE match_day_id = ? ORDER BY court, rowid
	`, matchDayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for day %s: %w", matchDayID, err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// HasMatches reports whether a match day has any generated matches.
func (s *store) HasMatches(matchDayID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM matches WHERE match_day_id = ?)", matchDayID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check matches for day %s: %w", matchDayID, err)
	}
	return exists, nil
}

// UpdateMatchResult stores the winner set and score for a match and
// overwrites the award delta of every listed player, all in one
// transaction. A failure anywhere leaves both the match row and the
// award rows untouched.
func (s *store) UpdateMatchResult(matchID string, winnerIDs []string, score string, deltas map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	winnersJSON, err := json.Marshal(winnerIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal winners: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin result transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE matches SET winners_json = ?, score = ? WHERE id = ?",
		string(winnersJSON), score, matchID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match result: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrMatchNotFound
	}

	awardStmt, err := tx.Prepare(`
		INSERT INTO awards (match_id, player_id, delta) VALUES (?, ?, ?)
		ON CONFLICT(match_id, player_id) DO UPDATE SET delta = excluded.delta
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare award upsert: %w", err)
	}
	defer awardStmt.Close()

	playerIDs := make([]string, 0, len(deltas))
	for playerID := range deltas {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)
	for _, playerID := range playerIDs {
		if _, err := awardStmt.Exec(matchID, playerID, deltas[playerID]); err != nil {
			return fmt.Errorf("failed to upsert award for match %s player %s: %w", matchID, playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match result: %w", err)
	}
	return nil
}

// UpdateMatchTeams rewrites a match's teams and score, clears any recorded
// winner and replaces the award rows with fresh zero-delta rows for the new
// lineup, all in one transaction. Stale award rows for players no longer in
// the match must not survive a team edit.
func (s *store) UpdateMatchTeams(matchID string, team1, team2 []string, score string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team1JSON, err := json.Marshal(team1)
	if err != nil {
		return fmt.Errorf("failed to marshal team1: %w", err)
	}
	team2JSON, err := json.Marshal(team2)
	if err != nil {
		return fmt.Errorf("failed to marshal team2: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin team update transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE matches
		SET team1_json = ?, team2_json = ?, match_type = ?, winners_json = NULL, score = ?
		WHERE id = ?
	`, string(team1JSON), string(team2JSON), DeriveMatchType(team1, team2), score, matchID)
	if err != nil {
		return fmt.Errorf("failed to update match teams: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrMatchNotFound
	}

	if _, err := tx.Exec("DELETE FROM awards WHERE match_id = ?", matchID); err != nil {
		return fmt.Errorf("failed to clear awards for match %s: %w", matchID, err)
	}
	awardStmt, err := tx.Prepare("INSERT INTO awards (match_id, player_id, delta) VALUES (?, ?, 0)")
	if err != nil {
		return fmt.Errorf("failed to prepare award insert: %w", err)
	}
	defer awardStmt.Close()
	for _, playerID := range append(append([]string{}, team1...), team2...) {
		if _, err := awardStmt.Exec(matchID, playerID); err != nil {
			return fmt.Errorf("failed to insert award for match %s player %s: %w", matchID, playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team update: %w", err)
	}
	return nil
}

// UpdateMatchScore rewrites only a match's score. Teams, winner and awards
// are left alone.
func (s *store) UpdateMatchScore(matchID string, score string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE matches SET score = ? WHERE id = ?", score, matchID)
	if err != nil {
		return fmt.Errorf("failed to update match score: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// scanMatch is a helper to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var match Match
	var team1JSON, team2JSON string
	var winnersJSON, score sql.NullString

	err := scanner.Scan(
		&match.ID, &match.MatchDayID, &match.Court, &match.MatchCode, &match.MatchType,
		&match.Date, &team1JSON, &team2JSON, &winnersJSON, &score, &match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(team1JSON), &match.Team1); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team1 for match %s: %w", match.ID, err)
	}
	if err := json.Unmarshal([]byte(team2JSON), &match.Team2); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team2 for match %s: %w", match.ID, err)
	}
	if winnersJSON.Valid && winnersJSON.String != "" {
		if err := json.Unmarshal([]byte(winnersJSON.String), &match.WinnerIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winners for match %s: %w", match.ID, err)
		}
	}
	match.Score = score.String

	return &match, nil
}
