package roster

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// UpsertPlayer inserts a new player or updates an existing one's profile
// fields. Ratings are never touched on conflict: initial_rating is fixed at
// insert time and current_rating is owned by ApplyRatingDeltas.
func (s *store) UpsertPlayer(player PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.upsertPlayerLocked(player)
}

func (s *store) upsertPlayerLocked(player PlayerInfo) error {
	_, err := s.db.Exec(`
		INSERT INTO players (id, name, gender, initial_rating, current_rating, joining_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			joining_date = excluded.joining_date;
	`, player.ID, player.Name, player.Gender, player.InitialRating, player.InitialRating, player.JoiningDate)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.ID, err)
	}
	return nil
}

// UpsertPlayers upserts a batch of players in a single transaction.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, gender, initial_rating, current_rating, joining_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			joining_date = excluded.joining_date;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, player := range players {
		if _, err := stmt.Exec(player.ID, player.Name, player.Gender, player.InitialRating, player.InitialRating, player.JoiningDate); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", player.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player upsert: %w", err)
	}
	log.Debug("Upserted players", "count", len(players))
	return nil
}

// GetPlayer retrieves a single player by id.
func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, gender, initial_rating, current_rating, joining_date, last_rating_updated_ts
		FROM players WHERE id = ?
	`, playerID)

	player, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}
	return player, nil
}

// GetPlayers retrieves the players matching the given id set.
func (s *store) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return []PlayerInfo{}, nil
	}

	placeholders := strings.Repeat("?,", len(playerIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`
		SELECT id, name, gender, initial_rating, current_rating, joining_date, last_rating_updated_ts
		FROM players WHERE id IN (%s)
	`, placeholders)

	args := make([]any, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// GetAllPlayers retrieves the full roster ordered by name.
func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, gender, initial_rating, current_rating, joining_date, last_rating_updated_ts
		FROM players ORDER BY name
	`)
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// GetPlayersSortedByRating retrieves the full roster ordered by current rating.
func (s *store) GetPlayersSortedByRating() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, gender, initial_rating, current_rating, joining_date, last_rating_updated_ts
		FROM players ORDER BY current_rating DESC, name
	`)
	if err != nil {
		log.Error("Failed to query players sorted by rating", "error", err)
		return nil, err
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

// ApplyRatingDeltas commits one match day's settlement: every listed player's
// current_rating is adjusted by its delta, a rating snapshot is written, and
// the match day is marked finalized, all in one transaction. The finalized
// flag doubles as the guard against double application: a second call for
// the same day fails with ErrAlreadySettled and changes nothing.
func (s *store) ApplyRatingDeltas(matchDayID string, deltas map[string]int, appliedAt time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE match_days SET finalized = 1 WHERE id = ? AND finalized = 0", matchDayID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark match day finalized: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("failed to read finalize guard result: %w", err)
	} else if affected == 0 {
		return 0, ErrAlreadySettled
	}

	updateStmt, err := tx.Prepare(`
		UPDATE players
		SET current_rating = current_rating + ?, last_rating_updated_ts = ?
		WHERE id = ?
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare rating update: %w", err)
	}
	defer updateStmt.Close()

	snapshotStmt, err := tx.Prepare(`
		INSERT INTO rating_snapshots (player_id, match_day_id, rating, created_at)
		SELECT id, ?, current_rating, ? FROM players WHERE id = ?
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer snapshotStmt.Close()

	// Deterministic application order keeps failure logs reproducible.
	playerIDs := make([]string, 0, len(deltas))
	for playerID := range deltas {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	updated := 0
	ts := appliedAt.Unix()
	for _, playerID := range playerIDs {
		res, err := updateStmt.Exec(deltas[playerID], ts, playerID)
		if err != nil {
			return 0, fmt.Errorf("failed to apply delta for player %s: %w", playerID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read delta result for player %s: %w", playerID, err)
		}
		if affected == 0 {
			return 0, fmt.Errorf("apply delta for player %s: %w", playerID, ErrPlayerNotFound)
		}
		if _, err := snapshotStmt.Exec(matchDayID, ts, playerID); err != nil {
			return 0, fmt.Errorf("failed to write snapshot for player %s: %w", playerID, err)
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit settlement: %w", err)
	}

	log.Info("Applied rating deltas", "matchDayID", matchDayID, "players", updated)
	return updated, nil
}

// GetRatingSnapshots returns a player's rating history, oldest first.
func (s *store) GetRatingSnapshots(playerID string) ([]RatingSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, match_day_id, rating, created_at
		FROM rating_snapshots WHERE player_id = ? ORDER BY created_at
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []RatingSnapshot
	for rows.Next() {
		var snap RatingSnapshot
		if err := rows.Scan(&snap.PlayerID, &snap.MatchDayID, &snap.Rating, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*PlayerInfo, error) {
	var player PlayerInfo
	var lastUpdated sql.NullInt64

	err := scanner.Scan(
		&player.ID, &player.Name, &player.Gender,
		&player.InitialRating, &player.CurrentRating,
		&player.JoiningDate, &lastUpdated,
	)
	if err != nil {
		return nil, err
	}
	if lastUpdated.Valid {
		player.LastRatingUpdatedTS = &lastUpdated.Int64
	}
	return &player, nil
}

func collectPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	players := []PlayerInfo{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}
