package attendance

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new attendance Ledger.
func New(db *sql.DB) Ledger {
	return &store{
		db: db,
	}
}

// Mark upserts a single attendance record.
func (s *store) Mark(matchDayID, playerID string, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO attendance (match_day_id, player_id, present)
		VALUES (?, ?, ?)
		ON CONFLICT(match_day_id, player_id) DO UPDATE SET present = excluded.present;
	`, matchDayID, playerID, boolToInt(present))
	if err != nil {
		return fmt.Errorf("failed to mark attendance for player %s: %w", playerID, err)
	}
	return nil
}

// MarkBulk upserts a batch of attendance records in a single transaction.
func (s *store) MarkBulk(matchDayID string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin attendance transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO attendance (match_day_id, player_id, present)
		VALUES (?, ?, ?)
		ON CONFLICT(match_day_id, player_id) DO UPDATE SET present = excluded.present;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare attendance statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.Exec(matchDayID, record.PlayerID, boolToInt(record.Present)); err != nil {
			return fmt.Errorf("failed to mark attendance for player %s: %w", record.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attendance: %w", err)
	}
	log.Debug("Marked attendance", "matchDayID", matchDayID, "count", len(records))
	return nil
}

// GetForDay returns all attendance records for a match day in the order they
// were first recorded.
func (s *store) GetForDay(matchDayID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT match_day_id, player_id, present
		FROM attendance WHERE match_day_id = ? ORDER BY rowid
	`, matchDayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var present int
		if err := rows.Scan(&record.MatchDayID, &record.PlayerID, &present); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		record.Present = present != 0
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetPresentPlayerIDs returns the ids of players marked present, in the
// order their attendance was first recorded. Schedule generation partitions
// this list as-is, so insertion order is part of the contract.
func (s *store) GetPresentPlayerIDs(matchDayID string) ([]string, error) {
	return s.playerIDsByPresence(matchDayID, true)
}

// GetAbsentPlayerIDs returns the ids of players explicitly marked absent.
func (s *store) GetAbsentPlayerIDs(matchDayID string) ([]string, error) {
	return s.playerIDsByPresence(matchDayID, false)
}

func (s *store) playerIDsByPresence(matchDayID string, present bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id FROM attendance
		WHERE match_day_id = ? AND present = ? ORDER BY rowid
	`, matchDayID, boolToInt(present))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var playerIDs []string
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		playerIDs = append(playerIDs, playerID)
	}
	return playerIDs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
