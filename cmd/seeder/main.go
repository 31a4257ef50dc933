package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// Seed a roster of 16 players, two full courts worth.
	const numPlayers = 16
	playerIDs := make([]string, numPlayers)
	for i := 0; i < numPlayers; i++ {
		playerIDs[i] = fmt.Sprintf("seed-player-%d", i+1)
		rating := 900 + rand.Intn(400)
		gender := "M"
		if i%2 == 1 {
			gender = "F"
		}
		_, err := db.Exec(`
			INSERT OR IGNORE INTO players (id, name, gender, initial_rating, current_rating, joining_date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			playerIDs[i], fmt.Sprintf("Seeder Player %d", i+1), gender, rating, rating, "2025-01-01",
		)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", playerIDs[i], err)
		}
	}
	log.Info("Ensured dummy players exist.", "count", numPlayers)

	// Seed a season of past match days with attendance and an unscored draw.
	const numDays = 20

	log.Info("Preparing to insert dummy match days...", "total", numDays)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	for dayIdx := 0; dayIdx < numDays; dayIdx++ {
		date := time.Now().AddDate(0, 0, -7*(dayIdx+1)).Format("2006-01-02")
		matchDayID := uuid.NewString()
		createdAt := time.Now().Unix()

		if _, err := tx.Exec(
			"INSERT INTO match_days (id, date, finalized, created_at) VALUES (?, ?, 0, ?)",
			matchDayID, date, createdAt,
		); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert match day %s: %s", date, err)
		}

		for _, playerID := range playerIDs {
			present := rand.Intn(10) > 1
			if _, err := tx.Exec(
				"INSERT INTO attendance (match_day_id, player_id, present) VALUES (?, ?, ?)",
				matchDayID, playerID, present,
			); err != nil {
				tx.Rollback()
				log.Fatalf("Failed to insert attendance for %s: %s", playerID, err)
			}
		}

		// One unscored doubles match per day keeps the schedule endpoints interesting.
		matchID := uuid.NewString()
		team1, _ := json.Marshal(playerIDs[0:2])
		team2, _ := json.Marshal(playerIDs[2:4])
		valueStrings := []string{"(?, ?, ?, ?, ?, ?, ?, ?, ?)"}
		valueArgs := []interface{}{
			matchID, matchDayID, 1, "M1", "doubles", date, string(team1), string(team2), createdAt,
		}
		stmt := fmt.Sprintf(`
			INSERT INTO matches (id, match_day_id, court, match_code, match_type, date, team1_json, team2_json, created_at)
			VALUES %s;`, strings.Join(valueStrings, ","))
		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert match for %s: %s", date, err)
		}
		for _, playerID := range playerIDs[0:4] {
			if _, err := tx.Exec(
				"INSERT INTO awards (match_id, player_id, delta) VALUES (?, ?, 0)",
				matchID, playerID,
			); err != nil {
				tx.Rollback()
				log.Fatalf("Failed to insert award for %s: %s", playerID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully seeded match days.", "days", numDays, "duration", duration)
}
