package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/solid-garbanzo/internal/attendance"
	"github.com/mauv0809/solid-garbanzo/internal/metrics"
	"github.com/mauv0809/solid-garbanzo/internal/pubsub"
	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/mauv0809/solid-garbanzo/internal/settlement"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// playerNames builds an id -> display name map for notification formatting.
func (s *Server) playerNames() map[string]string {
	players, err := s.Roster.GetAllPlayers()
	if err != nil {
		log.Error("Failed to load roster for names", "error", err)
		return map[string]string{}
	}
	names := make(map[string]string, len(players))
	for _, player := range players {
		names[player.ID] = player.Name
	}
	return names
}

func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			players, err := s.Roster.GetAllPlayers()
			if err != nil {
				log.Error("Failed to list players", "error", err)
				http.Error(w, "Failed to list players", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, players)
		case http.MethodPost:
			var players []roster.PlayerInfo
			if err := json.NewDecoder(r.Body).Decode(&players); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			if err := s.Roster.UpsertPlayers(players); err != nil {
				log.Error("Failed to upsert players", "error", err)
				http.Error(w, "Failed to upsert players", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Upserted %d players", len(players))
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

type attendanceRequest struct {
	Date    string `json:"date"`
	Records []struct {
		PlayerID string `json:"player_id"`
		Present  bool   `json:"present"`
	} `json:"records"`
}

func (s *Server) AttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			date := r.URL.Query().Get("date")
			day, err := s.Schedule.GetMatchDayByDate(date)
			if err != nil {
				http.Error(w, "Match day not found", http.StatusNotFound)
				return
			}
			records, err := s.Attendance.GetForDay(day.ID)
			if err != nil {
				log.Error("Failed to get attendance", "error", err, "date", date)
				http.Error(w, "Failed to get attendance", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, records)
		case http.MethodPost:
			var req attendanceRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			if req.Date == "" {
				http.Error(w, "Missing 'date'", http.StatusBadRequest)
				return
			}
			day, err := s.Schedule.GetOrCreateMatchDay(req.Date)
			if err != nil {
				log.Error("Failed to resolve match day", "error", err, "date", req.Date)
				http.Error(w, "Failed to resolve match day", http.StatusInternalServerError)
				return
			}
			records := make([]attendance.Record, len(req.Records))
			for i, rec := range req.Records {
				records[i] = attendance.Record{
					MatchDayID: day.ID,
					PlayerID:   rec.PlayerID,
					Present:    rec.Present,
				}
			}
			if err := s.Attendance.MarkBulk(day.ID, records); err != nil {
				log.Error("Failed to mark attendance", "error", err, "date", req.Date)
				http.Error(w, "Failed to mark attendance", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Marked attendance for %d players on %s", len(records), req.Date)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) ListScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		day, err := s.Schedule.GetMatchDayByDate(date)
		if err != nil {
			http.Error(w, "Match day not found", http.StatusNotFound)
			return
		}
		matches, err := s.Schedule.GetMatchesForDay(day.ID)
		if err != nil {
			log.Error("Failed to list matches", "error", err, "date", date)
			http.Error(w, "Failed to list matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) GenerateScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		groups, err := s.Generator.Generate(date)
		if err != nil {
			if errors.Is(err, schedule.ErrAlreadyGenerated) {
				http.Error(w, fmt.Sprintf("Schedule already generated for %s", date), http.StatusConflict)
				return
			}
			log.Error("Failed to generate schedule", "error", err, "date", date)
			http.Error(w, "Failed to generate schedule", http.StatusInternalServerError)
			return
		}

		s.Metrics.IncSchedulesGenerated()
		s.Counters.Increment(metrics.CounterSchedulesGenerated)

		totalMatches := 0
		for _, group := range groups {
			totalMatches += len(group.Matches)
		}
		if err := s.pubsub.SendMessage(pubsub.EventScheduleGenerated, pubsub.ScheduleGeneratedEvent{
			Date:    date,
			Courts:  len(groups),
			Matches: totalMatches,
		}); err != nil {
			log.Error("Failed to publish schedule event", "error", err)
		}

		if len(groups) > 0 {
			if err := s.Notifier.SendScheduleNotification(date, groups, s.playerNames(), isDryRun); err != nil {
				log.Error("Failed to send schedule notification", "error", err)
			}
		}

		writeJSON(w, http.StatusOK, groups)
	}
}

type recordResultRequest struct {
	MatchID   string   `json:"match_id"`
	WinnerIDs []string `json:"winner_ids"`
	Score     string   `json:"score"`
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req recordResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		match, err := s.Engine.RecordResult(req.MatchID, req.WinnerIDs, req.Score)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		s.Counters.Increment(metrics.CounterResultsRecorded)
		if err := s.pubsub.SendMessage(pubsub.EventResultRecorded, pubsub.ResultRecordedEvent{
			MatchID:   match.ID,
			MatchCode: match.MatchCode,
			WinnerIDs: match.WinnerIDs,
			Score:     match.Score,
		}); err != nil {
			log.Error("Failed to publish result event", "error", err)
		}

		writeJSON(w, http.StatusOK, match)
	}
}

type updateMatchRequest struct {
	MatchID    string   `json:"match_id"`
	Team1      []string `json:"team1,omitempty"`
	Team2      []string `json:"team2,omitempty"`
	WinnerTeam string   `json:"winner_team,omitempty"`
	Score      *string  `json:"score,omitempty"`
}

func (s *Server) UpdateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req updateMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		match, err := s.Engine.UpdateMatch(req.MatchID, settlement.MatchPatch{
			Team1:      req.Team1,
			Team2:      req.Team2,
			WinnerTeam: req.WinnerTeam,
			Score:      req.Score,
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) FinalizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		matchDayID := r.URL.Query().Get("matchDayID")
		date := r.URL.Query().Get("date")
		if matchDayID == "" && date == "" {
			http.Error(w, "Missing 'matchDayID' or 'date'", http.StatusBadRequest)
			return
		}
		if matchDayID == "" {
			day, err := s.Schedule.GetMatchDayByDate(date)
			if err != nil {
				http.Error(w, "Match day not found", http.StatusNotFound)
				return
			}
			matchDayID = day.ID
			date = day.Date
		} else if date == "" {
			if day, err := s.Schedule.GetMatchDay(matchDayID); err == nil {
				date = day.Date
			}
		}

		result, err := s.Engine.FinalizeMatchDay(matchDayID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		s.Counters.Increment(metrics.CounterFinalizeRuns)

		if err := s.pubsub.SendMessage(pubsub.EventDayFinalized, pubsub.DayFinalizedEvent{
			MatchDayID:     result.MatchDayID,
			UpdatedPlayers: result.UpdatedPlayers,
			Deltas:         result.Deltas,
		}); err != nil {
			log.Error("Failed to publish finalize event", "error", err)
		}

		if err := s.Notifier.SendSettlementNotification(date, result, s.playerNames(), isDryRun); err != nil {
			log.Error("Failed to send settlement notification", "error", err)
		}

		s.refreshLeaderboard(r)

		writeJSON(w, http.StatusOK, result)
	}
}

// refreshLeaderboard mirrors every player's settled rating into Redis.
// Best-effort: a mirror failure never fails the request.
func (s *Server) refreshLeaderboard(r *http.Request) {
	if s.Leaderboard == nil {
		return
	}
	players, err := s.Roster.GetAllPlayers()
	if err != nil {
		log.Error("Failed to load roster for leaderboard refresh", "error", err)
		return
	}
	ratings := make(map[string]int, len(players))
	for _, player := range players {
		ratings[player.ID] = player.CurrentRating
	}
	if err := s.Leaderboard.BatchSetRatings(r.Context(), ratings); err != nil {
		log.Error("Failed to refresh leaderboard mirror", "error", err)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		if r.URL.Query().Get("source") == "mirror" && s.Leaderboard != nil {
			entries, err := s.Leaderboard.TopN(r.Context(), 50)
			if err != nil {
				log.Error("Failed to read leaderboard mirror", "error", err)
				http.Error(w, "Failed to read leaderboard", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, entries)
			return
		}

		players, err := s.Roster.GetPlayersSortedByRating()
		if err != nil {
			log.Error("Failed to load leaderboard", "error", err)
			http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
			return
		}

		if r.URL.Query().Get("notify") == "true" {
			if err := s.Notifier.SendLeaderboard(players, isDryRun); err != nil {
				log.Error("Failed to send leaderboard notification", "error", err)
			}
		}

		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) SnapshotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "Missing 'playerID'", http.StatusBadRequest)
			return
		}
		snapshots, err := s.Roster.GetRatingSnapshots(playerID)
		if err != nil {
			log.Error("Failed to get rating snapshots", "error", err, "playerID", playerID)
			http.Error(w, "Failed to get rating snapshots", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, snapshots)
	}
}

func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			log.Error("Failed to get counters", "error", err)
			http.Error(w, "Failed to get counters", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, counters)
	}
}

// writeEngineError maps engine failures to HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	var validationErr *settlement.ValidationError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Reason, http.StatusBadRequest)
	case errors.Is(err, schedule.ErrMatchNotFound),
		errors.Is(err, schedule.ErrMatchDayNotFound),
		errors.Is(err, roster.ErrPlayerNotFound),
		errors.Is(err, settlement.ErrNoMatches):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, settlement.ErrAlreadyFinalized):
		http.Error(w, "Match day already finalized", http.StatusConflict)
	default:
		log.Error("Engine operation failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
