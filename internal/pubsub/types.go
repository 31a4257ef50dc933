package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventScheduleGenerated EventType = "schedule-generated"
	EventResultRecorded    EventType = "result-recorded"
	EventDayFinalized      EventType = "day-finalized"
)

// ScheduleGeneratedEvent is published after a match day draw is created.
type ScheduleGeneratedEvent struct {
	Date    string `msgpack:"date"`
	Courts  int    `msgpack:"courts"`
	Matches int    `msgpack:"matches"`
}

// ResultRecordedEvent is published after a match result is stored.
type ResultRecordedEvent struct {
	MatchID   string   `msgpack:"match_id"`
	MatchCode string   `msgpack:"match_code"`
	WinnerIDs []string `msgpack:"winner_ids"`
	Score     string   `msgpack:"score"`
}

// DayFinalizedEvent is published after a match day settlement is applied.
type DayFinalizedEvent struct {
	MatchDayID     string         `msgpack:"match_day_id"`
	UpdatedPlayers int            `msgpack:"updated_players"`
	Deltas         map[string]int `msgpack:"deltas"`
}
