package http

import (
	"net/http"

	"github.com/mauv0809/solid-garbanzo/internal/attendance"
	"github.com/mauv0809/solid-garbanzo/internal/config"
	"github.com/mauv0809/solid-garbanzo/internal/leaderboard"
	"github.com/mauv0809/solid-garbanzo/internal/ledger"
	"github.com/mauv0809/solid-garbanzo/internal/metrics"
	"github.com/mauv0809/solid-garbanzo/internal/notifier"
	"github.com/mauv0809/solid-garbanzo/internal/pubsub"
	"github.com/mauv0809/solid-garbanzo/internal/roster"
	"github.com/mauv0809/solid-garbanzo/internal/schedule"
	"github.com/mauv0809/solid-garbanzo/internal/settlement"
)

type Server struct {
	Roster         roster.RosterStore
	Attendance     attendance.Ledger
	Schedule       schedule.Store
	Generator      *schedule.Generator
	Awards         ledger.Ledger
	Engine         *settlement.Engine
	Metrics        metrics.Metrics
	Counters       metrics.CounterStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Leaderboard    leaderboard.Mirror
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
