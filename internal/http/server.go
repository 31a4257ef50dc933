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

func NewServer(
	rosterStore roster.RosterStore,
	attendanceLedger attendance.Ledger,
	scheduleStore schedule.Store,
	generator *schedule.Generator,
	awards ledger.Ledger,
	engine *settlement.Engine,
	metricsSvc metrics.Metrics,
	counters metrics.CounterStore,
	metricsHandler http.Handler,
	cfg config.Config,
	notifier notifier.Notifier,
	mirror leaderboard.Mirror,
	pubsub pubsub.PubSubClient,
) *Server {
	server := &Server{
		Roster:         rosterStore,
		Attendance:     attendanceLedger,
		Schedule:       scheduleStore,
		Generator:      generator,
		Awards:         awards,
		Engine:         engine,
		Metrics:        metricsSvc,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Leaderboard:    mirror,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// Every handler except the Prometheus endpoint goes through
	// paramsMiddleware so verbose and dry_run behave uniformly.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/attendance", Chain(s.AttendanceHandler(), paramsMiddleware))
	s.Router.Handle("/schedule", Chain(s.ListScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/generate", Chain(s.GenerateScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/match/result", Chain(s.RecordResultHandler(), paramsMiddleware))
	s.Router.Handle("/match/update", Chain(s.UpdateMatchHandler(), paramsMiddleware))
	s.Router.Handle("/finalize", Chain(s.FinalizeHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/snapshots", Chain(s.SnapshotsHandler(), paramsMiddleware))
	s.Router.Handle("/counters", Chain(s.CountersHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
