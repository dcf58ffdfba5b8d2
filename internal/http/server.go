package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
	"github.com/mauv0809/nextpick/internal/http/handlers"
	"github.com/mauv0809/nextpick/internal/metrics"
	"github.com/mauv0809/nextpick/internal/notifier"
	"github.com/mauv0809/nextpick/internal/processor"
	"github.com/mauv0809/nextpick/internal/pubsub"
	"github.com/rs/cors"
)

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, tally metrics.MetricsStore, cfg config.Config, clubCfg config.ClubConfig, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Tally:          tally,
		Cfg:            cfg,
		ClubCfg:        clubCfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	server.handler = Chain(server.Router,
		middleware.RequestID,
		middleware.Recoverer,
		corsMiddleware(cfg.AllowedOrigins),
	)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/state", Chain(handlers.StateHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /api/history", Chain(handlers.HistoryHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /api/config", Chain(handlers.ConfigHandler(s.ClubCfg), paramsMiddleware))
	s.Router.Handle("GET /api/stats", Chain(handlers.StatsHandler(s.Tally), paramsMiddleware))
	s.Router.Handle("POST /api/suggest", Chain(handlers.SuggestHandler(s.Store, s.Processor, s.Metrics), paramsMiddleware))
	s.Router.Handle("POST /api/vote", Chain(handlers.VoteHandler(s.Store, s.Processor, s.Metrics), paramsMiddleware))
	s.Router.Handle("POST /api/round/close-voting", Chain(handlers.CloseVotingHandler(s.Store, s.Processor, s.Metrics), paramsMiddleware))
	s.Router.Handle("POST /api/completion-status", Chain(handlers.CompletionStatusHandler(s.Store, s.Metrics), paramsMiddleware))
	s.Router.Handle("POST /api/round/discussed", Chain(handlers.DiscussedHandler(s.Store, s.Processor, s.Metrics), paramsMiddleware))
	s.Router.Handle("POST /api/round/next", Chain(handlers.NextRoundHandler(s.Store, s.Processor, s.Metrics), paramsMiddleware))
	s.Router.Handle("POST /api/reset", Chain(handlers.ResetHandler(s.Store, s.Metrics), paramsMiddleware))

	s.Router.Handle("POST /pubsub/round-events", Chain(handlers.RoundEventsHandler(s.Processor.HandleMessage), paramsMiddleware))

	verify := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)
	s.Router.Handle("POST /slack/command/scores", Chain(handlers.ScoresCommandHandler(s.Store, s.Notifier), verify, paramsMiddleware))
	s.Router.Handle("POST /slack/command/history", Chain(handlers.HistoryCommandHandler(s.Store, s.Notifier), verify, paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// corsMiddleware lets the listed browser origins call the API. With no
// origins configured every origin is allowed.
func corsMiddleware(origins []string) Middleware {
	if len(origins) == 0 {
		return cors.AllowAll().Handler
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler
}
