package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SuggestionsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nextpick_suggestions_submitted_total",
			Help: "The total number of suggestion batches accepted.",
		}),
		VotesCast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nextpick_votes_cast_total",
			Help: "The total number of ballots recorded.",
		}),
		VotingClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nextpick_voting_closed_total",
			Help: "The total number of rounds whose voting was closed.",
		}),
		RoundsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nextpick_rounds_completed_total",
			Help: "The total number of rounds archived to history.",
		}),
		RejectedActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nextpick_rejected_actions_total",
			Help: "The total number of club actions refused, by action.",
		}, []string{"action"}),
		EventProcessing: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nextpick_event_processing_duration_seconds",
			Help:    "The duration of handling a single round event.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nextpick_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nextpick_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nextpick_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SuggestionsSubmitted,
		s.VotesCast,
		s.VotingClosed,
		s.RoundsCompleted,
		s.RejectedActions,
		s.EventProcessing,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSuggestionsSubmitted() {
	s.SuggestionsSubmitted.Inc()
}

func (s *Service) IncVotesCast() {
	s.VotesCast.Inc()
}

func (s *Service) IncVotingClosed() {
	s.VotingClosed.Inc()
}

func (s *Service) IncRoundsCompleted() {
	s.RoundsCompleted.Inc()
}

func (s *Service) IncRejectedActions(action string) {
	s.RejectedActions.WithLabelValues(action).Inc()
}

func (s *Service) ObserveEventProcessing(duration float64) {
	s.EventProcessing.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
