package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	SuggestionsSubmitted prometheus.Counter
	VotesCast            prometheus.Counter
	VotingClosed         prometheus.Counter
	RoundsCompleted      prometheus.Counter
	RejectedActions      *prometheus.CounterVec
	EventProcessing      prometheus.Histogram
	SlackNotifSent       prometheus.Counter
	SlackNotifFailed     prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
