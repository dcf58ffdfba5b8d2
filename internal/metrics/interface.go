package metrics

import "context"

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSuggestionsSubmitted()
	IncVotesCast()
	IncVotingClosed()
	IncRoundsCompleted()
	IncRejectedActions(action string)
	ObserveEventProcessing(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime counters in the database so they survive restarts.
type MetricsStore interface {
	Increment(ctx context.Context, key string)
	GetAll(ctx context.Context) (map[string]int, error)
}
