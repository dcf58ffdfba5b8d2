package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
	"github.com/mauv0809/nextpick/internal/metrics"
	"github.com/mauv0809/nextpick/internal/pubsub"
)

// EventRecorder publishes a round event after a transition succeeded.
type EventRecorder interface {
	Record(ctx context.Context, ev pubsub.RoundEvent, dryRun bool)
}

func StateHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := store.GetState(r.Context())
		if err != nil {
			respondReadError(w, "club state", err)
			return
		}
		writeJSON(w, state)
	}
}

func HistoryHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := store.GetHistory(r.Context())
		if err != nil {
			respondReadError(w, "history", err)
			return
		}
		writeJSON(w, history)
	}
}

func ConfigHandler(cfg config.ClubConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, cfg)
	}
}

func SuggestHandler(store club.ClubStore, events EventRecorder, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req club.SuggestRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := store.SubmitSuggestions(r.Context(), req.Suggestions); err != nil {
			respondError(w, m, "submit suggestions", err)
			return
		}
		events.Record(r.Context(), pubsub.RoundEvent{Type: pubsub.EventSuggestionsSubmitted}, IsDryRunFromContext(r))
		writeText(w, "Suggestions submitted successfully.\n")
	}
}

func VoteHandler(store club.ClubStore, events EventRecorder, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req club.VoteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := store.SubmitVote(r.Context(), req.Member, req.Rankings); err != nil {
			respondError(w, m, "vote", err)
			return
		}
		events.Record(r.Context(), pubsub.RoundEvent{Type: pubsub.EventVoteCast, Member: req.Member}, IsDryRunFromContext(r))
		writeText(w, "Vote from %s recorded successfully.", req.Member)
	}
}

func CloseVotingHandler(store club.ClubStore, events EventRecorder, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		winner, err := store.CloseVoting(r.Context())
		if err != nil {
			respondError(w, m, "close voting", err)
			return
		}
		events.Record(r.Context(), pubsub.RoundEvent{Type: pubsub.EventVotingClosed, Winner: &winner}, IsDryRunFromContext(r))
		writeJSON(w, winner)
	}
}

func CompletionStatusHandler(store club.ClubStore, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req club.CompletionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := store.MarkCompleted(r.Context(), req.Member); err != nil {
			respondError(w, m, "update completion status", err)
			return
		}
		writeText(w, "Completion status for %s updated.", req.Member)
	}
}

func DiscussedHandler(store club.ClubStore, events EventRecorder, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.MarkDiscussed(r.Context()); err != nil {
			respondError(w, m, "mark discussed", err)
			return
		}
		events.Record(r.Context(), pubsub.RoundEvent{Type: pubsub.EventRoundDiscussed}, IsDryRunFromContext(r))
		writeText(w, "Round marked as discussed.")
	}
}

func NextRoundHandler(store club.ClubStore, events EventRecorder, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		archived, err := store.NextRound(r.Context())
		if err != nil {
			respondError(w, m, "start next round", err)
			return
		}
		events.Record(r.Context(), pubsub.RoundEvent{Type: pubsub.EventRoundAdvanced, Archived: &archived}, IsDryRunFromContext(r))

		state, err := store.GetState(r.Context())
		if err != nil {
			log.Error("Failed to load state after next round", "error", err)
			writeText(w, "New round started.")
			return
		}
		writeText(w, "New round started. Picker is now %s.", club.Picker(state))
	}
}

func ResetHandler(store club.ClubStore, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var state club.ClubState
		if !decodeBody(w, r, &state) {
			return
		}
		if err := store.Reset(r.Context(), &state); err != nil {
			respondError(w, m, "reset state", err)
			return
		}
		log.Warn("Club state was reset", "club", state.ClubName, "members", len(state.Members))
		writeText(w, "State has been reset successfully.")
	}
}

// StatsHandler returns the lifetime round event counters.
func StatsHandler(tally metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := tally.GetAll(r.Context())
		if err != nil {
			log.Error("Failed to get event counters", "error", err)
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			return
		}
		writeJSON(w, counters)
	}
}
