package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/notifier"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func writeSlackResponse(w http.ResponseWriter, msg any, err error, what string) {
	if err != nil {
		http.Error(w, "Failed to format "+what, http.StatusInternalServerError)
		log.Error("Failed to format slack response", "what", what, "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message", "what", what)
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

// ScoresCommandHandler answers /scores with the live leaderboard of the current round.
func ScoresCommandHandler(store club.ClubStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := store.GetState(r.Context())
		if err != nil {
			http.Error(w, "Failed to get club state", http.StatusInternalServerError)
			log.Error("Failed to get club state", "error", err)
			return
		}
		scores := club.LiveScores(state.CurrentRound, store.Rules().Points)
		log.Info("Received scores command", "suggestions", len(scores), "ballots", len(state.CurrentRound.Votes))

		msg, err := notifier.FormatScoresResponse(state, scores)
		writeSlackResponse(w, msg, err, "scores")
	}
}

// HistoryCommandHandler answers /history with past winners.
func HistoryCommandHandler(store club.ClubStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := store.GetState(r.Context())
		if err != nil {
			http.Error(w, "Failed to get club state", http.StatusInternalServerError)
			log.Error("Failed to get club state", "error", err)
			return
		}
		msg, err := notifier.FormatHistoryResponse(state.ClubType, state.History)
		writeSlackResponse(w, msg, err, "history")
	}
}
