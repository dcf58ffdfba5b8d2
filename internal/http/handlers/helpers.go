package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/metrics"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// maxBodyBytes caps request bodies; a full club state is far below it.
const maxBodyBytes = 1 << 20

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeText(w http.ResponseWriter, format string, args ...any) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, format, args...)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		log.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

var conflicts = []error{
	club.ErrWrongPhase,
	club.ErrSuggestionsExist,
	club.ErrAlreadyVoted,
	club.ErrVotingClosed,
	club.ErrNotAllCompleted,
	club.ErrAlreadyDiscussed,
	club.ErrNotDiscussed,
}

// statusFor maps a club error to the HTTP status returned for it.
func statusFor(err error) int {
	if club.IsValidation(err) {
		return http.StatusBadRequest
	}
	if errors.Is(err, club.ErrStateNotInitialized) {
		return http.StatusServiceUnavailable
	}
	for _, target := range conflicts {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// respondError answers a failed club action. Refusals carry the error text
// verbatim; anything else is logged and hidden behind a generic message.
func respondError(w http.ResponseWriter, m metrics.Metrics, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Club action failed", "action", action, "error", err)
		http.Error(w, "Failed to "+action, status)
		return
	}
	log.Info("Club action refused", "action", action, "status", status, "reason", err)
	if status == http.StatusBadRequest || status == http.StatusConflict {
		m.IncRejectedActions(action)
	}
	http.Error(w, err.Error(), status)
}

// respondReadError answers a failed read. A club that has not been seeded
// yet gets 503 with the reason.
func respondReadError(w http.ResponseWriter, what string, err error) {
	if errors.Is(err, club.ErrStateNotInitialized) {
		log.Warn("Club state requested before it was seeded", "what", what)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	log.Error("Failed to get "+what, "error", err)
	http.Error(w, "Failed to get "+what, http.StatusInternalServerError)
}
