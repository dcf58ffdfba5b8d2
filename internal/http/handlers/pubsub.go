package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/pubsub"
)

// pushEnvelope is the body Google Cloud Pub/Sub posts to push subscriptions.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		MessageID  string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}

// RoundEventsHandler receives pushed round events and hands the decoded
// payload to the consumer. A non-2xx answer makes Pub/Sub redeliver.
func RoundEventsHandler(consume pubsub.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		log.Debug("Received round event message", "body", string(bodyBytes))

		var envelope pushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		if err := consume(r.Context(), rawData); err != nil {
			log.Error("Failed to process round event", "messageId", envelope.Message.MessageID, "error", err)
			http.Error(w, "Failed to process message", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
