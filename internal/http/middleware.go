package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/http/handlers"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), handlers.DryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// slackVerifyMiddleware rejects slash commands that are not signed with the
// app's signing secret. Verification is skipped when no secret is configured.
func slackVerifyMiddleware(signingSecret string) Middleware {
	return func(next http.Handler) http.Handler {
		if signingSecret == "" {
			log.Warn("Slack signing secret not set, slash commands are not verified")
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
			if err != nil {
				log.Warn("Rejected unsigned slack request", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			body, err := io.ReadAll(io.TeeReader(r.Body, &verifier))
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			if err := verifier.Ensure(); err != nil {
				log.Warn("Rejected slack request with bad signature", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
