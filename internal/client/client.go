package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
)

// APIClient is the HTTP implementation of ClubAPI.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a client for the API served at baseURL.
func NewClient(baseURL string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Ensure APIClient implements the ClubAPI and config.Remote interfaces.
var (
	_ ClubAPI       = (*APIClient)(nil)
	_ config.Remote = (*APIClient)(nil)
)

// do sends one request and returns the raw body of a 2xx response.
func (c *APIClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "NextpickGoClient/1.0")

	log.Debug("Requesting nextpick API", "method", method, "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("Received non-OK HTTP status from nextpick API", "status", resp.StatusCode, "body", string(respBody))
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}
	return respBody, nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, v any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *APIClient) postText(ctx context.Context, path string, payload any) (string, error) {
	data, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// FetchState returns the current snapshot.
func (c *APIClient) FetchState(ctx context.Context) (*club.ClubState, error) {
	var state club.ClubState
	if err := c.getJSON(ctx, "/api/state", &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// FetchConfig returns the server's club configuration decoded over the defaults.
func (c *APIClient) FetchConfig(ctx context.Context) (config.ClubConfig, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/config", nil)
	if err != nil {
		return config.ClubConfig{}, err
	}
	return config.Decode(data)
}

func (c *APIClient) History(ctx context.Context) ([]club.HistoryEntry, error) {
	var history []club.HistoryEntry
	if err := c.getJSON(ctx, "/api/history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *APIClient) Stats(ctx context.Context) (map[string]int, error) {
	counters := map[string]int{}
	if err := c.getJSON(ctx, "/api/stats", &counters); err != nil {
		return nil, err
	}
	return counters, nil
}

func (c *APIClient) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

func (c *APIClient) Suggest(ctx context.Context, items []club.Item) (string, error) {
	return c.postText(ctx, "/api/suggest", club.SuggestRequest{Suggestions: items})
}

func (c *APIClient) Vote(ctx context.Context, member string, rankings club.Ranking) (string, error) {
	return c.postText(ctx, "/api/vote", club.VoteRequest{Member: member, Rankings: rankings})
}

// CloseVoting closes the current round's voting and returns the winner.
func (c *APIClient) CloseVoting(ctx context.Context) (club.Item, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/round/close-voting", nil)
	if err != nil {
		return club.Item{}, err
	}
	var winner club.Item
	if err := json.Unmarshal(data, &winner); err != nil {
		return club.Item{}, fmt.Errorf("failed to decode winner: %w", err)
	}
	return winner, nil
}

func (c *APIClient) MarkCompleted(ctx context.Context, member string) (string, error) {
	return c.postText(ctx, "/api/completion-status", club.CompletionRequest{Member: member})
}

func (c *APIClient) MarkDiscussed(ctx context.Context) (string, error) {
	return c.postText(ctx, "/api/round/discussed", nil)
}

func (c *APIClient) NextRound(ctx context.Context) (string, error) {
	return c.postText(ctx, "/api/round/next", nil)
}

// Reset replaces the whole club state on the server.
func (c *APIClient) Reset(ctx context.Context, state *club.ClubState) (string, error) {
	return c.postText(ctx, "/api/reset", state)
}
