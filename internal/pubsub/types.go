package pubsub

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/nextpick/internal/club"
)

type client struct {
	client      *pubsub.Client
	topicPrefix string
	teardown    func()
}

// Loopback delivers messages to an in-process handler instead of a broker.
type Loopback struct {
	mu      sync.RWMutex
	handler Handler
	wg      sync.WaitGroup
}

// Handler consumes one encoded message.
type Handler func(ctx context.Context, data []byte) error

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventSuggestionsSubmitted EventType = "suggestions-submitted"
	EventVoteCast             EventType = "vote-cast"
	EventVotingClosed         EventType = "voting-closed"
	EventRoundDiscussed       EventType = "round-discussed"
	EventRoundAdvanced        EventType = "round-advanced"
)

// RoundEvent describes one successful club transition.
type RoundEvent struct {
	ID         string      `msgpack:"id"`
	Type       EventType   `msgpack:"type"`
	OccurredAt time.Time   `msgpack:"occurred_at"`
	ClubName   string      `msgpack:"club_name"`
	ClubType   string      `msgpack:"club_type"`
	Picker     string      `msgpack:"picker"`
	Member     string      `msgpack:"member,omitempty"`
	Items      []club.Item `msgpack:"items,omitempty"`
	Winner     *club.Item  `msgpack:"winner,omitempty"`
	Ballots    int         `msgpack:"ballots"`
	Pending    []string    `msgpack:"pending,omitempty"`
	DryRun     bool        `msgpack:"dry_run"`
	// Archived is the history entry written by round-advanced.
	Archived *club.HistoryEntry `msgpack:"archived,omitempty"`
}
