package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/metrics"
	"github.com/mauv0809/nextpick/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, tally metrics.MetricsStore) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		tally:    tally,
		now:      time.Now,
	}
}

// Record publishes ev for a transition that has just been applied. The
// event is completed from the current state; only the type and the
// transition-specific fields need to be set by the caller. Publishing is
// best effort: the transition already happened, so failures are only logged.
func (p *Processor) Record(ctx context.Context, ev pubsub.RoundEvent, dryRun bool) {
	p.countTransition(ev.Type)

	state, err := p.store.GetState(ctx)
	if err != nil {
		log.Error("Failed to load state for round event", "event", ev.Type, "error", err)
		return
	}

	ev.ID = uuid.NewString()
	ev.OccurredAt = p.now().UTC()
	ev.ClubName = state.ClubName
	ev.ClubType = state.ClubType
	ev.Picker = club.Picker(state)
	ev.Ballots = len(state.CurrentRound.Votes)
	ev.DryRun = dryRun
	if ev.Items == nil {
		ev.Items = state.CurrentRound.Suggestions
	}
	if ev.Winner == nil && state.CurrentRound.WinningItem != nil {
		w := *state.CurrentRound.WinningItem
		ev.Winner = &w
	}
	if !state.CurrentRound.IsVotingClosed {
		ev.Pending = club.PendingVoters(state)
	}

	if err := p.pubsub.SendMessage(ev.Type, ev); err != nil {
		log.Error("Failed to publish round event", "event", ev.Type, "id", ev.ID, "error", err)
		return
	}
	log.Debug("Published round event", "event", ev.Type, "id", ev.ID)
}

func (p *Processor) countTransition(t pubsub.EventType) {
	switch t {
	case pubsub.EventSuggestionsSubmitted:
		p.metrics.IncSuggestionsSubmitted()
	case pubsub.EventVoteCast:
		p.metrics.IncVotesCast()
	case pubsub.EventVotingClosed:
		p.metrics.IncVotingClosed()
	case pubsub.EventRoundAdvanced:
		p.metrics.IncRoundsCompleted()
	}
}

// HandleMessage consumes one encoded round event, as delivered by the
// Pub/Sub push endpoint or the in-process loopback.
func (p *Processor) HandleMessage(ctx context.Context, data []byte) error {
	startTime := time.Now()
	defer func() {
		p.metrics.ObserveEventProcessing(time.Since(startTime).Seconds())
	}()

	var ev pubsub.RoundEvent
	if err := p.pubsub.ProcessMessage(data, &ev); err != nil {
		return fmt.Errorf("failed to decode round event: %w", err)
	}
	log.Info("Processing round event", "event", ev.Type, "id", ev.ID, "club", ev.ClubName)
	p.tally.Increment(ctx, string(ev.Type))

	return p.notify(ev)
}

func (p *Processor) notify(ev pubsub.RoundEvent) error {
	switch ev.Type {
	case pubsub.EventSuggestionsSubmitted:
		return p.notifier.SendSuggestions(ev.ClubName, ev.Picker, ev.Items, ev.DryRun)
	case pubsub.EventVotingClosed:
		if ev.Winner == nil {
			return fmt.Errorf("voting-closed event %s has no winner", ev.ID)
		}
		return p.notifier.SendVotingClosed(ev.ClubName, *ev.Winner, ev.Ballots, ev.DryRun)
	case pubsub.EventRoundDiscussed:
		if ev.Winner == nil {
			return fmt.Errorf("round-discussed event %s has no winner", ev.ID)
		}
		return p.notifier.SendRoundDiscussed(ev.ClubName, *ev.Winner, ev.DryRun)
	case pubsub.EventRoundAdvanced:
		if ev.Archived == nil {
			return fmt.Errorf("round-advanced event %s has no history entry", ev.ID)
		}
		return p.notifier.SendRoundAdvanced(ev.ClubName, *ev.Archived, ev.Picker, ev.DryRun)
	case pubsub.EventVoteCast:
		log.Debug("Vote recorded, nothing to announce", "member", ev.Member, "pending", ev.Pending)
		return nil
	default:
		log.Warn("Unknown round event", "event", ev.Type, "id", ev.ID)
		return nil
	}
}
