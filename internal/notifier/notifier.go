package notifier

import (
	"github.com/mauv0809/nextpick/internal/club"
)

// Notifier defines a high-level interface for sending notifications about round events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Round milestones
	SendSuggestions(clubName, picker string, items []club.Item, dryRun bool) error
	SendVotingClosed(clubName string, winner club.Item, ballots int, dryRun bool) error
	SendRoundDiscussed(clubName string, winner club.Item, dryRun bool) error
	SendRoundAdvanced(clubName string, archived club.HistoryEntry, nextPicker string, dryRun bool) error

	// For formatting responses for slash commands
	FormatScoresResponse(state *club.ClubState, scores []club.Score) (any, error)
	FormatHistoryResponse(clubType string, history []club.HistoryEntry) (any, error)
}
