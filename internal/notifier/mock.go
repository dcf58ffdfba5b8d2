package notifier

import (
	"sync"

	"github.com/mauv0809/nextpick/internal/club"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for send functions
	SendSuggestionsFunc    func(clubName, picker string, items []club.Item, dryRun bool) error
	SendVotingClosedFunc   func(clubName string, winner club.Item, ballots int, dryRun bool) error
	SendRoundDiscussedFunc func(clubName string, winner club.Item, dryRun bool) error
	SendRoundAdvancedFunc  func(clubName string, archived club.HistoryEntry, nextPicker string, dryRun bool) error

	// Spies for format functions
	FormatScoresResponseFunc  func(state *club.ClubState, scores []club.Score) (any, error)
	FormatHistoryResponseFunc func(clubType string, history []club.HistoryEntry) (any, error)

	// Call records
	SendSuggestionsCalls []struct {
		Picker string
		Items  []club.Item
		DryRun bool
	}
	SendVotingClosedCalls   []club.Item
	SendRoundDiscussedCalls []club.Item
	SendRoundAdvancedCalls  []struct {
		Archived   club.HistoryEntry
		NextPicker string
	}
	FormatScoresResponseCalls  [][]club.Score
	FormatHistoryResponseCalls [][]club.HistoryEntry
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSuggestionsCalls = nil
	m.SendVotingClosedCalls = nil
	m.SendRoundDiscussedCalls = nil
	m.SendRoundAdvancedCalls = nil
	m.FormatScoresResponseCalls = nil
	m.FormatHistoryResponseCalls = nil
}

func (m *Mock) SendSuggestions(clubName, picker string, items []club.Item, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSuggestionsCalls = append(m.SendSuggestionsCalls, struct {
		Picker string
		Items  []club.Item
		DryRun bool
	}{picker, items, dryRun})
	if m.SendSuggestionsFunc != nil {
		return m.SendSuggestionsFunc(clubName, picker, items, dryRun)
	}
	return nil
}

func (m *Mock) SendVotingClosed(clubName string, winner club.Item, ballots int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendVotingClosedCalls = append(m.SendVotingClosedCalls, winner)
	if m.SendVotingClosedFunc != nil {
		return m.SendVotingClosedFunc(clubName, winner, ballots, dryRun)
	}
	return nil
}

func (m *Mock) SendRoundDiscussed(clubName string, winner club.Item, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundDiscussedCalls = append(m.SendRoundDiscussedCalls, winner)
	if m.SendRoundDiscussedFunc != nil {
		return m.SendRoundDiscussedFunc(clubName, winner, dryRun)
	}
	return nil
}

func (m *Mock) SendRoundAdvanced(clubName string, archived club.HistoryEntry, nextPicker string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundAdvancedCalls = append(m.SendRoundAdvancedCalls, struct {
		Archived   club.HistoryEntry
		NextPicker string
	}{archived, nextPicker})
	if m.SendRoundAdvancedFunc != nil {
		return m.SendRoundAdvancedFunc(clubName, archived, nextPicker, dryRun)
	}
	return nil
}

func (m *Mock) FormatScoresResponse(state *club.ClubState, scores []club.Score) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatScoresResponseCalls = append(m.FormatScoresResponseCalls, scores)
	if m.FormatScoresResponseFunc != nil {
		return m.FormatScoresResponseFunc(state, scores)
	}
	return "formatted_scores", nil
}

func (m *Mock) FormatHistoryResponse(clubType string, history []club.HistoryEntry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatHistoryResponseCalls = append(m.FormatHistoryResponseCalls, history)
	if m.FormatHistoryResponseFunc != nil {
		return m.FormatHistoryResponseFunc(clubType, history)
	}
	return "formatted_history", nil
}
