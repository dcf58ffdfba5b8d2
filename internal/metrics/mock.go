package metrics

import (
	"context"
	"maps"
	"sync"
)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	suggestionsSubmitted int
	votesCast            int
	votingClosed         int
	roundsCompleted      int
	rejectedActions      map[string]int
	eventDurations       []float64
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rejectedActions: make(map[string]int),
		eventDurations:  make([]float64, 0),
	}
}

func (m *Mock) IncSuggestionsSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestionsSubmitted++
}

func (m *Mock) IncVotesCast() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votesCast++
}

func (m *Mock) IncVotingClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votingClosed++
}

func (m *Mock) IncRoundsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsCompleted++
}

func (m *Mock) IncRejectedActions(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectedActions[action]++
}

func (m *Mock) ObserveEventProcessing(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventDurations = append(m.eventDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

func (m *Mock) SuggestionsSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suggestionsSubmitted
}

func (m *Mock) VotesCast() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.votesCast
}

func (m *Mock) VotingClosed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.votingClosed
}

func (m *Mock) RoundsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsCompleted
}

// RejectedActions returns how often IncRejectedActions was called for action.
func (m *Mock) RejectedActions(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejectedActions[action]
}

// EventDurations returns every duration passed to ObserveEventProcessing.
func (m *Mock) EventDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.eventDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StoreMock is an in-memory MetricsStore.
type StoreMock struct {
	mu     sync.Mutex
	values map[string]int
}

func NewStoreMock() *StoreMock {
	return &StoreMock{values: make(map[string]int)}
}

func (m *StoreMock) Increment(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *StoreMock) GetAll(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values), nil
}
