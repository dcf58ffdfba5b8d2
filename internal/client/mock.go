package client

import (
	"context"
	"sync"

	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
)

var _ ClubAPI = (*MockClient)(nil)

// MockClient is a mock implementation of the ClubAPI interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	FetchStateFunc    func(ctx context.Context) (*club.ClubState, error)
	FetchConfigFunc   func(ctx context.Context) (config.ClubConfig, error)
	HistoryFunc       func(ctx context.Context) ([]club.HistoryEntry, error)
	StatsFunc         func(ctx context.Context) (map[string]int, error)
	HealthFunc        func(ctx context.Context) error
	SuggestFunc       func(ctx context.Context, items []club.Item) (string, error)
	VoteFunc          func(ctx context.Context, member string, rankings club.Ranking) (string, error)
	CloseVotingFunc   func(ctx context.Context) (club.Item, error)
	MarkCompletedFunc func(ctx context.Context, member string) (string, error)
	MarkDiscussedFunc func(ctx context.Context) (string, error)
	NextRoundFunc     func(ctx context.Context) (string, error)
	ResetFunc         func(ctx context.Context, state *club.ClubState) (string, error)

	// Call records
	FetchStateCalls    int
	SuggestCalls       [][]club.Item
	VoteCalls          []VoteCall
	CloseVotingCalls   int
	MarkCompletedCalls []string
	MarkDiscussedCalls int
	NextRoundCalls     int
	ResetCalls         []*club.ClubState
}

// VoteCall holds the arguments for a call to Vote.
type VoteCall struct {
	Member   string
	Rankings club.Ranking
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// ClearCalls clears all call records.
func (m *MockClient) ClearCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchStateCalls = 0
	m.SuggestCalls = nil
	m.VoteCalls = nil
	m.CloseVotingCalls = 0
	m.MarkCompletedCalls = nil
	m.MarkDiscussedCalls = 0
	m.NextRoundCalls = 0
	m.ResetCalls = nil
}

// Mutations returns how many mutating requests were sent.
func (m *MockClient) Mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SuggestCalls) + len(m.VoteCalls) + m.CloseVotingCalls +
		len(m.MarkCompletedCalls) + m.MarkDiscussedCalls + m.NextRoundCalls + len(m.ResetCalls)
}

func (m *MockClient) FetchState(ctx context.Context) (*club.ClubState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchStateCalls++
	if m.FetchStateFunc != nil {
		return m.FetchStateFunc(ctx)
	}
	return &club.ClubState{CurrentRound: club.NewRound()}, nil
}

func (m *MockClient) FetchConfig(ctx context.Context) (config.ClubConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchConfigFunc != nil {
		return m.FetchConfigFunc(ctx)
	}
	return config.DefaultClub(), nil
}

func (m *MockClient) History(ctx context.Context) ([]club.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx)
	}
	return []club.HistoryEntry{}, nil
}

func (m *MockClient) Stats(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return map[string]int{}, nil
}

func (m *MockClient) Health(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

func (m *MockClient) Suggest(ctx context.Context, items []club.Item) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuggestCalls = append(m.SuggestCalls, items)
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, items)
	}
	return "Suggestions submitted successfully.", nil
}

func (m *MockClient) Vote(ctx context.Context, member string, rankings club.Ranking) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VoteCalls = append(m.VoteCalls, VoteCall{Member: member, Rankings: rankings})
	if m.VoteFunc != nil {
		return m.VoteFunc(ctx, member, rankings)
	}
	return "Vote from " + member + " recorded successfully.", nil
}

func (m *MockClient) CloseVoting(ctx context.Context) (club.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseVotingCalls++
	if m.CloseVotingFunc != nil {
		return m.CloseVotingFunc(ctx)
	}
	return club.Item{}, nil
}

func (m *MockClient) MarkCompleted(ctx context.Context, member string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkCompletedCalls = append(m.MarkCompletedCalls, member)
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, member)
	}
	return "Completion status for " + member + " updated.", nil
}

func (m *MockClient) MarkDiscussed(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkDiscussedCalls++
	if m.MarkDiscussedFunc != nil {
		return m.MarkDiscussedFunc(ctx)
	}
	return "Round marked as discussed.", nil
}

func (m *MockClient) NextRound(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NextRoundCalls++
	if m.NextRoundFunc != nil {
		return m.NextRoundFunc(ctx)
	}
	return "New round started.", nil
}

func (m *MockClient) Reset(ctx context.Context, state *club.ClubState) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetCalls = append(m.ResetCalls, state)
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, state)
	}
	return "State has been reset successfully.", nil
}
