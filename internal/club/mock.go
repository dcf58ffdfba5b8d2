package club

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetStateFunc          func(ctx context.Context) (*ClubState, error)
	GetHistoryFunc        func(ctx context.Context) ([]HistoryEntry, error)
	SubmitSuggestionsFunc func(ctx context.Context, items []Item) error
	SubmitVoteFunc        func(ctx context.Context, member string, ranking Ranking) error
	CloseVotingFunc       func(ctx context.Context) (Item, error)
	MarkCompletedFunc     func(ctx context.Context, member string) error
	MarkDiscussedFunc     func(ctx context.Context) error
	NextRoundFunc         func(ctx context.Context) (HistoryEntry, error)
	ResetFunc             func(ctx context.Context, state *ClubState) error

	RulesValue Rules

	// Call records
	SubmitSuggestionsCalls [][]Item
	SubmitVoteCalls        []struct {
		Member  string
		Ranking Ranking
	}
	CloseVotingCalls   int
	MarkCompletedCalls []string
	MarkDiscussedCalls int
	NextRoundCalls     int
	ResetCalls         []*ClubState
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{RulesValue: DefaultRules()}
}

// ClearCalls clears all call records.
func (m *MockStore) ClearCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmitSuggestionsCalls = nil
	m.SubmitVoteCalls = nil
	m.CloseVotingCalls = 0
	m.MarkCompletedCalls = nil
	m.MarkDiscussedCalls = 0
	m.NextRoundCalls = 0
	m.ResetCalls = nil
}

func (m *MockStore) Rules() Rules {
	return m.RulesValue
}

func (m *MockStore) GetState(ctx context.Context) (*ClubState, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx)
	}
	return &ClubState{CurrentRound: NewRound(), History: []HistoryEntry{}}, nil
}

func (m *MockStore) GetHistory(ctx context.Context) ([]HistoryEntry, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx)
	}
	return []HistoryEntry{}, nil
}

func (m *MockStore) SubmitSuggestions(ctx context.Context, items []Item) error {
	m.mu.Lock()
	m.SubmitSuggestionsCalls = append(m.SubmitSuggestionsCalls, items)
	m.mu.Unlock()
	if m.SubmitSuggestionsFunc != nil {
		return m.SubmitSuggestionsFunc(ctx, items)
	}
	return nil
}

func (m *MockStore) SubmitVote(ctx context.Context, member string, ranking Ranking) error {
	m.mu.Lock()
	m.SubmitVoteCalls = append(m.SubmitVoteCalls, struct {
		Member  string
		Ranking Ranking
	}{member, ranking})
	m.mu.Unlock()
	if m.SubmitVoteFunc != nil {
		return m.SubmitVoteFunc(ctx, member, ranking)
	}
	return nil
}

func (m *MockStore) CloseVoting(ctx context.Context) (Item, error) {
	m.mu.Lock()
	m.CloseVotingCalls++
	m.mu.Unlock()
	if m.CloseVotingFunc != nil {
		return m.CloseVotingFunc(ctx)
	}
	return Item{}, nil
}

func (m *MockStore) MarkCompleted(ctx context.Context, member string) error {
	m.mu.Lock()
	m.MarkCompletedCalls = append(m.MarkCompletedCalls, member)
	m.mu.Unlock()
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, member)
	}
	return nil
}

func (m *MockStore) MarkDiscussed(ctx context.Context) error {
	m.mu.Lock()
	m.MarkDiscussedCalls++
	m.mu.Unlock()
	if m.MarkDiscussedFunc != nil {
		return m.MarkDiscussedFunc(ctx)
	}
	return nil
}

func (m *MockStore) NextRound(ctx context.Context) (HistoryEntry, error) {
	m.mu.Lock()
	m.NextRoundCalls++
	m.mu.Unlock()
	if m.NextRoundFunc != nil {
		return m.NextRoundFunc(ctx)
	}
	return HistoryEntry{}, nil
}

func (m *MockStore) Reset(ctx context.Context, state *ClubState) error {
	m.mu.Lock()
	m.ResetCalls = append(m.ResetCalls, state)
	m.mu.Unlock()
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, state)
	}
	return nil
}
