package club

import "context"

// ClubStore defines the interface for reading and transitioning the club's state.
// Every mutating call is applied atomically: it either fully succeeds or
// leaves the stored state untouched.
type ClubStore interface {
	GetState(ctx context.Context) (*ClubState, error)
	GetHistory(ctx context.Context) ([]HistoryEntry, error)
	SubmitSuggestions(ctx context.Context, items []Item) error
	SubmitVote(ctx context.Context, member string, ranking Ranking) error
	CloseVoting(ctx context.Context) (Item, error)
	MarkCompleted(ctx context.Context, member string) error
	MarkDiscussed(ctx context.Context) error
	NextRound(ctx context.Context) (HistoryEntry, error)
	Reset(ctx context.Context, state *ClubState) error
	Rules() Rules
}
