package view

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/nextpick/internal/client"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dune       = club.Item{Title: "Dune", Author: "Herbert"}
	hyperion   = club.Item{Title: "Hyperion", Author: "Simmons"}
	foundation = club.Item{Title: "Foundation", Author: "Asimov"}
)

func baseState() *club.ClubState {
	return &club.ClubState{
		ClubName:     "Sci-Fi Club",
		ClubType:     "Book",
		Members:      []string{"Alice", "Bob", "Carol"},
		CurrentRound: club.NewRound(),
		History:      []club.HistoryEntry{},
	}
}

func votingState() *club.ClubState {
	s := baseState()
	s.CurrentRound.Suggestions = []club.Item{dune, hyperion, foundation}
	s.CurrentRound.Votes["Alice"] = club.Ranking{"Dune": 1, "Hyperion": 2, "Foundation": 3}
	s.CurrentRound.Votes["Bob"] = club.Ranking{"Dune": 2, "Hyperion": 1, "Foundation": 3}
	return s
}

func readingState() *club.ClubState {
	s := votingState()
	s.CurrentRound.IsVotingClosed = true
	s.CurrentRound.WinningItem = &dune
	return s
}

// newSession returns a refreshed session whose API serves *current.
func newSession(t *testing.T, current **club.ClubState) (*Session, *client.MockClient) {
	t.Helper()
	api := client.NewMockClient()
	api.FetchStateFunc = func(ctx context.Context) (*club.ClubState, error) {
		return (*current).Clone(), nil
	}
	s := NewSession(api, config.DefaultClub())
	require.NoError(t, s.Refresh(context.Background()))
	api.ClearCalls()
	return s, api
}

func TestRefresh_ResolvesPhase(t *testing.T) {
	state := baseState()
	s, _ := newSession(t, &state)
	assert.Equal(t, club.PhaseSuggestion, s.Phase())

	state = votingState()
	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, club.PhaseVoting, s.Phase())
	assert.Len(t, s.LiveScores(), 3)
}

func TestRefresh_KeepsSnapshotOnFailure(t *testing.T) {
	state := votingState()
	s, api := newSession(t, &state)

	api.FetchStateFunc = func(ctx context.Context) (*club.ClubState, error) {
		return nil, &client.TransportError{Op: "GET /api/state", Err: errors.New("connection refused")}
	}
	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Error: could not reach the server.", Describe(err))
	assert.Equal(t, club.PhaseVoting, s.Phase())
	assert.Equal(t, "Sci-Fi Club", s.State().ClubName)
}

func TestControls(t *testing.T) {
	state := baseState()
	s, _ := newSession(t, &state)
	assert.Equal(t, Controls{Suggest: true}, s.Controls())

	state = votingState()
	require.NoError(t, s.Refresh(context.Background()))
	c := s.Controls()
	assert.True(t, c.CloseVoting)
	assert.False(t, c.Suggest)
	assert.True(t, c.CanVote("Carol"))
	assert.False(t, c.CanVote("Alice"), "a member who voted cannot vote again")

	state = readingState()
	require.NoError(t, s.Refresh(context.Background()))
	c = s.Controls()
	assert.False(t, c.MarkDiscussed)
	assert.False(t, c.NextRound)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, c.Complete)

	for _, m := range state.Members {
		state.CurrentRound.CompletionStatus[m] = true
	}
	require.NoError(t, s.Refresh(context.Background()))
	c = s.Controls()
	assert.True(t, c.MarkDiscussed)
	assert.Empty(t, c.Complete)

	state.CurrentRound.IsDiscussed = true
	require.NoError(t, s.Refresh(context.Background()))
	c = s.Controls()
	assert.False(t, c.MarkDiscussed)
	assert.True(t, c.NextRound)
}

func TestSubmitSuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("local validation sends nothing", func(t *testing.T) {
		state := baseState()
		s, api := newSession(t, &state)

		drafts := []club.Item{dune, {Title: "Hyperion", Author: " "}, foundation}
		_, err := s.SubmitSuggestions(ctx, drafts)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.ErrorIs(t, err, club.ErrIncompleteItem)
		assert.Zero(t, api.Mutations())
		assert.Equal(t, drafts, s.Drafts)
	})

	t.Run("server rejection keeps drafts", func(t *testing.T) {
		state := baseState()
		s, api := newSession(t, &state)
		api.SuggestFunc = func(ctx context.Context, items []club.Item) (string, error) {
			return "", &client.ServerError{StatusCode: 409, Message: "suggestions have already been made for this round"}
		}

		drafts := []club.Item{dune, hyperion, foundation}
		_, err := s.SubmitSuggestions(ctx, drafts)
		require.Error(t, err)
		assert.Equal(t, "suggestions have already been made for this round", Describe(err))
		assert.Equal(t, drafts, s.Drafts)
		assert.Zero(t, api.FetchStateCalls)
	})

	t.Run("success sends one trimmed batch and refreshes", func(t *testing.T) {
		state := baseState()
		s, api := newSession(t, &state)
		api.SuggestFunc = func(ctx context.Context, items []club.Item) (string, error) {
			state = votingState()
			return "Suggestions submitted successfully.", nil
		}

		msg, err := s.SubmitSuggestions(ctx, []club.Item{{Title: " Dune ", Author: "Herbert"}, hyperion, foundation})
		require.NoError(t, err)
		assert.Equal(t, "Suggestions submitted successfully.", msg)
		require.Len(t, api.SuggestCalls, 1)
		assert.Equal(t, []club.Item{dune, hyperion, foundation}, api.SuggestCalls[0])
		assert.Nil(t, s.Drafts)
		assert.Equal(t, 1, api.FetchStateCalls)
		assert.Equal(t, club.PhaseVoting, s.Phase())
	})

	t.Run("disabled outside the suggestion phase", func(t *testing.T) {
		state := votingState()
		s, api := newSession(t, &state)
		_, err := s.SubmitSuggestions(ctx, []club.Item{dune, hyperion, foundation})
		assert.ErrorIs(t, err, ErrActionDisabled)
		assert.Zero(t, api.Mutations())
	})
}

func TestSubmitVote(t *testing.T) {
	ctx := context.Background()
	state := votingState()
	s, api := newSession(t, &state)

	_, err := s.SubmitVote(ctx, "Alice", club.Ranking{"Dune": 3, "Hyperion": 2, "Foundation": 1})
	assert.ErrorIs(t, err, ErrActionDisabled, "Alice already voted")

	_, err = s.SubmitVote(ctx, "Carol", club.Ranking{"Dune": 1, "Hyperion": 1, "Foundation": 3})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "rank 2")
	assert.Zero(t, api.Mutations())

	_, err = s.SubmitVote(ctx, "Carol", club.Ranking{"Dune": 3, "Hyperion": 2, "Foundation": 1})
	require.NoError(t, err)
	require.Len(t, api.VoteCalls, 1)
	assert.Equal(t, "Carol", api.VoteCalls[0].Member)
}

func TestCloseVoting_Confirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling sends nothing", func(t *testing.T) {
		state := votingState()
		s, api := newSession(t, &state)

		var asked []string
		_, err := s.CloseVoting(ctx, func(unvoted []string) bool {
			asked = unvoted
			return false
		})
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Equal(t, []string{"Carol"}, asked)
		assert.Zero(t, api.CloseVotingCalls)
		assert.False(t, s.State().CurrentRound.IsVotingClosed)
	})

	t.Run("confirming closes", func(t *testing.T) {
		state := votingState()
		s, api := newSession(t, &state)
		api.CloseVotingFunc = func(ctx context.Context) (club.Item, error) {
			state = readingState()
			return dune, nil
		}

		winner, err := s.CloseVoting(ctx, func(unvoted []string) bool { return true })
		require.NoError(t, err)
		assert.Equal(t, dune, winner)
		assert.Equal(t, 1, api.CloseVotingCalls)
		assert.Equal(t, club.PhaseReading, s.Phase())
	})

	t.Run("no confirmation when everyone voted", func(t *testing.T) {
		state := votingState()
		state.CurrentRound.Votes["Carol"] = club.Ranking{"Dune": 3, "Hyperion": 2, "Foundation": 1}
		s, api := newSession(t, &state)

		_, err := s.CloseVoting(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, api.CloseVotingCalls)
	})
}

func TestToggleCompletion(t *testing.T) {
	ctx := context.Background()
	state := readingState()
	state.CurrentRound.CompletionStatus["Alice"] = true
	s, api := newSession(t, &state)

	msg, err := s.ToggleCompletion(ctx, "Alice")
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Empty(t, api.MarkCompletedCalls, "an already completed member is a no-op")

	_, err = s.ToggleCompletion(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, api.MarkCompletedCalls)

	_, err = s.ToggleCompletion(ctx, "Mallory")
	assert.ErrorIs(t, err, ErrActionDisabled)
}

func TestDiscussAndAdvance(t *testing.T) {
	ctx := context.Background()
	state := readingState()
	s, api := newSession(t, &state)

	_, err := s.MarkDiscussed(ctx)
	assert.ErrorIs(t, err, ErrActionDisabled)
	_, err = s.StartNextRound(ctx)
	assert.ErrorIs(t, err, ErrActionDisabled)
	assert.Zero(t, api.Mutations())

	for _, m := range state.Members {
		state.CurrentRound.CompletionStatus[m] = true
	}
	require.NoError(t, s.Refresh(ctx))
	api.MarkDiscussedFunc = func(ctx context.Context) (string, error) {
		state.CurrentRound.IsDiscussed = true
		return "Round marked as discussed.", nil
	}
	_, err = s.MarkDiscussed(ctx)
	require.NoError(t, err)

	api.NextRoundFunc = func(ctx context.Context) (string, error) {
		next := baseState()
		next.CurrentPickerIndex = 1
		next.History = []club.HistoryEntry{{WinningItem: &dune, Picker: "Alice", DateCompleted: "2024-03-09"}}
		state = next
		return "New round started. Picker is now Bob.", nil
	}
	msg, err := s.StartNextRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New round started. Picker is now Bob.", msg)
	assert.Equal(t, club.PhaseSuggestion, s.Phase())
	assert.Equal(t, "Bob", club.Picker(s.State()))
}
