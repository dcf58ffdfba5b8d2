package club_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

// setupTestDB creates an in-memory SQLite database with a seeded three member club.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.NewWithClock(db, club.DefaultRules(), func() time.Time { return fixedNow })
	require.NoError(t, store.Reset(context.Background(), &club.ClubState{
		ClubName:     "Sci-Fi Club",
		ClubType:     "Book",
		Members:      []string{"Alice", "Bob", "Carol"},
		CurrentRound: club.NewRound(),
	}))
	return store, db, teardown
}

var sciFi = []club.Item{
	{Title: "Dune", Author: "Herbert"},
	{Title: "Hyperion", Author: "Simmons"},
	{Title: "Foundation", Author: "Asimov"},
}

func TestGetState_NotInitialized(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := club.New(db, club.DefaultRules())
	_, err = store.GetState(context.Background())
	assert.ErrorIs(t, err, club.ErrStateNotInitialized)

	_, err = store.CloseVoting(context.Background())
	assert.ErrorIs(t, err, club.ErrStateNotInitialized)
}

func TestFullRoundLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	state, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, club.PhaseSuggestion, club.ResolvePhase(state))
	assert.Equal(t, "Alice", club.Picker(state))
	assert.Empty(t, state.History)

	require.NoError(t, store.SubmitSuggestions(ctx, sciFi))

	require.NoError(t, store.SubmitVote(ctx, "Alice", club.Ranking{"Dune": 1, "Hyperion": 2, "Foundation": 3}))
	require.NoError(t, store.SubmitVote(ctx, "Bob", club.Ranking{"Dune": 2, "Hyperion": 1, "Foundation": 3}))
	require.NoError(t, store.SubmitVote(ctx, "Carol", club.Ranking{"Dune": 3, "Hyperion": 2, "Foundation": 1}))

	state, err = store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, club.PhaseVoting, club.ResolvePhase(state))
	assert.Len(t, state.CurrentRound.Votes, 3)

	winner, err := store.CloseVoting(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dune", winner.Title, "Dune and Hyperion tie on 6, Dune was suggested first")

	state, err = store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, club.PhaseReading, club.ResolvePhase(state))
	require.NotNil(t, state.CurrentRound.WinningItem)
	assert.Equal(t, sciFi[0], *state.CurrentRound.WinningItem)

	err = store.MarkDiscussed(ctx)
	assert.ErrorIs(t, err, club.ErrNotAllCompleted)

	for _, m := range []string{"Alice", "Bob", "Carol"} {
		require.NoError(t, store.MarkCompleted(ctx, m))
	}
	_, err = store.NextRound(ctx)
	assert.ErrorIs(t, err, club.ErrNotDiscussed)

	require.NoError(t, store.MarkDiscussed(ctx))

	entry, err := store.NextRound(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Alice", entry.Picker)
	assert.Equal(t, "2024-03-09", entry.DateCompleted)
	require.NotNil(t, entry.WinningItem)
	assert.Equal(t, "Dune", entry.WinningItem.Title)

	state, err = store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentPickerIndex)
	assert.Equal(t, "Bob", club.Picker(state))
	assert.Equal(t, club.PhaseSuggestion, club.ResolvePhase(state))
	assert.Empty(t, state.CurrentRound.Suggestions)
	assert.Empty(t, state.CurrentRound.Votes)
	assert.Empty(t, state.CurrentRound.CompletionStatus)
	require.Len(t, state.History, 1)
	assert.Equal(t, entry, state.History[0])

	history, err := store.GetHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.History, history)
}

func TestSubmitVote_Rejections(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	err := store.SubmitVote(ctx, "Alice", club.Ranking{"Dune": 1})
	assert.ErrorIs(t, err, club.ErrWrongPhase, "nothing to vote on yet")

	require.NoError(t, store.SubmitSuggestions(ctx, sciFi))
	valid := club.Ranking{"Dune": 1, "Hyperion": 2, "Foundation": 3}

	err = store.SubmitVote(ctx, "Mallory", valid)
	assert.ErrorIs(t, err, club.ErrUnknownMember)

	err = store.SubmitVote(ctx, "Alice", club.Ranking{"Dune": 1, "Hyperion": 1, "Foundation": 3})
	assert.ErrorIs(t, err, club.ErrInvalidRanking)

	require.NoError(t, store.SubmitVote(ctx, "Alice", valid))
	err = store.SubmitVote(ctx, "Alice", club.Ranking{"Dune": 3, "Hyperion": 2, "Foundation": 1})
	assert.ErrorIs(t, err, club.ErrAlreadyVoted)

	state, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, valid, state.CurrentRound.Votes["Alice"], "the first ballot is kept")

	_, err = store.CloseVoting(ctx)
	require.NoError(t, err)
	err = store.SubmitVote(ctx, "Bob", valid)
	assert.ErrorIs(t, err, club.ErrVotingClosed)
}

func TestSubmitSuggestions_Rejections(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	err := store.SubmitSuggestions(ctx, sciFi[:2])
	assert.ErrorIs(t, err, club.ErrSuggestionCount)

	state, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.CurrentRound.Suggestions, "a rejected batch is not stored")

	require.NoError(t, store.SubmitSuggestions(ctx, sciFi))
	err = store.SubmitSuggestions(ctx, sciFi)
	assert.ErrorIs(t, err, club.ErrSuggestionsExist)
}

func TestCloseVoting_Twice(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.CloseVoting(ctx)
	assert.ErrorIs(t, err, club.ErrWrongPhase)

	require.NoError(t, store.SubmitSuggestions(ctx, sciFi))
	winner, err := store.CloseVoting(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dune", winner.Title, "with no ballots the first suggestion wins")

	_, err = store.CloseVoting(ctx)
	assert.ErrorIs(t, err, club.ErrVotingClosed)
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	err := store.MarkCompleted(ctx, "Alice")
	assert.ErrorIs(t, err, club.ErrWrongPhase)

	require.NoError(t, store.SubmitSuggestions(ctx, sciFi))
	_, err = store.CloseVoting(ctx)
	require.NoError(t, err)

	require.NoError(t, store.MarkCompleted(ctx, "Alice"))
	require.NoError(t, store.MarkCompleted(ctx, "Alice"))
	assert.ErrorIs(t, store.MarkCompleted(ctx, "Mallory"), club.ErrUnknownMember)

	state, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Alice": true}, state.CurrentRound.CompletionStatus)
}

func TestReset_ReplacesStateAndHistory(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.SubmitSuggestions(ctx, sciFi))

	replacement := &club.ClubState{
		ClubName:           "Film Night",
		ClubType:           "Movie",
		Members:            []string{"Dan", "Eve"},
		CurrentPickerIndex: 1,
		CurrentRound:       club.NewRound(),
		History: []club.HistoryEntry{
			{WinningItem: &club.Item{Title: "Alien", Author: "Scott"}, Picker: "Dan", DateCompleted: "2024-01-05"},
			{ID: "fixed-id", WinningItem: &club.Item{Title: "Heat", Author: "Mann"}, Picker: "Eve", DateCompleted: "2024-02-02"},
		},
	}
	require.NoError(t, store.Reset(ctx, replacement))

	state, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Film Night", state.ClubName)
	assert.Equal(t, "Movie", state.ClubType)
	assert.Equal(t, []string{"Dan", "Eve"}, state.Members)
	assert.Equal(t, "Eve", club.Picker(state))
	assert.Empty(t, state.CurrentRound.Suggestions)
	require.Len(t, state.History, 2)
	assert.NotEmpty(t, state.History[0].ID, "missing ids are assigned")
	assert.Equal(t, "Alien", state.History[0].WinningItem.Title)
	assert.Equal(t, "fixed-id", state.History[1].ID)
	assert.Empty(t, replacement.History[0].ID, "the caller's value is not modified")

	err = store.Reset(ctx, &club.ClubState{Members: []string{"Dan"}, CurrentPickerIndex: 4})
	assert.ErrorIs(t, err, club.ErrInvalidState)

	state, err = store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Film Night", state.ClubName, "an invalid reset changes nothing")
}

func TestReset_RejectsInconsistentRounds(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	round := club.NewRound()
	round.Suggestions = sciFi
	round.Votes["Alice"] = club.Ranking{"Dune": 1, "Hyperion": 1}
	err := store.Reset(ctx, &club.ClubState{Members: []string{"Alice", "Bob"}, CurrentRound: round})
	assert.ErrorIs(t, err, club.ErrInvalidState)

	ghost := club.NewRound()
	ghost.IsVotingClosed = true
	ghost.WinningItem = &club.Item{Title: "Ghost", Author: "Nobody"}
	err = store.Reset(ctx, &club.ClubState{Members: []string{"Alice", "Bob"}, CurrentRound: ghost})
	assert.ErrorIs(t, err, club.ErrInvalidState)

	state, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi Club", state.ClubName, "rejected snapshots leave the stored state alone")
	assert.Equal(t, club.PhaseSuggestion, club.ResolvePhase(state))
}

func TestPickerRotationWraps(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	pickers := []string{}
	for i := 0; i < 4; i++ {
		require.NoError(t, store.SubmitSuggestions(ctx, sciFi))
		_, err := store.CloseVoting(ctx)
		require.NoError(t, err)
		for _, m := range []string{"Alice", "Bob", "Carol"} {
			require.NoError(t, store.MarkCompleted(ctx, m))
		}
		require.NoError(t, store.MarkDiscussed(ctx))
		entry, err := store.NextRound(ctx)
		require.NoError(t, err)
		pickers = append(pickers, entry.Picker)
	}

	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Alice"}, pickers)

	history, err := store.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i, entry := range history {
		assert.Equal(t, pickers[i], entry.Picker, "history keeps insertion order")
	}
}
