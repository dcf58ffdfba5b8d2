package club

import (
	"fmt"
	"maps"
	"slices"
)

// NewRound returns an empty round, ready for suggestions.
func NewRound() Round {
	return Round{
		Suggestions:      []Item{},
		Votes:            make(map[string]Ranking),
		CompletionStatus: make(map[string]bool),
	}
}

// SubmitSuggestions stores the picker's suggestions for the round. The whole
// batch is accepted or none of it is.
func SubmitSuggestions(state *ClubState, items []Item, rules Rules) error {
	if state.CurrentRound.IsVotingClosed {
		return fmt.Errorf("%w: voting on this round has already closed", ErrWrongPhase)
	}
	if len(state.CurrentRound.Suggestions) > 0 {
		return ErrSuggestionsExist
	}
	if err := ValidateSuggestions(items, rules.SuggestionCount); err != nil {
		return err
	}
	state.CurrentRound.Suggestions = NormalizeItems(items)
	return nil
}

// CastVote records one member's ballot.
func CastVote(state *ClubState, member string, ranking Ranking, rules Rules) error {
	round := &state.CurrentRound
	if len(round.Suggestions) == 0 {
		return fmt.Errorf("%w: there is nothing to vote on yet", ErrWrongPhase)
	}
	if round.IsVotingClosed {
		return ErrVotingClosed
	}
	if !IsMember(state, member) {
		return fmt.Errorf("%w: %q", ErrUnknownMember, member)
	}
	if HasVoted(state, member) {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, member)
	}
	if err := ValidateRanking(ranking, round.Suggestions, rules.Points); err != nil {
		return err
	}

	ballot := make(Ranking, len(ranking))
	for title, rank := range ranking {
		if rank > 0 {
			ballot[title] = rank
		}
	}
	if round.Votes == nil {
		round.Votes = make(map[string]Ranking)
	}
	round.Votes[member] = ballot
	return nil
}

// CloseVoting ends voting whether or not everyone has voted, and fixes the
// winner.
func CloseVoting(state *ClubState, rules Rules) (Item, error) {
	round := &state.CurrentRound
	if len(round.Suggestions) == 0 {
		return Item{}, fmt.Errorf("%w: there are no suggestions to pick from", ErrWrongPhase)
	}
	if round.IsVotingClosed {
		return Item{}, ErrVotingClosed
	}
	winner, ok := PickWinner(*round, rules.Points)
	if !ok {
		return Item{}, fmt.Errorf("%w: no winner could be determined", ErrWrongPhase)
	}
	round.IsVotingClosed = true
	round.WinningItem = &winner
	return winner, nil
}

// MarkCompleted flags that member has finished the winning item. Completion
// is one-way; marking a member twice changes nothing.
func MarkCompleted(state *ClubState, member string) error {
	if ResolvePhase(state) != PhaseReading {
		return fmt.Errorf("%w: there is no winning item yet", ErrWrongPhase)
	}
	if !IsMember(state, member) {
		return fmt.Errorf("%w: %q", ErrUnknownMember, member)
	}
	if state.CurrentRound.CompletionStatus == nil {
		state.CurrentRound.CompletionStatus = make(map[string]bool)
	}
	state.CurrentRound.CompletionStatus[member] = true
	return nil
}

// MarkDiscussed closes the discussion of the round. It cannot be undone.
func MarkDiscussed(state *ClubState) error {
	if ResolvePhase(state) != PhaseReading {
		return fmt.Errorf("%w: voting has not finished", ErrWrongPhase)
	}
	if state.CurrentRound.IsDiscussed {
		return ErrAlreadyDiscussed
	}
	if pending := PendingCompletion(state); len(pending) > 0 {
		return fmt.Errorf("%w: waiting for %v", ErrNotAllCompleted, pending)
	}
	state.CurrentRound.IsDiscussed = true
	return nil
}

// AdvanceRound archives the finished round and starts the next one with the
// following picker. entry supplies the id and completion date; its winner and
// picker are filled in from the state.
func AdvanceRound(state *ClubState, entry HistoryEntry) (HistoryEntry, error) {
	if !state.CurrentRound.IsDiscussed {
		return HistoryEntry{}, ErrNotDiscussed
	}
	if len(state.Members) == 0 {
		return HistoryEntry{}, fmt.Errorf("%w: the club has no members", ErrInvalidState)
	}

	if w := state.CurrentRound.WinningItem; w != nil {
		winner := *w
		entry.WinningItem = &winner
	}
	entry.Picker = Picker(state)
	state.History = append(state.History, entry)

	state.CurrentPickerIndex = (state.CurrentPickerIndex + 1) % len(state.Members)
	state.CurrentRound = NewRound()
	return entry, nil
}

// Clone returns a deep copy of the state so callers can transition it
// without touching the original.
func (s *ClubState) Clone() *ClubState {
	out := *s
	out.Members = slices.Clone(s.Members)
	out.History = slices.Clone(s.History)

	round := s.CurrentRound
	out.CurrentRound = Round{
		Suggestions:      append([]Item{}, round.Suggestions...),
		Votes:            make(map[string]Ranking, len(round.Votes)),
		IsVotingClosed:   round.IsVotingClosed,
		CompletionStatus: maps.Clone(round.CompletionStatus),
		IsDiscussed:      round.IsDiscussed,
	}
	if out.CurrentRound.CompletionStatus == nil {
		out.CurrentRound.CompletionStatus = make(map[string]bool)
	}
	for member, ranking := range round.Votes {
		out.CurrentRound.Votes[member] = maps.Clone(ranking)
	}
	if round.WinningItem != nil {
		w := *round.WinningItem
		out.CurrentRound.WinningItem = &w
	}
	return &out
}
