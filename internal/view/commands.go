package view

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
)

// afterMutation refreshes the snapshot once a command was accepted.
func (s *Session) afterMutation(ctx context.Context, msg string) (string, error) {
	if err := s.Refresh(ctx); err != nil {
		return msg, fmt.Errorf("action succeeded but refreshing failed: %w", err)
	}
	return msg, nil
}

// SubmitSuggestions sends the picker's suggestions as one batch. Rejected
// drafts are kept in Drafts.
func (s *Session) SubmitSuggestions(ctx context.Context, drafts []club.Item) (string, error) {
	if !s.Controls().Suggest {
		return "", ErrActionDisabled
	}
	s.Drafts = slices.Clone(drafts)
	if err := club.ValidateSuggestions(drafts, s.rules.SuggestionCount); err != nil {
		return "", &ValidationError{Err: err}
	}

	msg, err := s.api.Suggest(ctx, club.NormalizeItems(drafts))
	if err != nil {
		log.Debug("Suggestions rejected", "error", err)
		return "", err
	}
	s.Drafts = nil
	return s.afterMutation(ctx, msg)
}

// SubmitVote sends member's ranking.
func (s *Session) SubmitVote(ctx context.Context, member string, ranking club.Ranking) (string, error) {
	if !s.Controls().CanVote(member) {
		return "", ErrActionDisabled
	}
	if err := club.ValidateRanking(ranking, s.state.CurrentRound.Suggestions, s.rules.Points); err != nil {
		return "", &ValidationError{Err: err}
	}

	msg, err := s.api.Vote(ctx, member, ranking)
	if err != nil {
		return "", err
	}
	return s.afterMutation(ctx, msg)
}

// CloseVoting asks the server to pick the winner. When some members have not
// voted, confirm is called with their names and must return true to proceed.
func (s *Session) CloseVoting(ctx context.Context, confirm func(unvoted []string) bool) (club.Item, error) {
	if !s.Controls().CloseVoting {
		return club.Item{}, ErrActionDisabled
	}
	if unvoted := club.PendingVoters(s.state); len(unvoted) > 0 {
		if confirm == nil || !confirm(unvoted) {
			return club.Item{}, ErrCancelled
		}
	}

	winner, err := s.api.CloseVoting(ctx)
	if err != nil {
		return club.Item{}, err
	}
	_, err = s.afterMutation(ctx, "")
	return winner, err
}

// ToggleCompletion marks member as done with the winning item. A member who
// already completed is left alone and no request is sent.
func (s *Session) ToggleCompletion(ctx context.Context, member string) (string, error) {
	if s.phase != club.PhaseReading || !club.IsMember(s.state, member) {
		return "", ErrActionDisabled
	}
	if s.state.CurrentRound.CompletionStatus[member] {
		return "", nil
	}

	msg, err := s.api.MarkCompleted(ctx, member)
	if err != nil {
		return "", err
	}
	return s.afterMutation(ctx, msg)
}

func (s *Session) MarkDiscussed(ctx context.Context) (string, error) {
	if !s.Controls().MarkDiscussed {
		return "", ErrActionDisabled
	}
	msg, err := s.api.MarkDiscussed(ctx)
	if err != nil {
		return "", err
	}
	return s.afterMutation(ctx, msg)
}

func (s *Session) StartNextRound(ctx context.Context) (string, error) {
	if !s.Controls().NextRound {
		return "", ErrActionDisabled
	}
	msg, err := s.api.NextRound(ctx)
	if err != nil {
		return "", err
	}
	return s.afterMutation(ctx, msg)
}
