package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePhase(t *testing.T) {
	tests := []struct {
		name  string
		state *ClubState
		want  Phase
	}{
		{"nil state", nil, PhaseUnknown},
		{"no suggestions", newState(), PhaseSuggestion},
		{"suggestions, voting open", func() *ClubState {
			s := newState()
			s.CurrentRound.Suggestions = []Item{dune}
			return s
		}(), PhaseVoting},
		{"closed with winner", func() *ClubState {
			s := newState()
			s.CurrentRound.Suggestions = []Item{dune}
			s.CurrentRound.IsVotingClosed = true
			s.CurrentRound.WinningItem = &dune
			return s
		}(), PhaseReading},
		{"closed without winner", func() *ClubState {
			s := newState()
			s.CurrentRound.Suggestions = []Item{dune}
			s.CurrentRound.IsVotingClosed = true
			return s
		}(), PhaseUnknown},
		{"empty suggestions take precedence over a stray winner", func() *ClubState {
			s := newState()
			s.CurrentRound.IsVotingClosed = true
			s.CurrentRound.WinningItem = &dune
			return s
		}(), PhaseSuggestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePhase(tt.state))
		})
	}
}

func TestStatusOf(t *testing.T) {
	s := newState()
	assert.Equal(t, StatusEmpty, StatusOf(s))

	s.CurrentRound.Suggestions = []Item{dune, hyperion, foundation}
	assert.Equal(t, StatusSuggested, StatusOf(s))

	s.CurrentRound.Votes["A"] = Ranking{"Dune": 1}
	assert.Equal(t, StatusVotingOpen, StatusOf(s))

	s.CurrentRound.IsVotingClosed = true
	s.CurrentRound.WinningItem = &dune
	assert.Equal(t, StatusVotingClosed, StatusOf(s))

	for _, m := range s.Members {
		s.CurrentRound.CompletionStatus[m] = true
	}
	assert.Equal(t, StatusAllCompleted, StatusOf(s))

	s.CurrentRound.IsDiscussed = true
	assert.Equal(t, StatusDiscussed, StatusOf(s))
	assert.Equal(t, "DISCUSSED", StatusOf(s).String())
}

func TestMemberHelpers(t *testing.T) {
	s := newState()
	s.CurrentRound.Votes["B"] = Ranking{}
	s.CurrentRound.CompletionStatus["C"] = true

	assert.Equal(t, "A", Picker(s))
	assert.True(t, HasVoted(s, "B"))
	assert.False(t, HasVoted(s, "A"))
	assert.Equal(t, []string{"A", "C"}, PendingVoters(s))
	assert.Equal(t, []string{"A", "B"}, PendingCompletion(s))
	assert.False(t, AllCompleted(s))
	assert.True(t, IsMember(s, "C"))
	assert.False(t, IsMember(s, "c"))

	s.CurrentPickerIndex = 7
	assert.Equal(t, "", Picker(s))
}

func TestActivityVerb(t *testing.T) {
	assert.Equal(t, "read", ActivityVerb("Book"))
	assert.Equal(t, "read", ActivityVerb("Sci-Fi Books"))
	assert.Equal(t, "enjoy", ActivityVerb("Movie"))
	assert.Equal(t, "enjoy", ActivityVerb(""))
}
