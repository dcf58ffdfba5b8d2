package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		count   int
		wantErr error
	}{
		{"valid", []Item{dune, hyperion, foundation}, 3, nil},
		{"surrounding whitespace is ignored", []Item{{"  Dune ", " Herbert"}, hyperion, foundation}, 3, nil},
		{"too few", []Item{dune, hyperion}, 3, ErrSuggestionCount},
		{"too many", []Item{dune, hyperion, foundation}, 2, ErrSuggestionCount},
		{"blank title", []Item{dune, {"   ", "Simmons"}, foundation}, 3, ErrIncompleteItem},
		{"blank author", []Item{dune, hyperion, {"Foundation", ""}}, 3, ErrIncompleteItem},
		{"duplicate title", []Item{dune, {"dune", "Someone"}, foundation}, 3, ErrDuplicateTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuggestions(tt.items, tt.count)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRanking(t *testing.T) {
	suggestions := []Item{dune, hyperion, foundation}
	points := []int{3, 2, 1}

	tests := []struct {
		name    string
		ranking Ranking
		wantErr bool
		msg     string
	}{
		{"full permutation", Ranking{"Dune": 1, "Hyperion": 2, "Foundation": 3}, false, ""},
		{"another permutation", Ranking{"Dune": 3, "Hyperion": 1, "Foundation": 2}, false, ""},
		{"rank used twice", Ranking{"Dune": 1, "Hyperion": 1, "Foundation": 3}, true, "rank 2 (2 points) is missing"},
		{"omission", Ranking{"Dune": 1, "Hyperion": 2}, true, "rank 3 (1 points) is missing"},
		{"zero counts as omission", Ranking{"Dune": 1, "Hyperion": 2, "Foundation": 0}, true, "rank 3"},
		{"out of range", Ranking{"Dune": 1, "Hyperion": 2, "Foundation": 4}, true, "out of range"},
		{"negative", Ranking{"Dune": -1, "Hyperion": 2, "Foundation": 3}, true, "out of range"},
		{"unknown title", Ranking{"Dune": 1, "Hyperion": 2, "Neuromancer": 3}, true, "not a suggestion"},
		{"empty", Ranking{}, true, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRanking(tt.ranking, suggestions, points)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidRanking)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	t.Run("duplicate rank reports both problems", func(t *testing.T) {
		err := ValidateRanking(Ranking{"Dune": 1, "Hyperion": 1, "Foundation": 3}, suggestions, points)
		assert.ErrorContains(t, err, "rank 1 (3 points) is used 2 times")
		assert.ErrorContains(t, err, "rank 2 (2 points) is missing")
	})

	t.Run("more suggestions than points allows unranked", func(t *testing.T) {
		five := append([]Item{}, suggestions...)
		five = append(five, Item{"Neuromancer", "Gibson"}, Item{"Solaris", "Lem"})
		err := ValidateRanking(Ranking{"Dune": 2, "Solaris": 1, "Hyperion": 3, "Foundation": 0}, five, points)
		assert.NoError(t, err)
	})

	t.Run("more points than suggestions is impossible", func(t *testing.T) {
		err := ValidateRanking(Ranking{"Dune": 1, "Hyperion": 2}, suggestions[:2], points)
		assert.ErrorIs(t, err, ErrInvalidRanking)
	})
}

func TestValidateState(t *testing.T) {
	valid := func() *ClubState {
		return &ClubState{
			ClubName:     "Sci-Fi Club",
			ClubType:     "Book",
			Members:      []string{"A", "B", "C"},
			CurrentRound: NewRound(),
		}
	}

	points := []int{3, 2, 1}

	assert.NoError(t, ValidateState(valid(), points))
	assert.ErrorIs(t, ValidateState(nil, points), ErrInvalidState)

	s := valid()
	s.Members = nil
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState)

	s = valid()
	s.Members = []string{"A", "A"}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState)

	s = valid()
	s.CurrentPickerIndex = 3
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState)

	s = valid()
	s.CurrentRound.Suggestions = []Item{dune}
	s.CurrentRound.IsVotingClosed = true
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "closed voting without a winner")

	s = valid()
	s.CurrentRound.Suggestions = []Item{dune}
	s.CurrentRound.IsVotingClosed = true
	s.CurrentRound.WinningItem = &dune
	s.CurrentRound.IsDiscussed = true
	s.CurrentRound.CompletionStatus = map[string]bool{"A": true}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "discussed before everyone completed")

	s = valid()
	s.CurrentRound.Suggestions = []Item{dune, hyperion, foundation}
	s.CurrentRound.Votes = map[string]Ranking{"A": {"Dune": 1, "Hyperion": 1}}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "ballot reusing a rank")
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidRanking)

	s.CurrentRound.Votes = map[string]Ranking{"A": {"Dune": 1, "Hyperion": 2, "Neuromancer": 3}}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "ballot naming a title that was not suggested")

	s.CurrentRound.Votes = map[string]Ranking{"Z": {"Dune": 1, "Hyperion": 2, "Foundation": 3}}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "ballot from a non-member")

	s.CurrentRound.Votes = map[string]Ranking{"A": {"Dune": 1, "Hyperion": 2, "Foundation": 3}}
	assert.NoError(t, ValidateState(s, points))

	s = valid()
	s.CurrentRound.IsVotingClosed = true
	s.CurrentRound.WinningItem = &Item{Title: "Ghost", Author: "Nobody"}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "closed round without suggestions")

	s.CurrentRound.Suggestions = []Item{dune, hyperion, foundation}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "winner outside the suggestions")

	s.CurrentRound.WinningItem = &hyperion
	s.CurrentRound.CompletionStatus = map[string]bool{"Z": true}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "completion entry for a non-member")

	s.CurrentRound.CompletionStatus = map[string]bool{"A": true, "B": false}
	assert.NoError(t, ValidateState(s, points))

	s = valid()
	s.CurrentRound.Suggestions = []Item{dune, hyperion, foundation}
	s.CurrentRound.CompletionStatus = map[string]bool{"A": true}
	assert.ErrorIs(t, ValidateState(s, points), ErrInvalidState, "completion while voting is open")
}
