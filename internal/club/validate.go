package club

import (
	"fmt"
	"slices"
	"strings"
)

// NormalizeItems trims surrounding whitespace from every title and author.
func NormalizeItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{
			Title:  strings.TrimSpace(it.Title),
			Author: strings.TrimSpace(it.Author),
		}
	}
	return out
}

// ValidateSuggestions checks a batch of suggestions against the expected
// count. Titles key the ballots, so they must be unique.
func ValidateSuggestions(items []Item, count int) error {
	if len(items) != count {
		return fmt.Errorf("%w: exactly %d suggestions are required, got %d", ErrSuggestionCount, count, len(items))
	}
	seen := make(map[string]bool, len(items))
	for i, it := range NormalizeItems(items) {
		if it.Title == "" || it.Author == "" {
			return fmt.Errorf("%w: suggestion %d is missing a title or author", ErrIncompleteItem, i+1)
		}
		key := strings.ToLower(it.Title)
		if seen[key] {
			return fmt.Errorf("%w: %q is suggested more than once", ErrDuplicateTitle, it.Title)
		}
		seen[key] = true
	}
	return nil
}

// ValidateRanking checks that a ballot uses every rank from 1 to len(points)
// exactly once across the suggestions. Suggestions may be left unranked (rank
// 0 or absent) only when there are more suggestions than point values.
func ValidateRanking(ranking Ranking, suggestions []Item, points []int) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: no point values are configured", ErrInvalidRanking)
	}
	if len(points) > len(suggestions) {
		return fmt.Errorf("%w: %d point values but only %d suggestions", ErrInvalidRanking, len(points), len(suggestions))
	}

	titles := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		titles[s.Title] = true
	}

	used := make(map[int]int, len(points))
	for title, rank := range ranking {
		if !titles[title] {
			return fmt.Errorf("%w: %q is not a suggestion in this round", ErrInvalidRanking, title)
		}
		if rank < 0 || rank > len(points) {
			return fmt.Errorf("%w: rank %d for %q is out of range", ErrInvalidRanking, rank, title)
		}
		if rank > 0 {
			used[rank]++
		}
	}

	var problems []string
	for rank := 1; rank <= len(points); rank++ {
		switch n := used[rank]; {
		case n == 0:
			problems = append(problems, fmt.Sprintf("rank %d (%d points) is missing", rank, points[rank-1]))
		case n > 1:
			problems = append(problems, fmt.Sprintf("rank %d (%d points) is used %d times", rank, points[rank-1], n))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: each point value (%s) must be used exactly once: %s",
			ErrInvalidRanking, joinInts(points), strings.Join(problems, "; "))
	}
	return nil
}

// ValidateState checks the structural invariants of a full snapshot, as
// required before it replaces the stored state. Ballots are checked against
// points.
func ValidateState(state *ClubState, points []int) error {
	if state == nil {
		return fmt.Errorf("%w: state is empty", ErrInvalidState)
	}
	if len(state.Members) == 0 {
		return fmt.Errorf("%w: a club needs at least one member", ErrInvalidState)
	}
	seen := make(map[string]bool, len(state.Members))
	for _, m := range state.Members {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("%w: member names cannot be blank", ErrInvalidState)
		}
		if seen[m] {
			return fmt.Errorf("%w: member %q is listed twice", ErrInvalidState, m)
		}
		seen[m] = true
	}
	if state.CurrentPickerIndex < 0 || state.CurrentPickerIndex >= len(state.Members) {
		return fmt.Errorf("%w: picker index %d is out of range", ErrInvalidState, state.CurrentPickerIndex)
	}

	round := state.CurrentRound
	if round.IsVotingClosed != (round.WinningItem != nil) {
		return fmt.Errorf("%w: a winning item must be set exactly when voting is closed", ErrInvalidState)
	}
	if round.IsVotingClosed && len(round.Suggestions) == 0 {
		return fmt.Errorf("%w: voting is closed on a round without suggestions", ErrInvalidState)
	}
	if round.WinningItem != nil && !slices.Contains(round.Suggestions, *round.WinningItem) {
		return fmt.Errorf("%w: winning item %q is not one of the suggestions", ErrInvalidState, round.WinningItem.Title)
	}
	if len(round.Votes) > 0 && len(round.Suggestions) == 0 {
		return fmt.Errorf("%w: ballots were cast on a round without suggestions", ErrInvalidState)
	}
	for member, ranking := range round.Votes {
		if !seen[member] {
			return fmt.Errorf("%w: ballot from non-member %q", ErrInvalidState, member)
		}
		if err := ValidateRanking(ranking, round.Suggestions, points); err != nil {
			return fmt.Errorf("%w: ballot from %s: %w", ErrInvalidState, member, err)
		}
	}
	for member, done := range round.CompletionStatus {
		if !seen[member] {
			return fmt.Errorf("%w: completion entry for non-member %q", ErrInvalidState, member)
		}
		if done && !round.IsVotingClosed {
			return fmt.Errorf("%w: %s completed before voting closed", ErrInvalidState, member)
		}
	}
	if round.IsDiscussed && !AllCompleted(state) {
		return fmt.Errorf("%w: round is discussed before every member completed", ErrInvalidState)
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
