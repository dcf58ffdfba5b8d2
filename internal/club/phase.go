package club

// Phase is the view a client should show for a snapshot.
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseSuggestion
	PhaseVoting
	PhaseReading
)

func (p Phase) String() string {
	switch p {
	case PhaseSuggestion:
		return "suggestion"
	case PhaseVoting:
		return "voting"
	case PhaseReading:
		return "reading"
	default:
		return "unknown"
	}
}

// ResolvePhase picks the active phase. The checks run in order and the first
// match wins; a state that matches none of them is PhaseUnknown.
func ResolvePhase(state *ClubState) Phase {
	if state == nil {
		return PhaseUnknown
	}
	round := state.CurrentRound
	switch {
	case len(round.Suggestions) == 0:
		return PhaseSuggestion
	case !round.IsVotingClosed:
		return PhaseVoting
	case round.WinningItem != nil:
		return PhaseReading
	default:
		return PhaseUnknown
	}
}

// RoundStatus is the position of the current round in its lifecycle. Rounds
// only ever move forward through these values.
type RoundStatus int

const (
	StatusEmpty RoundStatus = iota
	StatusSuggested
	StatusVotingOpen
	StatusVotingClosed
	StatusAllCompleted
	StatusDiscussed
)

func (s RoundStatus) String() string {
	switch s {
	case StatusEmpty:
		return "EMPTY"
	case StatusSuggested:
		return "SUGGESTED"
	case StatusVotingOpen:
		return "VOTING_OPEN"
	case StatusVotingClosed:
		return "VOTING_CLOSED"
	case StatusAllCompleted:
		return "ALL_COMPLETED"
	case StatusDiscussed:
		return "DISCUSSED"
	default:
		return "INVALID"
	}
}

// StatusOf derives the lifecycle status of the current round.
func StatusOf(state *ClubState) RoundStatus {
	round := state.CurrentRound
	switch {
	case len(round.Suggestions) == 0:
		return StatusEmpty
	case !round.IsVotingClosed && len(round.Votes) == 0:
		return StatusSuggested
	case !round.IsVotingClosed:
		return StatusVotingOpen
	case round.IsDiscussed:
		return StatusDiscussed
	case AllCompleted(state):
		return StatusAllCompleted
	default:
		return StatusVotingClosed
	}
}

// Picker returns the member whose turn it is to suggest, or "" when the
// picker index does not point at a member.
func Picker(state *ClubState) string {
	if state.CurrentPickerIndex < 0 || state.CurrentPickerIndex >= len(state.Members) {
		return ""
	}
	return state.Members[state.CurrentPickerIndex]
}

// HasVoted reports whether member has a ballot in the current round.
func HasVoted(state *ClubState, member string) bool {
	_, ok := state.CurrentRound.Votes[member]
	return ok
}

// PendingVoters lists members without a ballot, in member order.
func PendingVoters(state *ClubState) []string {
	var pending []string
	for _, m := range state.Members {
		if !HasVoted(state, m) {
			pending = append(pending, m)
		}
	}
	return pending
}

// PendingCompletion lists members who have not completed the winning item.
func PendingCompletion(state *ClubState) []string {
	var pending []string
	for _, m := range state.Members {
		if !state.CurrentRound.CompletionStatus[m] {
			pending = append(pending, m)
		}
	}
	return pending
}

// AllCompleted reports whether every member has completed the winning item.
func AllCompleted(state *ClubState) bool {
	return len(PendingCompletion(state)) == 0
}

// IsMember reports whether name is in the member list.
func IsMember(state *ClubState, name string) bool {
	for _, m := range state.Members {
		if m == name {
			return true
		}
	}
	return false
}
