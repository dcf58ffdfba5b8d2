package club

import "errors"

// Errors returned by state transitions. Callers compare with errors.Is; the
// HTTP layer maps them to status codes.
var (
	ErrWrongPhase          = errors.New("action is not allowed in the current phase")
	ErrSuggestionsExist    = errors.New("suggestions have already been made for this round")
	ErrSuggestionCount     = errors.New("wrong number of suggestions")
	ErrIncompleteItem      = errors.New("every suggestion needs a title and an author")
	ErrDuplicateTitle      = errors.New("suggestion titles must be unique")
	ErrUnknownMember       = errors.New("member is not part of the club")
	ErrAlreadyVoted        = errors.New("member has already voted")
	ErrVotingClosed        = errors.New("voting is closed for this round")
	ErrInvalidRanking      = errors.New("invalid ranking")
	ErrNotAllCompleted     = errors.New("not every member has completed the winning item")
	ErrAlreadyDiscussed    = errors.New("round has already been discussed")
	ErrNotDiscussed        = errors.New("the current round has not been marked as discussed yet")
	ErrInvalidState        = errors.New("invalid club state")
	ErrStateNotInitialized = errors.New("club state has not been initialized")
)

// IsValidation reports whether err was caused by bad input rather than by the
// round being in the wrong phase.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrSuggestionCount,
		ErrIncompleteItem,
		ErrDuplicateTitle,
		ErrUnknownMember,
		ErrInvalidRanking,
		ErrInvalidState,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
