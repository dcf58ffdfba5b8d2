package club

// SuggestRequest is the body of POST /api/suggest.
type SuggestRequest struct {
	Suggestions []Item `json:"suggestions"`
}

// VoteRequest is the body of POST /api/vote.
type VoteRequest struct {
	Member   string  `json:"member"`
	Rankings Ranking `json:"rankings"`
}

// CompletionRequest is the body of POST /api/completion-status.
type CompletionRequest struct {
	Member string `json:"member"`
}
