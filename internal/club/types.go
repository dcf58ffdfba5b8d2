package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the club.
type store struct {
	db    *sql.DB
	rules Rules
	now   func() time.Time
	mu    sync.Mutex
}

// Item is a suggested thing to pick, e.g. a book.
type Item struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Ranking maps a suggestion title to the rank a member gave it (1 = best).
type Ranking map[string]int

// Round is the live, mutable part of the club state.
type Round struct {
	Suggestions      []Item             `json:"suggestions"`
	Votes            map[string]Ranking `json:"votes"`
	IsVotingClosed   bool               `json:"isVotingClosed"`
	WinningItem      *Item              `json:"winningItem"`
	CompletionStatus map[string]bool    `json:"completionStatus"`
	IsDiscussed      bool               `json:"isDiscussed"`
}

// HistoryEntry records a finished round. Entries are never modified once appended.
type HistoryEntry struct {
	ID            string `json:"id,omitempty"`
	WinningItem   *Item  `json:"winningItem"`
	Picker        string `json:"picker"`
	DateCompleted string `json:"dateCompleted"`
}

// ClubState is the full snapshot served by the API.
type ClubState struct {
	ClubName           string         `json:"clubName"`
	ClubType           string         `json:"clubType"`
	Members            []string       `json:"members"`
	CurrentPickerIndex int            `json:"currentPickerIndex"`
	CurrentRound       Round          `json:"currentRound"`
	History            []HistoryEntry `json:"history"`
}

// Rules are the round parameters that come from configuration.
type Rules struct {
	// SuggestionCount is the exact number of suggestions a picker submits.
	SuggestionCount int
	// Points holds the value awarded per rank; Points[0] is what rank 1 earns.
	Points []int
}

// DefaultRules mirrors the default club configuration.
func DefaultRules() Rules {
	return Rules{SuggestionCount: 3, Points: []int{3, 2, 1}}
}

// Score is one leaderboard line.
type Score struct {
	Item   Item `json:"item"`
	Points int  `json:"points"`
}

// DateLayout is the format of HistoryEntry.DateCompleted.
const DateLayout = "2006-01-02"
