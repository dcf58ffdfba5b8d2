package view

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
)

// Renderer draws sessions for a terminal using the club's theme colours.
type Renderer struct {
	title   lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	muted   lipgloss.Style
	box     lipgloss.Style
}

func NewRenderer(theme config.Theme) *Renderer {
	return &Renderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.PrimaryColor)),
		label:   lipgloss.NewStyle().Bold(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SuccessColor)),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.WarningColor)),
		danger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.DangerColor)),
		muted:   lipgloss.NewStyle().Faint(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.PrimaryColor)).
			Padding(0, 1),
	}
}

// Render draws the view for the session's current phase.
func (r *Renderer) Render(s *Session) string {
	state := s.State()
	if state == nil {
		return r.muted.Render("No club state loaded yet.")
	}

	var body string
	switch s.Phase() {
	case club.PhaseSuggestion:
		body = r.suggestionView(s)
	case club.PhaseVoting:
		body = r.votingView(s)
	case club.PhaseReading:
		body = r.readingView(s)
	default:
		body = r.unknownView()
	}
	return r.box.Render(lipgloss.JoinVertical(lipgloss.Left, r.header(state), "", body))
}

// Banner draws a command failure.
func (r *Renderer) Banner(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return r.warning.Render(Describe(err))
	}
	return r.danger.Render(Describe(err))
}

func (r *Renderer) header(state *club.ClubState) string {
	picker := club.Picker(state)
	if picker == "" {
		picker = "-"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		r.title.Render(state.ClubName),
		fmt.Sprintf("%s %s", r.label.Render("Members:"), strings.Join(state.Members, ", ")),
		fmt.Sprintf("%s %s", r.label.Render("Picker:"), picker),
	)
}

func (r *Renderer) suggestionView(s *Session) string {
	state := s.State()
	n := s.Rules().SuggestionCount
	lines := []string{
		r.label.Render("Suggestions"),
		fmt.Sprintf("Waiting for %s to suggest %d %s.", club.Picker(state), n, itemNoun(state.ClubType, n)),
	}
	if len(s.Drafts) > 0 {
		lines = append(lines, "", r.muted.Render("Your last drafts:"))
		for i, item := range s.Drafts {
			lines = append(lines, r.muted.Render(fmt.Sprintf("  %d. %s", i+1, formatItem(item))))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) votingView(s *Session) string {
	state := s.State()
	round := state.CurrentRound

	lines := []string{r.label.Render("Voting")}
	for i, item := range round.Suggestions {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, formatItem(item)))
	}

	lines = append(lines, "", fmt.Sprintf("%d of %d ballots in.", len(round.Votes), len(state.Members)))
	if pending := club.PendingVoters(state); len(pending) > 0 {
		lines = append(lines, r.warning.Render("Waiting for: "+strings.Join(pending, ", ")))
	}

	lines = append(lines, "", r.label.Render("Live scores"))
	for i, score := range s.LiveScores() {
		lines = append(lines, fmt.Sprintf("  %d. %-30s %s", i+1, score.Item.Title, plural(score.Points, "point", "points")))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) readingView(s *Session) string {
	state := s.State()
	round := state.CurrentRound
	verb := club.ActivityVerb(state.ClubType)

	lines := []string{
		r.label.Render(fmt.Sprintf("Now %sing", verb)),
		r.success.Render(formatItem(*round.WinningItem)),
		"",
	}
	for _, m := range state.Members {
		if round.CompletionStatus[m] {
			lines = append(lines, r.success.Render("  ✓ "+m))
		} else {
			lines = append(lines, r.muted.Render("  ○ "+m))
		}
	}

	lines = append(lines, "")
	switch {
	case round.IsDiscussed:
		lines = append(lines, r.success.Render("Discussed. Ready for the next round."))
	case club.AllCompleted(state):
		lines = append(lines, r.success.Render("Everyone has finished. Ready to discuss."))
	default:
		lines = append(lines, fmt.Sprintf("%d of %d finished.", len(state.Members)-len(club.PendingCompletion(state)), len(state.Members)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) unknownView() string {
	return r.muted.Render("The club is in an unexpected state. Try refreshing.")
}

// History lists past rounds, newest first.
func (r *Renderer) History(clubType string, history []club.HistoryEntry) string {
	if len(history) == 0 {
		return r.muted.Render(fmt.Sprintf("No %s have been completed yet.", itemNoun(clubType, 2)))
	}
	lines := []string{r.title.Render("Past picks")}
	for _, entry := range slices.Backward(history) {
		title := "?"
		if entry.WinningItem != nil {
			title = formatItem(*entry.WinningItem)
		}
		lines = append(lines, fmt.Sprintf("%s  %s %s", r.muted.Render(entry.DateCompleted), title, r.muted.Render("(picked by "+entry.Picker+")")))
	}
	return strings.Join(lines, "\n")
}

// Stats lists the server's event counters in key order.
func (r *Renderer) Stats(counters map[string]int) string {
	keys := make([]string, 0, len(counters))
	for k := range counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{r.title.Render("Round events")}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %-24s %d", k, counters[k]))
	}
	return strings.Join(lines, "\n")
}

func formatItem(item club.Item) string {
	return fmt.Sprintf("%s by %s", item.Title, item.Author)
}

// itemNoun names the club's items, e.g. "book" or "movies".
func itemNoun(clubType string, n int) string {
	noun := strings.ToLower(strings.TrimSpace(clubType))
	if noun == "" {
		noun = "item"
	}
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
