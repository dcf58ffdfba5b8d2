package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/metrics"
	"github.com/mauv0809/nextpick/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. With an empty token or channel the
// notifier still formats slash command responses but never posts.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}
	if s.api == nil || s.channelID == "" {
		log.Debug("Slack is not configured, skipping message")
		return "", "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendSuggestions(clubName, picker string, items []club.Item, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatSuggestions(clubName, picker, items), dryRun)
	return err
}

func (s *Notifier) SendVotingClosed(clubName string, winner club.Item, ballots int, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatVotingClosed(clubName, winner, ballots), dryRun)
	return err
}

func (s *Notifier) SendRoundDiscussed(clubName string, winner club.Item, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRoundDiscussed(clubName, winner), dryRun)
	return err
}

func (s *Notifier) SendRoundAdvanced(clubName string, archived club.HistoryEntry, nextPicker string, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRoundAdvanced(clubName, archived, nextPicker), dryRun)
	return err
}

// FormatScoresResponse formats the live leaderboard for a slash command response.
func (s *Notifier) FormatScoresResponse(state *club.ClubState, scores []club.Score) (any, error) {
	return s.formatScores(state, scores), nil
}

// FormatHistoryResponse formats past winners for a slash command response.
func (s *Notifier) FormatHistoryResponse(clubType string, history []club.HistoryEntry) (any, error) {
	return s.formatHistory(clubType, history), nil
}

func header(text string) slack.Block {
	return slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", text, true, false))
}

func section(kind, text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject(kind, text, kind == "plain_text", false), nil, nil)
}

// formatSuggestions announces the picker's suggestions and opens voting.
func (s *Notifier) formatSuggestions(clubName, picker string, items []club.Item) slack.Message {
	blocks := []slack.Block{
		header(fmt.Sprintf("📚 New suggestions for %s", clubName)),
	}

	lines := make([]string, 0, len(items))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. *%s* by %s", i+1, it.Title, it.Author))
	}
	blocks = append(blocks, section("mrkdwn", strings.Join(lines, "\n")))
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Picked by %s. Voting is open!", picker), true, false),
	))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatVotingClosed(clubName string, winner club.Item, ballots int) slack.Message {
	return slack.NewBlockMessage(
		header(fmt.Sprintf("🏆 %s has a winner!", clubName)),
		section("mrkdwn", fmt.Sprintf("*%s* by %s", winner.Title, winner.Author)),
		slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("Voting closed with %d %s.", ballots, plural(ballots, "ballot", "ballots")), true, false),
		),
	)
}

func (s *Notifier) formatRoundDiscussed(clubName string, winner club.Item) slack.Message {
	text := fmt.Sprintf("💬 %s discussed *%s*. The next picker is up!", clubName, winner.Title)
	return slack.NewBlockMessage(section("mrkdwn", text))
}

func (s *Notifier) formatRoundAdvanced(clubName string, archived club.HistoryEntry, nextPicker string) slack.Message {
	blocks := []slack.Block{
		header(fmt.Sprintf("🚀 New round for %s", clubName)),
		section("mrkdwn", fmt.Sprintf("It's *%s*'s turn to suggest.", nextPicker)),
	}
	if archived.WinningItem != nil {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text",
				fmt.Sprintf("Last round: %s by %s, picked by %s.", archived.WinningItem.Title, archived.WinningItem.Author, archived.Picker),
				true, false),
		))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatScores creates a Slack message with the live scores of the current round.
func (s *Notifier) formatScores(state *club.ClubState, scores []club.Score) slack.Message {
	blocks := []slack.Block{header("🗳️ Live Scores")}

	if len(scores) == 0 {
		blocks = append(blocks, section("plain_text", "No suggestions yet this round."))
		return slack.NewBlockMessage(blocks...)
	}

	for i, sc := range scores {
		var medal string
		switch i {
		case 0:
			medal = "🥇 "
		case 1:
			medal = "🥈 "
		case 2:
			medal = "🥉 "
		}
		text := fmt.Sprintf("%d. %s*%s* by %s\n> %d %s", i+1, medal, sc.Item.Title, sc.Item.Author, sc.Points, plural(sc.Points, "point", "points"))
		blocks = append(blocks, section("mrkdwn", text))
	}

	var status string
	if state.CurrentRound.IsVotingClosed {
		status = "Voting is closed."
	} else if pending := club.PendingVoters(state); len(pending) > 0 {
		status = "Waiting for votes from " + strings.Join(pending, ", ") + "."
	} else {
		status = "Everyone has voted."
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", status, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatHistory creates a Slack message listing past winners, newest first.
func (s *Notifier) formatHistory(clubType string, history []club.HistoryEntry) slack.Message {
	blocks := []slack.Block{header("📖 Past Picks")}

	if len(history) == 0 {
		text := fmt.Sprintf("No %s have been completed yet.", strings.ToLower(clubType))
		blocks = append(blocks, section("plain_text", text))
		return slack.NewBlockMessage(blocks...)
	}

	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		title := "(no winner)"
		if entry.WinningItem != nil {
			title = fmt.Sprintf("*%s* by %s", entry.WinningItem.Title, entry.WinningItem.Author)
		}
		text := fmt.Sprintf("%s\n> Picked by %s, completed %s", title, entry.Picker, entry.DateCompleted)
		blocks = append(blocks, section("mrkdwn", text))
	}
	return slack.NewBlockMessage(blocks...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
