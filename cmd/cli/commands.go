package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/client"
	"github.com/mauv0809/nextpick/internal/view"
	"github.com/spf13/cobra"
)

var (
	closeWithoutAsking bool
	resetWithoutAsking bool
)

func init() {
	closeVotingCmd.Flags().BoolVarP(&closeWithoutAsking, "yes", "y", false, "Close without asking when some members have not voted")
	resetCmd.Flags().BoolVarP(&resetWithoutAsking, "yes", "y", false, "Reset without asking for confirmation")

	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(closeVotingCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(discussedCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the current round",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		return a.done("")
	},
}

var suggestCmd = &cobra.Command{
	Use:     "suggest \"Title|Author\"...",
	Short:   "Submit the picker's suggestions for this round",
	Example: `  nextpick suggest "Dune|Frank Herbert" "Hyperion|Dan Simmons" "Foundation|Isaac Asimov"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		items := make([]club.Item, 0, len(args))
		for _, arg := range args {
			title, author, _ := strings.Cut(arg, "|")
			items = append(items, club.Item{Title: title, Author: author})
		}
		msg, err := a.session.SubmitSuggestions(cmd.Context(), items)
		if err != nil {
			return a.fail(err)
		}
		return a.done(msg)
	},
}

var voteCmd = &cobra.Command{
	Use:     "vote <member> \"Title=rank\"...",
	Short:   "Cast a member's ranked ballot (rank 1 is the favourite)",
	Example: `  nextpick vote Alice "Dune=1" "Hyperion=2" "Foundation=3"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ranking, err := parseRanking(args[1:])
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		msg, err := a.session.SubmitVote(cmd.Context(), args[0], ranking)
		if err != nil {
			return a.fail(err)
		}
		return a.done(msg)
	},
}

func parseRanking(args []string) (club.Ranking, error) {
	ranking := club.Ranking{}
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i < 0 {
			return nil, fmt.Errorf("expected Title=rank, got %q", arg)
		}
		rank, err := strconv.Atoi(strings.TrimSpace(arg[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("rank for %q is not a number: %w", arg[:i], err)
		}
		ranking[strings.TrimSpace(arg[:i])] = rank
	}
	return ranking, nil
}

var closeVotingCmd = &cobra.Command{
	Use:   "close-voting",
	Short: "Close voting and let the server pick the winner",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		winner, err := a.session.CloseVoting(cmd.Context(), func(unvoted []string) bool {
			if closeWithoutAsking {
				return true
			}
			q := fmt.Sprintf("%s not voted yet. Close voting anyway?", strings.Join(unvoted, ", ")+hasOrHave(len(unvoted)))
			return confirm(os.Stdin, a.out, q)
		})
		if err != nil {
			return a.fail(err)
		}
		return a.done(fmt.Sprintf("Voting closed. The winner is %s by %s.", winner.Title, winner.Author))
	},
}

func hasOrHave(n int) string {
	if n == 1 {
		return " has"
	}
	return " have"
}

var completeCmd = &cobra.Command{
	Use:   "complete <member>",
	Short: "Mark that a member has finished the winning pick",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		msg, err := a.session.ToggleCompletion(cmd.Context(), args[0])
		if err != nil {
			return a.fail(err)
		}
		if msg == "" {
			msg = args[0] + " has already finished."
		}
		return a.done(msg)
	},
}

var discussedCmd = &cobra.Command{
	Use:   "discussed",
	Short: "Mark the current round as discussed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		msg, err := a.session.MarkDiscussed(cmd.Context())
		if err != nil {
			return a.fail(err)
		}
		return a.done(msg)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Archive the round and start the next one",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		msg, err := a.session.StartNextRound(cmd.Context())
		if err != nil {
			return a.fail(err)
		}
		return a.done(msg)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		state := a.session.State()
		fmt.Fprintln(a.out, a.renderer.History(state.ClubType, state.History))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many round events the server has processed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		counters, err := a.api.Stats(cmd.Context())
		if err != nil {
			return a.fail(err)
		}
		fmt.Fprintln(a.out, a.renderer.Stats(counters))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <state.json>",
	Short: "Replace the whole club state with the given document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read state file: %w", err)
		}
		var state club.ClubState
		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("failed to parse state file: %w", err)
		}
		if !resetWithoutAsking && !confirm(os.Stdin, os.Stdout, "This replaces the current round and the history. Continue?") {
			return nil
		}
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		msg, err := a.api.Reset(cmd.Context(), &state)
		if err != nil {
			return a.fail(err)
		}
		fmt.Fprintln(a.out, msg)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := baseURL()
		if err := checkHealth(cmd.Context(), client.NewClient(url), url, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, view.Describe(err))
			return &reportedError{err: err}
		}
		return nil
	},
}

func checkHealth(ctx context.Context, api client.ClubAPI, url string, out io.Writer) error {
	if err := api.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Server at %s is healthy.\n", url)
	return nil
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := baseURL() + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
