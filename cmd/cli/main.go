package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	host       string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "nextpick",
	Short: "A CLI for the nextpick club server",
	Long: `A command-line front end for the nextpick club: see the current round,
suggest, vote, track who has finished and move on to the next pick.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "The host address of the server (defaults to api.baseUrl from the club config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.json", "Path to a local club config override")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		}
		os.Exit(1)
	}
}

func main() {
	Execute()
}
