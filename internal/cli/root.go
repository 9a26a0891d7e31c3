// Package cli implements the Ekima command-line interface using Cobra.
// Each subcommand maps to an engine capability (serve, profile,
// leaderboard, achievements, award).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ekima",
	Short: "Ekima — learning-platform gamification engine",
	Long: `Ekima is the gamification engine behind the learning platform:
XP and levels, achievements, streaks, rewards, and leaderboards.

Run 'ekima serve' to start the HTTP API consumed by the frontend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
