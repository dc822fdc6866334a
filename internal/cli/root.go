// Package cli implements the PulseFit command-line interface using Cobra.
// Each subcommand maps to one engine capability (complete, progress,
// leaderboard, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pulsefit",
	Short: "PulseFit progression engine",
	Long: `PulseFit turns completed workouts into XP, levels, streaks,
achievements and a weekly leaderboard. One binary, local SQLite storage.`,
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
