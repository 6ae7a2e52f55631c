package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "boersenspiel",
	Short: "Börsenspiel leaderboard service",
	Long: `Börsenspiel leaderboard service

Fetches player portfolios, stock prices and CHF exchange rates from the
game backend, computes each player's performance and serves the ranked
leaderboard.

Examples:
  boersenspiel serve
  boersenspiel rank
  boersenspiel archive --year 2025`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}
