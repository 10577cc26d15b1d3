package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roomctl",
	Short: "Trading room performance analytics",
	Long: `roomctl - trading room performance analytics

Computes win rate, profit factor, Sharpe ratio, drawdowns and the other
room performance metrics from closed trade records, and serves them over
a REST API.

Examples:
  go run ./cmd/roomctl api
  go run ./cmd/roomctl analytics momentum-room --from 2026-01-01
  go run ./cmd/roomctl warm --once`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
