package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel string
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio analytics: holdings, valuation, trends, risk and recommendations",
	Long: `Portfolio analytics engine.

Tracks stock holdings priced at the moment they are added, and derives
valuation, allocation, price trends, volatility risk and a diversification
recommendation from them.

Configuration is read from the environment (and a .env file when present).
Set DB_ENABLED=true to keep the portfolio in PostgreSQL between runs.

Examples:
  portfolio serve
  portfolio add AAPL 10
  portfolio remove AAPL
  portfolio report --add GOOGL=5
  portfolio migrate`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
}
