package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "tradedesk",
	Short: "Reconcile allocation suggestions against a cash balance",
	Long: `tradedesk turns allocation suggestions into whole-share allocations
that never spend more than the available balance.

Examples:
  tradedesk reconcile --trades trades.json --balance 1000 --suggestion answer.txt
  tradedesk manual --trades trades.csv --balance 1000 --quantity 1=3 --quantity 2=1
  tradedesk suggest --trades trades.json --balance 1000 --format csv
  tradedesk serve`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		zap.S().Errorw("command failed", "error", err.Error())
		os.Exit(1)
	}
}
