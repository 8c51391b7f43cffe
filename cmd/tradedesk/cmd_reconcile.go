package main

import (
	"fmt"

	"tradedesk/internal/reconciler"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a raw suggestion against trades and a balance",
	RunE:  runReconcile,
}

var (
	tradesPath     string
	balanceFlag    string
	suggestionPath string
	outputFormat   string
)

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(&tradesPath, "trades", "", "Trades file (.json or .csv)")
	reconcileCmd.Flags().StringVar(&balanceFlag, "balance", "", "Available balance")
	reconcileCmd.Flags().StringVar(&suggestionPath, "suggestion", "-", "File holding the raw suggestion, - for stdin")
	reconcileCmd.Flags().StringVar(&outputFormat, "format", "json", "Output format (json|csv)")
	_ = reconcileCmd.MarkFlagRequired("trades")
	_ = reconcileCmd.MarkFlagRequired("balance")
}

func parseBalance(s string) (decimal.Decimal, error) {
	balance, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	return balance, nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	trades, err := loadTrades(tradesPath)
	if err != nil {
		return err
	}
	balance, err := parseBalance(balanceFlag)
	if err != nil {
		return err
	}
	raw, err := readSuggestion(suggestionPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result, err := reconciler.Reconcile(trades, balance, raw)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), outputFormat, trades, *result)
}
