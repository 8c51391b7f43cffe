package main

import (
	"context"
	"fmt"

	"tradedesk/cmd"
	"tradedesk/internal/logger"
	"tradedesk/internal/service"
	"tradedesk/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the configured oracle for an allocation and reconcile it",
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVar(&tradesPath, "trades", "", "Trades file (.json or .csv)")
	suggestCmd.Flags().StringVar(&balanceFlag, "balance", "", "Available balance")
	suggestCmd.Flags().StringVar(&outputFormat, "format", "json", "Output format (json|csv)")
	_ = suggestCmd.MarkFlagRequired("trades")
	_ = suggestCmd.MarkFlagRequired("balance")
}

func runSuggest(c *cobra.Command, args []string) error {
	trades, err := loadTrades(tradesPath)
	if err != nil {
		return err
	}
	balance, err := parseBalance(balanceFlag)
	if err != nil {
		return err
	}

	secrets, err := util.LoadSecrets()
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	oracle, err := cmd.NewOracleRepository(secrets.Oracle)
	if err != nil {
		return err
	}

	// suggesting for supplied trades never touches the db
	allocationService := service.NewAllocationService(nil, oracle, nil, nil, nil, nil, secrets.Allocation.MaxAttempts)

	ctx := logger.WithContext(context.Background(), zap.S().With("command", "suggest"))
	result, err := allocationService.SuggestFor(ctx, trades, balance)
	if err != nil {
		return err
	}

	return writeResult(c.OutOrStdout(), outputFormat, trades, *result)
}
