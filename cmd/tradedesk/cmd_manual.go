package main

import (
	"fmt"
	"strconv"

	"tradedesk/internal/reconciler"

	"github.com/spf13/cobra"
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Check hand-entered quantities against a balance",
	RunE:  runManual,
}

var manualQuantities map[string]int64

func init() {
	rootCmd.AddCommand(manualCmd)

	manualCmd.Flags().StringVar(&tradesPath, "trades", "", "Trades file (.json or .csv)")
	manualCmd.Flags().StringVar(&balanceFlag, "balance", "", "Available balance")
	manualCmd.Flags().StringToInt64Var(&manualQuantities, "quantity", nil, "Quantity per trade id, e.g. 1=3")
	manualCmd.Flags().StringVar(&outputFormat, "format", "json", "Output format (json|csv)")
	_ = manualCmd.MarkFlagRequired("trades")
	_ = manualCmd.MarkFlagRequired("balance")
}

func parseQuantities(in map[string]int64) (map[int64]int64, error) {
	out := map[int64]int64{}
	for k, v := range in {
		tradeID, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid trade id %q", k)
		}
		out[tradeID] = v
	}
	return out, nil
}

func runManual(cmd *cobra.Command, args []string) error {
	trades, err := loadTrades(tradesPath)
	if err != nil {
		return err
	}
	balance, err := parseBalance(balanceFlag)
	if err != nil {
		return err
	}
	quantities, err := parseQuantities(manualQuantities)
	if err != nil {
		return err
	}

	result, err := reconciler.ValidateManualAllocation(trades, balance, quantities)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), outputFormat, trades, *result)
}
