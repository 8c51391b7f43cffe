package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tradedesk/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const tradesJson = `[
  {"id": 1, "symbol": "AAPL", "price": 100, "risk_level": "Medium", "sector": "Technology"},
  {"id": 2, "symbol": "MSFT", "price": "50", "risk_level": "Low", "sector": "Technology"}
]`

func Test_loadTrades(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		trades, err := loadTrades(writeFile(t, "trades.json", tradesJson))
		require.NoError(t, err)
		require.Len(t, trades, 2)
		require.Equal(t, "MSFT", trades[1].Symbol)
		require.True(t, trades[1].UnitPrice.Equal(decimal.NewFromInt(50)))
	})

	t.Run("csv", func(t *testing.T) {
		trades, err := loadTrades(writeFile(t, "trades.csv", "id,symbol,price,risk_level,sector\n7,NVDA,485.2,High,Technology\n"))
		require.NoError(t, err)
		require.Equal(t, []domain.Trade{{
			ID:        7,
			Symbol:    "NVDA",
			UnitPrice: decimal.NewFromFloat(485.2),
			RiskLevel: "High",
			Sector:    "Technology",
		}}, trades)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadTrades(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}

func Test_readSuggestion(t *testing.T) {
	s, err := readSuggestion("-", strings.NewReader("[1,2]"))
	require.NoError(t, err)
	require.Equal(t, "[1,2]", s)
}

func TestReconcileCommand(t *testing.T) {
	trades := writeFile(t, "trades.json", tradesJson)
	suggestion := writeFile(t, "answer.txt", "Sure!\n[{\"id\":1,\"quantity\":1,\"explanation\":\"x\"},{\"id\":2,\"quantity\":2,\"explanation\":\"y\"}]")

	t.Run("json output", func(t *testing.T) {
		out := &bytes.Buffer{}
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"reconcile", "--trades", trades, "--balance", "120", "--suggestion", suggestion, "--format", "json"})
		require.NoError(t, rootCmd.Execute())

		var result resultOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.True(t, result.Scaled)
		require.Equal(t, "100.00", result.TotalCost)
		require.Equal(t, "20.00", result.RemainingBalance)
		require.Equal(t, "0.6000", *result.ScalingFactor)
		require.Len(t, result.Allocations, 2)
		require.Equal(t, int64(0), result.Allocations[0].Quantity)
		require.Equal(t, int64(2), result.Allocations[1].Quantity)
	})

	t.Run("csv output", func(t *testing.T) {
		out := &bytes.Buffer{}
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"reconcile", "--trades", trades, "--balance", "120", "--suggestion", suggestion, "--format", "csv"})
		require.NoError(t, rootCmd.Execute())

		rows := []allocationRow{}
		require.NoError(t, gocsv.UnmarshalString(out.String(), &rows))
		require.Len(t, rows, 2)
		require.Equal(t, "MSFT", rows[1].Symbol)
		require.Equal(t, 100.0, rows[1].Cost)
	})
}

func TestManualCommand(t *testing.T) {
	trades := writeFile(t, "trades.json", tradesJson)

	t.Run("within balance", func(t *testing.T) {
		out := &bytes.Buffer{}
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"manual", "--trades", trades, "--balance", "300", "--quantity", "1=2", "--quantity", "2=2", "--format", "json"})
		require.NoError(t, rootCmd.Execute())

		var result resultOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.False(t, result.Scaled)
		require.Equal(t, "300.00", result.TotalCost)
		require.Equal(t, "0.00", result.RemainingBalance)
	})

	t.Run("over balance", func(t *testing.T) {
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"manual", "--trades", trades, "--balance", "100", "--quantity", "1=2", "--format", "json"})
		require.Error(t, rootCmd.Execute())
	})
}

func Test_parseQuantities(t *testing.T) {
	out, err := parseQuantities(map[string]int64{"1": 3, "22": 0})
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{1: 3, 22: 0}, out)

	_, err = parseQuantities(map[string]int64{"AAPL": 3})
	require.Error(t, err)
}
