package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tradedesk/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type tradeRow struct {
	ID        int64   `csv:"id"`
	Symbol    string  `csv:"symbol"`
	Price     float64 `csv:"price"`
	RiskLevel string  `csv:"risk_level"`
	Sector    string  `csv:"sector"`
}

// loadTrades reads a JSON array of trades, or a CSV file when the path
// ends in .csv
func loadTrades(path string) ([]domain.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trades file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows := []tradeRow{}
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse trades csv: %w", err)
		}
		trades := make([]domain.Trade, 0, len(rows))
		for _, r := range rows {
			trades = append(trades, domain.Trade{
				ID:        r.ID,
				Symbol:    r.Symbol,
				UnitPrice: decimal.NewFromFloat(r.Price),
				RiskLevel: r.RiskLevel,
				Sector:    r.Sector,
			})
		}
		return trades, nil
	}

	trades := []domain.Trade{}
	if err := json.NewDecoder(f).Decode(&trades); err != nil {
		return nil, fmt.Errorf("failed to parse trades json: %w", err)
	}
	return trades, nil
}

// "-" reads stdin
func readSuggestion(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read suggestion: %w", err)
	}
	return string(b), nil
}

type allocationRow struct {
	TradeID     int64   `csv:"trade_id"`
	Symbol      string  `csv:"symbol"`
	Quantity    int64   `csv:"quantity"`
	UnitPrice   float64 `csv:"price"`
	Cost        float64 `csv:"cost"`
	Explanation string  `csv:"explanation"`
}

type resultOutput struct {
	Allocations      []allocationRow             `json:"allocations"`
	TotalCost        string                      `json:"totalCost"`
	Balance          string                      `json:"balance"`
	RemainingBalance string                      `json:"remainingBalance"`
	Scaled           bool                        `json:"scaled"`
	ScalingFactor    *string                     `json:"scalingFactor,omitempty"`
	Rejected         []domain.RejectedSuggestion `json:"rejected,omitempty"`
}

func allocationRows(trades []domain.Trade, result domain.AllocationResult) []allocationRow {
	byID := map[int64]domain.Trade{}
	for _, t := range trades {
		byID[t.ID] = t
	}

	rows := []allocationRow{}
	for _, a := range result.Allocations {
		t := byID[a.TradeID]
		rows = append(rows, allocationRow{
			TradeID:     a.TradeID,
			Symbol:      t.Symbol,
			Quantity:    a.Quantity,
			UnitPrice:   t.UnitPrice.InexactFloat64(),
			Cost:        t.Cost(a.Quantity).InexactFloat64(),
			Explanation: a.Explanation,
		})
	}
	return rows
}

func writeResult(w io.Writer, format string, trades []domain.Trade, result domain.AllocationResult) error {
	rows := allocationRows(trades, result)

	switch format {
	case "csv":
		return gocsv.Marshal(&rows, w)
	case "json":
		out := resultOutput{
			Allocations:      rows,
			TotalCost:        result.TotalCost.StringFixed(2),
			Balance:          result.Balance.StringFixed(2),
			RemainingBalance: result.RemainingBalance().StringFixed(2),
			Scaled:           result.Scaled,
			Rejected:         result.Rejected,
		}
		if result.ScalingFactor != nil {
			f := result.ScalingFactor.StringFixed(4)
			out.ScalingFactor = &f
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format %q, expected json or csv", format)
	}
}
