package domain

import "github.com/shopspring/decimal"

type UserStats struct {
	Balance         decimal.Decimal `json:"balance"`
	PendingTrades   int             `json:"pendingTrades"`
	AllocatedTrades int             `json:"allocatedTrades"`
	CompletedTrades int             `json:"completedTrades"`
	// cost of trades currently allocated
	AllocatedValue decimal.Decimal `json:"allocatedValue"`
	CompletedValue decimal.Decimal `json:"completedValue"`
	// mean and sample stdev of completed trade values, nil with too few trades
	MeanCompletedValue  *float64 `json:"meanCompletedValue"`
	StdevCompletedValue *float64 `json:"stdevCompletedValue"`
}
