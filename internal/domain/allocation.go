package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Allocation struct {
	TradeID     int64  `json:"id"`
	Quantity    int64  `json:"quantity"`
	Explanation string `json:"explanation"`
}

// RejectedSuggestion records a suggestion entry that was dropped
// while reconciling. Position is the entry's index in the suggestion.
type RejectedSuggestion struct {
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// AllocationResult covers a subset of the trades it was computed
// for. Trades without an entry are treated as zero quantity.
// Allocations are kept in trade order.
type AllocationResult struct {
	Allocations   []Allocation
	TotalCost     decimal.Decimal
	Balance       decimal.Decimal
	Scaled        bool
	ScalingFactor *decimal.Decimal
	Rejected      []RejectedSuggestion
}

func (r AllocationResult) ByTradeID() map[int64]Allocation {
	out := map[int64]Allocation{}
	for _, a := range r.Allocations {
		out[a.TradeID] = a
	}
	return out
}

func (r AllocationResult) Quantity(tradeID int64) int64 {
	for _, a := range r.Allocations {
		if a.TradeID == tradeID {
			return a.Quantity
		}
	}
	return 0
}

func (r AllocationResult) Quantities() map[int64]int64 {
	out := map[int64]int64{}
	for _, a := range r.Allocations {
		out[a.TradeID] = a.Quantity
	}
	return out
}

func (r AllocationResult) RemainingBalance() decimal.Decimal {
	return r.Balance.Sub(r.TotalCost)
}

// SuggestionJSON serializes the allocations in the same shape the
// oracle is asked to produce, so a result can be fed back in.
func (r AllocationResult) SuggestionJSON() (string, error) {
	allocations := r.Allocations
	if allocations == nil {
		allocations = []Allocation{}
	}
	bytes, err := json.Marshal(allocations)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
