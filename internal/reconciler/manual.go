package reconciler

import (
	"fmt"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// ValidateManualAllocation checks quantities entered by hand against
// the balance. Unlike Reconcile it never rescales: anything over
// budget is rejected with ErrBalanceExceeded.
func ValidateManualAllocation(trades []domain.Trade, balance decimal.Decimal, quantities map[int64]int64) (*domain.AllocationResult, error) {
	index, err := newTradeIndex(trades, balance)
	if err != nil {
		return nil, err
	}
	if len(quantities) == 0 {
		return nil, fmt.Errorf("%w: no quantities", ErrInvalidInput)
	}

	for tradeID, quantity := range quantities {
		if _, ok := index.positionOf[tradeID]; !ok {
			return nil, fmt.Errorf("%w: unknown trade id %d", ErrInvalidInput, tradeID)
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%w: negative quantity %d for trade %d", ErrInvalidInput, quantity, tradeID)
		}
	}

	// walk trades rather than the map to keep trade order
	allocations := []domain.Allocation{}
	totalCost := decimal.Zero
	for _, t := range trades {
		quantity, ok := quantities[t.ID]
		if !ok {
			continue
		}
		totalCost = totalCost.Add(t.Cost(quantity))
		allocations = append(allocations, domain.Allocation{
			TradeID:  t.ID,
			Quantity: quantity,
		})
	}

	if !withinBalance(totalCost, balance) {
		return nil, fmt.Errorf(
			"%w: total cost %s is over balance %s",
			ErrBalanceExceeded,
			totalCost.StringFixed(2),
			balance.StringFixed(2),
		)
	}

	return &domain.AllocationResult{
		Allocations: allocations,
		TotalCost:   totalCost,
		Balance:     balance,
	}, nil
}
