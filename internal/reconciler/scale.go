package reconciler

import (
	"fmt"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

func allocate(
	idx *tradeIndex,
	balance decimal.Decimal,
	candidates []allocationCandidate,
	rejected []domain.RejectedSuggestion,
) (*domain.AllocationResult, error) {
	totalCost := decimal.Zero
	for _, c := range candidates {
		totalCost = totalCost.Add(idx.trades[c.tradePosition].Cost(c.quantity))
	}

	result := &domain.AllocationResult{
		Balance:  balance,
		Rejected: rejected,
	}

	if withinBalance(totalCost, balance) {
		allocations := make([]domain.Allocation, 0, len(candidates))
		for _, c := range candidates {
			allocations = append(allocations, domain.Allocation{
				TradeID:     c.tradeID,
				Quantity:    c.quantity,
				Explanation: c.explanation,
			})
		}
		result.Allocations = allocations
		result.TotalCost = totalCost
		return result, nil
	}

	allocations := scaleToBalance(idx, balance, totalCost, candidates)

	scaledCost := decimal.Zero
	for i, a := range allocations {
		scaledCost = scaledCost.Add(idx.trades[candidates[i].tradePosition].Cost(a.Quantity))
	}
	if !withinBalance(scaledCost, balance) {
		return nil, fmt.Errorf(
			"%w: scaled cost %s is over balance %s",
			ErrBalanceExceeded,
			scaledCost.String(),
			balance.String(),
		)
	}

	scalingFactor := balance.Div(totalCost)
	result.Allocations = allocations
	result.TotalCost = scaledCost
	result.Scaled = true
	result.ScalingFactor = &scalingFactor

	return result, nil
}

// scaleToBalance floors every quantity but the last by balance/totalCost.
// The last one gets whatever whole shares the remaining balance buys,
// capped at what was suggested. totalCost must be positive.
func scaleToBalance(
	idx *tradeIndex,
	balance decimal.Decimal,
	totalCost decimal.Decimal,
	candidates []allocationCandidate,
) []domain.Allocation {
	remainingBalance := balance
	out := make([]domain.Allocation, 0, len(candidates))

	for i, c := range candidates {
		trade := idx.trades[c.tradePosition]

		var quantity int64
		if i == len(candidates)-1 {
			quantity = lastQuantity(remainingBalance, trade.UnitPrice, c.quantity)
		} else {
			// q * balance / totalCost rather than q * factor so exact
			// ratios don't lose a share to rounding in the division
			quotient, _ := decimal.NewFromInt(c.quantity).Mul(balance).QuoRem(totalCost, 0)
			quantity = quotient.IntPart()
			remainingBalance = remainingBalance.Sub(trade.Cost(quantity))
		}

		out = append(out, domain.Allocation{
			TradeID:     c.tradeID,
			Quantity:    quantity,
			Explanation: fmt.Sprintf("%s (scaled from %d)", c.explanation, c.quantity),
		})
	}

	return out
}

func lastQuantity(remainingBalance, unitPrice decimal.Decimal, original int64) int64 {
	if !remainingBalance.IsPositive() {
		return 0
	}
	quotient, _ := remainingBalance.QuoRem(unitPrice, 0)
	affordable := quotient.IntPart()
	if affordable > original {
		return original
	}
	return affordable
}
