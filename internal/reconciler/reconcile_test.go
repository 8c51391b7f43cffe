package reconciler

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"tradedesk/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTrade(id int64, symbol string, price float64) domain.Trade {
	return domain.Trade{
		ID:        id,
		Symbol:    symbol,
		UnitPrice: decimal.NewFromFloat(price),
		RiskLevel: "Medium",
		Sector:    "Technology",
	}
}

func requireWithinBalance(t *testing.T, trades []domain.Trade, result *domain.AllocationResult) {
	t.Helper()
	prices := map[int64]decimal.Decimal{}
	for _, tr := range trades {
		prices[tr.ID] = tr.UnitPrice
	}
	total := decimal.Zero
	for _, a := range result.Allocations {
		require.GreaterOrEqual(t, a.Quantity, int64(0))
		total = total.Add(prices[a.TradeID].Mul(decimal.NewFromInt(a.Quantity)))
	}
	require.True(t, total.Equal(result.TotalCost), "reported cost %s, actual %s", result.TotalCost, total)
	require.True(
		t,
		total.LessThanOrEqual(result.Balance.Add(tolerance)),
		"cost %s over balance %s", total, result.Balance,
	)
}

func TestReconcile(t *testing.T) {
	t.Run("scales over budget suggestion", func(t *testing.T) {
		trades := []domain.Trade{
			newTrade(1, "AAPL", 100),
			newTrade(2, "MSFT", 50),
		}
		raw := `[{"id":1,"quantity":1,"explanation":"x"},{"id":2,"quantity":2,"explanation":"y"}]`

		result, err := Reconcile(trades, decimal.NewFromInt(120), raw)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(
			[]domain.Allocation{
				{TradeID: 1, Quantity: 0, Explanation: "x (scaled from 1)"},
				{TradeID: 2, Quantity: 2, Explanation: "y (scaled from 2)"},
			},
			result.Allocations,
		))
		require.True(t, result.Scaled)
		require.True(t, result.TotalCost.Equal(decimal.NewFromInt(100)))
		require.True(t, result.ScalingFactor.Equal(decimal.NewFromFloat(0.6)))
		require.True(t, result.RemainingBalance().Equal(decimal.NewFromInt(20)))
		requireWithinBalance(t, trades, result)
	})

	t.Run("accepts suggestion within budget unchanged", func(t *testing.T) {
		trades := []domain.Trade{
			newTrade(1, "AAPL", 175.5),
			newTrade(2, "NVDA", 485.2),
		}
		raw := `[{"id":2,"quantity":1,"explanation":"AI demand"},{"id":1,"quantity":2,"explanation":"earnings"}]`

		result, err := Reconcile(trades, decimal.NewFromInt(1000), raw)
		require.NoError(t, err)

		require.False(t, result.Scaled)
		require.Nil(t, result.ScalingFactor)
		require.Equal(t, "", cmp.Diff(
			[]domain.Allocation{
				{TradeID: 1, Quantity: 2, Explanation: "earnings"},
				{TradeID: 2, Quantity: 1, Explanation: "AI demand"},
			},
			result.Allocations,
		))
		require.True(t, result.TotalCost.Equal(decimal.NewFromFloat(836.2)))
		requireWithinBalance(t, trades, result)
	})

	t.Run("correlates entries without ids by position", func(t *testing.T) {
		trades := []domain.Trade{
			newTrade(7, "AAPL", 10),
			newTrade(9, "TSLA", 20),
		}
		raw := `[{"quantity":3,"explanation":"first"},{"quantity":4,"explanation":"second"}]`

		result, err := Reconcile(trades, decimal.NewFromInt(1000), raw)
		require.NoError(t, err)

		require.Equal(t, map[int64]int64{7: 3, 9: 4}, result.Quantities())
		require.Equal(t, "first", result.ByTradeID()[7].Explanation)
		require.Equal(t, "second", result.ByTradeID()[9].Explanation)
	})

	t.Run("correlates object keys by position in written order", func(t *testing.T) {
		trades := []domain.Trade{
			newTrade(11, "MSFT", 10),
			newTrade(3, "AAPL", 10),
			newTrade(5, "NVDA", 10),
		}
		// keys are deliberately not in sorted order
		raw := `{"#1 MSFT": {"quantity": 1, "explanation": "cloud"}, "#2 AAPL": 2, "#3 NVDA": {"qty": "3"}}`

		result, err := Reconcile(trades, decimal.NewFromInt(1000), raw)
		require.NoError(t, err)

		require.Equal(t, map[int64]int64{11: 1, 3: 2, 5: 3}, result.Quantities())
		require.Equal(t, "cloud", result.ByTradeID()[11].Explanation)
	})

	t.Run("strips fences and surrounding prose", func(t *testing.T) {
		trades := []domain.Trade{newTrade(1, "AAPL", 100)}
		raw := "Sure! Here is the allocation:\n```json\n[{\"id\": 1, \"quantity\": 2, \"explanation\": \"fits [budget]\"}]\n```\nLet me know."

		result, err := Reconcile(trades, decimal.NewFromInt(500), raw)
		require.NoError(t, err)
		require.Equal(t, map[int64]int64{1: 2}, result.Quantities())
		require.Equal(t, "fits [budget]", result.Allocations[0].Explanation)
	})

	t.Run("accepts string ids and integral floats", func(t *testing.T) {
		trades := []domain.Trade{newTrade(4, "AAPL", 10)}
		raw := `[{"tradeId":"4","quantity":2.0,"reason":"ok"}]`

		result, err := Reconcile(trades, decimal.NewFromInt(100), raw)
		require.NoError(t, err)
		require.Equal(t, domain.Allocation{TradeID: 4, Quantity: 2, Explanation: "ok"}, result.Allocations[0])
	})

	t.Run("prose without json is unparsable", func(t *testing.T) {
		trades := []domain.Trade{newTrade(1, "AAPL", 100)}

		_, err := Reconcile(trades, decimal.NewFromInt(100), "I cannot help with that.")
		require.ErrorIs(t, err, ErrUnparsableResponse)
	})

	t.Run("long run of unmatched brackets fails fast", func(t *testing.T) {
		trades := []domain.Trade{newTrade(1, "AAPL", 100)}

		start := time.Now()
		_, err := Reconcile(trades, decimal.NewFromInt(10), strings.Repeat("[", 200_000))
		require.ErrorIs(t, err, ErrUnparsableResponse)
		require.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("malformed array is unparsable", func(t *testing.T) {
		trades := []domain.Trade{newTrade(1, "AAPL", 100)}

		_, err := Reconcile(trades, decimal.NewFromInt(100), `[{"id": 1, "quantity": 2,}]`)
		require.ErrorIs(t, err, ErrUnparsableResponse)
	})

	t.Run("all entries invalid", func(t *testing.T) {
		trades := []domain.Trade{newTrade(1, "AAPL", 100)}

		_, err := Reconcile(trades, decimal.NewFromInt(100), `[{"id":1,"quantity":-3,"explanation":"bad"}]`)
		require.ErrorIs(t, err, ErrNoValidSuggestions)
	})

	t.Run("drops invalid entries individually", func(t *testing.T) {
		trades := []domain.Trade{
			newTrade(1, "AAPL", 10),
			newTrade(2, "MSFT", 10),
			newTrade(3, "NVDA", 10),
		}
		raw := `[
			{"id": 1, "quantity": 1.5, "explanation": "fractional"},
			{"id": 42, "quantity": 1, "explanation": "unknown"},
			{"id": 2, "quantity": 2, "explanation": "good"},
			{"id": 2, "quantity": 5, "explanation": "duplicate"},
			{"id": 3, "explanation": "missing quantity"},
			"lots"
		]`

		result, err := Reconcile(trades, decimal.NewFromInt(100), raw)
		require.NoError(t, err)

		require.Equal(t, map[int64]int64{2: 2}, result.Quantities())
		require.Len(t, result.Rejected, 5)
		positions := []int{}
		for _, r := range result.Rejected {
			positions = append(positions, r.Position)
		}
		require.Equal(t, []int{0, 1, 3, 4, 5}, positions)
		require.Contains(t, result.Rejected[1].Reason, "unknown trade id 42")
	})

	t.Run("positional entries beyond trade list are rejected", func(t *testing.T) {
		trades := []domain.Trade{newTrade(1, "AAPL", 10)}

		result, err := Reconcile(trades, decimal.NewFromInt(100), `[1, 2]`)
		require.NoError(t, err)
		require.Equal(t, map[int64]int64{1: 1}, result.Quantities())
		require.Len(t, result.Rejected, 1)
	})

	t.Run("zero balance scales everything to zero", func(t *testing.T) {
		trades := []domain.Trade{
			newTrade(1, "AAPL", 10),
			newTrade(2, "MSFT", 20),
		}

		result, err := Reconcile(trades, decimal.Zero, `[3, 4]`)
		require.NoError(t, err)
		require.Equal(t, map[int64]int64{1: 0, 2: 0}, result.Quantities())
		require.True(t, result.TotalCost.IsZero())
	})

	t.Run("last entry absorbs rounding slack", func(t *testing.T) {
		trades := []domain.Trade{
			newTrade(1, "AAPL", 30),
			newTrade(2, "MSFT", 30),
			newTrade(3, "NVDA", 10),
		}
		// total 30*3 + 30*3 + 10*10 = 280, balance 200 -> factor ~0.714
		result, err := Reconcile(trades, decimal.NewFromInt(200), `[3, 3, 10]`)
		require.NoError(t, err)

		// floor(3*200/280) = 2 for both, 200 - 120 = 80 left, 8 shares of NVDA
		require.Equal(t, map[int64]int64{1: 2, 2: 2, 3: 8}, result.Quantities())
		require.True(t, result.TotalCost.Equal(decimal.NewFromInt(200)))
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := Reconcile(nil, decimal.NewFromInt(1), `[1]`)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = Reconcile([]domain.Trade{newTrade(1, "AAPL", 0)}, decimal.NewFromInt(1), `[1]`)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = Reconcile([]domain.Trade{newTrade(1, "AAPL", 1)}, decimal.NewFromInt(-1), `[1]`)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = Reconcile([]domain.Trade{newTrade(1, "AAPL", 1), newTrade(1, "MSFT", 2)}, decimal.NewFromInt(1), `[1]`)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestReconcile_idempotent(t *testing.T) {
	trades := []domain.Trade{
		newTrade(1, "AAPL", 175.5),
		newTrade(2, "TSLA", 245.8),
		newTrade(3, "NVDA", 485.2),
		newTrade(4, "MSFT", 380.15),
	}
	raw := `[{"id":1,"quantity":10,"explanation":"a"},{"id":2,"quantity":7,"explanation":"b"},{"id":3,"quantity":4,"explanation":"c"},{"id":4,"quantity":3,"explanation":"d"}]`

	first, err := Reconcile(trades, decimal.NewFromInt(5000), raw)
	require.NoError(t, err)
	require.True(t, first.Scaled)

	reserialized, err := first.SuggestionJSON()
	require.NoError(t, err)

	second, err := Reconcile(trades, decimal.NewFromInt(5000), reserialized)
	require.NoError(t, err)
	require.False(t, second.Scaled)
	require.Equal(t, "", cmp.Diff(first.Allocations, second.Allocations))
	require.True(t, first.TotalCost.Equal(second.TotalCost))
}

func TestReconcile_neverExceedsBalance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		numTrades := 1 + rng.Intn(8)
		trades := []domain.Trade{}
		entries := []string{}
		for j := 0; j < numTrades; j++ {
			// prices with cents so costs don't divide evenly
			price := decimal.New(int64(1+rng.Intn(50000)), -2)
			trades = append(trades, domain.Trade{
				ID:        int64(100 + j),
				Symbol:    fmt.Sprintf("SYM%d", j),
				UnitPrice: price,
			})
			entries = append(entries, fmt.Sprintf(`{"id": %d, "quantity": %d, "explanation": "e"}`, 100+j, rng.Intn(40)))
		}
		rng.Shuffle(len(entries), func(a, b int) { entries[a], entries[b] = entries[b], entries[a] })
		balance := decimal.New(int64(rng.Intn(2000000)), -2)
		raw := "[" + strings.Join(entries, ",") + "]"

		result, err := Reconcile(trades, balance, raw)
		require.NoError(t, err, raw)
		requireWithinBalance(t, trades, result)

		if result.Scaled {
			original := map[int64]int64{}
			suggested, err := Reconcile(trades, decimal.New(1, 12), raw)
			require.NoError(t, err)
			for _, a := range suggested.Allocations {
				original[a.TradeID] = a.Quantity
			}
			for _, a := range result.Allocations {
				require.LessOrEqual(t, a.Quantity, original[a.TradeID])
			}
		}
	}
}

func TestValidateManualAllocation(t *testing.T) {
	trades := []domain.Trade{
		newTrade(1, "AAPL", 100),
		newTrade(2, "MSFT", 50),
	}

	t.Run("within balance", func(t *testing.T) {
		result, err := ValidateManualAllocation(trades, decimal.NewFromInt(200), map[int64]int64{2: 2, 1: 1})
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(
			[]domain.Allocation{
				{TradeID: 1, Quantity: 1},
				{TradeID: 2, Quantity: 2},
			},
			result.Allocations,
			cmpopts.EquateEmpty(),
		))
		require.True(t, result.TotalCost.Equal(decimal.NewFromInt(200)))
		require.False(t, result.Scaled)
	})

	t.Run("over balance is rejected without scaling", func(t *testing.T) {
		result, err := ValidateManualAllocation(trades, decimal.NewFromInt(120), map[int64]int64{1: 1, 2: 2})
		require.ErrorIs(t, err, ErrBalanceExceeded)
		require.Nil(t, result)
	})

	t.Run("unknown trade", func(t *testing.T) {
		_, err := ValidateManualAllocation(trades, decimal.NewFromInt(120), map[int64]int64{3: 1})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := ValidateManualAllocation(trades, decimal.NewFromInt(120), map[int64]int64{1: -1})
		require.ErrorIs(t, err, ErrInvalidInput)
		require.False(t, errors.Is(err, ErrBalanceExceeded))
	})
}
