// Package reconciler turns untrusted allocation suggestions into
// allocations that never spend more than the available balance.
//
// Everything here is a pure function of its inputs and safe to call
// concurrently.
package reconciler

import (
	"fmt"
	"sort"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// Reconcile parses rawSuggestion, correlates its entries with trades
// and returns an allocation whose total cost fits within balance.
// Over-budget suggestions are scaled down proportionally; the last
// entry in trade order absorbs the rounding slack.
func Reconcile(trades []domain.Trade, balance decimal.Decimal, rawSuggestion string) (*domain.AllocationResult, error) {
	index, err := newTradeIndex(trades, balance)
	if err != nil {
		return nil, err
	}

	literal, err := locateLiteral(cleanSuggestion(rawSuggestion))
	if err != nil {
		return nil, err
	}

	parsed, err := parseSuggestion(literal)
	if err != nil {
		return nil, err
	}

	candidates, rejected := index.correlate(parsed)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: all %d entries rejected", ErrNoValidSuggestions, len(rejected))
	}

	return allocate(index, balance, candidates, rejected)
}

type allocationCandidate struct {
	tradeID     int64
	quantity    int64
	explanation string

	// index into the trade list, used for ordering
	tradePosition int
}

type tradeIndex struct {
	trades     []domain.Trade
	positionOf map[int64]int
}

func newTradeIndex(trades []domain.Trade, balance decimal.Decimal) (*tradeIndex, error) {
	if len(trades) == 0 {
		return nil, fmt.Errorf("%w: no trades", ErrInvalidInput)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s is negative", ErrInvalidInput, balance.String())
	}

	index := &tradeIndex{
		trades:     trades,
		positionOf: map[int64]int{},
	}
	for i, t := range trades {
		if !t.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: trade %d has unit price %s", ErrInvalidInput, t.ID, t.UnitPrice.String())
		}
		if _, ok := index.positionOf[t.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate trade id %d", ErrInvalidInput, t.ID)
		}
		index.positionOf[t.ID] = i
	}

	return index, nil
}

// correlate maps entries to trades. Entries with an explicit id are
// looked up by id, everything else by position in the suggestion.
func (idx tradeIndex) correlate(parsed *parsedSuggestion) ([]allocationCandidate, []domain.RejectedSuggestion) {
	candidates := []allocationCandidate{}
	rejected := []domain.RejectedSuggestion{}
	seen := map[int]bool{}

	reject := func(entry suggestionEntry, format string, args ...interface{}) {
		reason := fmt.Sprintf(format, args...)
		if entry.label != "" {
			reason = fmt.Sprintf("%s: %s", entry.label, reason)
		}
		rejected = append(rejected, domain.RejectedSuggestion{
			Position: entry.position,
			Reason:   reason,
		})
	}

	for _, entry := range parsed.entries {
		fields, err := decodeEntry(entry.value)
		if err != nil {
			reject(entry, "%s", err.Error())
			continue
		}

		position := entry.position
		if fields.tradeID != nil {
			p, ok := idx.positionOf[*fields.tradeID]
			if !ok {
				reject(entry, "unknown trade id %d", *fields.tradeID)
				continue
			}
			position = p
		} else if position >= len(idx.trades) {
			reject(entry, "no trade at position %d", position+1)
			continue
		}

		if seen[position] {
			reject(entry, "duplicate suggestion for trade %d", idx.trades[position].ID)
			continue
		}
		seen[position] = true

		candidates = append(candidates, allocationCandidate{
			tradeID:       idx.trades[position].ID,
			quantity:      fields.quantity,
			explanation:   fields.explanation,
			tradePosition: position,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].tradePosition < candidates[j].tradePosition
	})

	return candidates, rejected
}
