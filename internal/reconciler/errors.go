package reconciler

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnparsableResponse means no JSON array or object could be
	// located in the suggestion, or it failed to parse.
	ErrUnparsableResponse = errors.New("unparsable suggestion response")

	// ErrNoValidSuggestions means the suggestion parsed but every entry
	// was rejected.
	ErrNoValidSuggestions = errors.New("no valid suggestions")

	// ErrBalanceExceeded is returned for manual allocations that cost
	// more than the balance. From Reconcile it indicates a bug.
	ErrBalanceExceeded = errors.New("allocation exceeds balance")

	// ErrInvalidInput means the caller's own data was rejected before
	// any suggestion was looked at.
	ErrInvalidInput = errors.New("invalid allocation input")
)

// slack allowed when comparing a total cost against the balance
var tolerance = decimal.New(1, -6)

func withinBalance(cost, balance decimal.Decimal) bool {
	return cost.LessThanOrEqual(balance.Add(tolerance))
}
