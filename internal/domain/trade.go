package domain

import (
	"github.com/shopspring/decimal"
)

// Trade is a candidate purchase awaiting allocation. UnitPrice is the
// price of a single share.
type Trade struct {
	ID        int64           `json:"id"`
	Symbol    string          `json:"symbol"`
	UnitPrice decimal.Decimal `json:"price"`
	RiskLevel string          `json:"risk_level"`
	Sector    string          `json:"sector"`
}

func (t Trade) Cost(quantity int64) decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(quantity))
}
