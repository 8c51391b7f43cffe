package service

import (
	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

func tradeFromModel(t model.Trade) domain.Trade {
	return domain.Trade{
		ID:        t.TradeID,
		Symbol:    t.Symbol,
		UnitPrice: decimal.NewFromFloat(t.UnitPrice),
		RiskLevel: t.RiskLevel,
		Sector:    t.Sector,
	}
}

func tradesFromModel(trades []model.Trade) []domain.Trade {
	out := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		out = append(out, tradeFromModel(t))
	}
	return out
}

func balanceOf(account model.UserAccount) decimal.Decimal {
	return decimal.NewFromFloat(account.Balance)
}
