package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/db/models/postgres/public/table"
	"tradedesk/internal/logger"
	"tradedesk/internal/repository"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TradeService interface {
	List(ctx context.Context, userAccountID uuid.UUID, statuses []model.TradeStatus) ([]model.Trade, error)
	Add(ctx context.Context, input AddTradeInput) (*model.Trade, error)
	Update(ctx context.Context, userAccountID uuid.UUID, tradeID int64, input UpdateTradeInput) (*model.Trade, error)
	Delete(ctx context.Context, userAccountID uuid.UUID, tradeID int64) error
	CompleteAndCredit(ctx context.Context, userAccountID uuid.UUID, tradeID int64) (*CompleteAndCreditResult, error)
	RefreshPrices(ctx context.Context) (int, error)
}

type tradeServiceHandler struct {
	Db                    *sql.DB
	TradeRepository       repository.TradeRepository
	UserAccountRepository repository.UserAccountRepository
	PriceRepository       repository.PriceRepository
}

func NewTradeService(
	db *sql.DB,
	tradeRepository repository.TradeRepository,
	userAccountRepository repository.UserAccountRepository,
	priceRepository repository.PriceRepository,
) TradeService {
	return tradeServiceHandler{
		Db:                    db,
		TradeRepository:       tradeRepository,
		UserAccountRepository: userAccountRepository,
		PriceRepository:       priceRepository,
	}
}

func (h tradeServiceHandler) List(ctx context.Context, userAccountID uuid.UUID, statuses []model.TradeStatus) ([]model.Trade, error) {
	return h.TradeRepository.List(nil, repository.TradeListFilter{
		UserAccountID: &userAccountID,
		Statuses:      statuses,
	})
}

type AddTradeInput struct {
	UserAccountID uuid.UUID
	Symbol        string
	// looked up from the price source when nil
	UnitPrice   *decimal.Decimal
	RiskLevel   string
	Sector      string
	Explanation *string
}

func (h tradeServiceHandler) Add(ctx context.Context, input AddTradeInput) (*model.Trade, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidRequest)
	}

	var price decimal.Decimal
	if input.UnitPrice != nil {
		price = *input.UnitPrice
	} else {
		if h.PriceRepository == nil {
			return nil, fmt.Errorf("%w: price is required", ErrInvalidRequest)
		}
		prices, err := h.PriceRepository.GetLatestPrices(ctx, []string{symbol})
		if err != nil {
			return nil, fmt.Errorf("failed to price %s: %w", symbol, err)
		}
		price = prices[symbol]
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidRequest, price.String())
	}

	riskLevel := input.RiskLevel
	if riskLevel == "" {
		riskLevel = "Medium"
	}

	p, _ := price.Float64()
	return h.TradeRepository.Add(nil, model.Trade{
		UserAccountID: input.UserAccountID,
		Symbol:        symbol,
		UnitPrice:     p,
		RiskLevel:     riskLevel,
		Sector:        input.Sector,
		Status:        model.TradeStatus_Pending,
		Explanation:   input.Explanation,
	})
}

type UpdateTradeInput struct {
	UnitPrice   *decimal.Decimal
	Quantity    *int64
	RiskLevel   *string
	Sector      *string
	Explanation *string
}

func (h tradeServiceHandler) Update(ctx context.Context, userAccountID uuid.UUID, tradeID int64, input UpdateTradeInput) (*model.Trade, error) {
	tx, err := h.Db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := h.getOwned(tx, userAccountID, tradeID)
	if err != nil {
		return nil, err
	}

	update := *existing
	columns := postgres.ColumnList{}
	if input.UnitPrice != nil {
		if !input.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidRequest)
		}
		update.UnitPrice, _ = input.UnitPrice.Float64()
		columns = append(columns, table.Trade.UnitPrice)
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidRequest)
		}
		// quantities of allocated trades are tied to the debited balance
		if existing.Status != model.TradeStatus_Pending {
			return nil, fmt.Errorf("%w: trade %d is %s", ErrInvalidState, tradeID, existing.Status)
		}
		update.Quantity = *input.Quantity
		columns = append(columns, table.Trade.Quantity)
	}
	if input.RiskLevel != nil {
		update.RiskLevel = *input.RiskLevel
		columns = append(columns, table.Trade.RiskLevel)
	}
	if input.Sector != nil {
		update.Sector = *input.Sector
		columns = append(columns, table.Trade.Sector)
	}
	if input.Explanation != nil {
		update.Explanation = input.Explanation
		columns = append(columns, table.Trade.Explanation)
	}
	if len(columns) == 0 {
		return existing, nil
	}

	updated, err := h.TradeRepository.Update(tx, tradeID, update, columns)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trade update: %w", err)
	}
	return updated, nil
}

func (h tradeServiceHandler) Delete(ctx context.Context, userAccountID uuid.UUID, tradeID int64) error {
	return h.TradeRepository.Delete(nil, tradeID, userAccountID)
}

type CompleteAndCreditResult struct {
	Trade   model.Trade
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// CompleteAndCredit closes an allocated trade and credits its value
// back to the owner's balance.
func (h tradeServiceHandler) CompleteAndCredit(ctx context.Context, userAccountID uuid.UUID, tradeID int64) (*CompleteAndCreditResult, error) {
	log := logger.FromContext(ctx)

	tx, err := h.Db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	trade, err := h.getOwned(tx, userAccountID, tradeID)
	if err != nil {
		return nil, err
	}
	if trade.Status != model.TradeStatus_Allocated {
		return nil, fmt.Errorf("%w: trade %d is %s, expected allocated", ErrInvalidState, tradeID, trade.Status)
	}

	account, err := h.UserAccountRepository.Get(tx, userAccountID)
	if err != nil {
		return nil, err
	}

	credit := decimal.NewFromFloat(trade.UnitPrice).Mul(decimal.NewFromInt(trade.Quantity))
	newBalance := balanceOf(*account).Add(credit)

	completed, err := h.TradeRepository.Update(tx, tradeID, model.Trade{
		Status: model.TradeStatus_Completed,
	}, postgres.ColumnList{table.Trade.Status})
	if err != nil {
		return nil, err
	}
	_, err = h.UserAccountRepository.UpdateBalance(tx, userAccountID, newBalance)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trade completion: %w", err)
	}

	log.Infow("completed trade", "tradeID", tradeID, "credit", credit.String())

	return &CompleteAndCreditResult{
		Trade:   *completed,
		Credit:  credit,
		Balance: newBalance,
	}, nil
}

func (h tradeServiceHandler) getOwned(tx *sql.Tx, userAccountID uuid.UUID, tradeID int64) (*model.Trade, error) {
	trade, err := h.TradeRepository.Get(tx, tradeID)
	if err != nil {
		return nil, err
	}
	// someone else's trade looks the same as a missing one
	if trade.UserAccountID != userAccountID {
		return nil, fmt.Errorf("trade %d: %w", tradeID, repository.ErrNotFound)
	}
	return trade, nil
}

// RefreshPrices updates every pending trade to the latest quote and
// returns how many changed.
func (h tradeServiceHandler) RefreshPrices(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	if h.PriceRepository == nil {
		log.Warn("no price source configured, skipping price refresh")
		return 0, nil
	}

	pending, err := h.TradeRepository.List(nil, repository.TradeListFilter{
		Statuses: []model.TradeStatus{model.TradeStatus_Pending},
	})
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	symbolSet := map[string]bool{}
	symbols := []string{}
	for _, t := range pending {
		if !symbolSet[t.Symbol] {
			symbolSet[t.Symbol] = true
			symbols = append(symbols, t.Symbol)
		}
	}

	prices, err := h.PriceRepository.GetLatestPrices(ctx, symbols)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh prices: %w", err)
	}

	updated := 0
	for _, t := range pending {
		price, ok := prices[t.Symbol]
		if !ok || price.Equal(decimal.NewFromFloat(t.UnitPrice)) {
			continue
		}
		if err := h.TradeRepository.UpdatePrice(nil, t.TradeID, price); err != nil {
			return updated, err
		}
		updated++
	}

	log.Infof("refreshed prices for %d of %d pending trades", updated, len(pending))
	return updated, nil
}
