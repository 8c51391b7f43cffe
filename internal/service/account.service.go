package service

import (
	"context"
	"fmt"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/domain"
	"tradedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	Resolve(ctx context.Context, externalID string) (*model.UserAccount, error)
	GetBalance(ctx context.Context, userAccountID uuid.UUID) (decimal.Decimal, error)
	SetBalance(ctx context.Context, userAccountID uuid.UUID, balance decimal.Decimal) (decimal.Decimal, error)
	Stats(ctx context.Context, userAccountID uuid.UUID) (*domain.UserStats, error)
}

type accountServiceHandler struct {
	UserAccountRepository repository.UserAccountRepository
	TradeRepository       repository.TradeRepository
}

func NewAccountService(userAccountRepository repository.UserAccountRepository, tradeRepository repository.TradeRepository) AccountService {
	return accountServiceHandler{
		UserAccountRepository: userAccountRepository,
		TradeRepository:       tradeRepository,
	}
}

func (h accountServiceHandler) Resolve(ctx context.Context, externalID string) (*model.UserAccount, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidRequest)
	}
	return h.UserAccountRepository.GetOrCreate(externalID)
}

func (h accountServiceHandler) GetBalance(ctx context.Context, userAccountID uuid.UUID) (decimal.Decimal, error) {
	account, err := h.UserAccountRepository.Get(nil, userAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	return balanceOf(*account), nil
}

func (h accountServiceHandler) SetBalance(ctx context.Context, userAccountID uuid.UUID, balance decimal.Decimal) (decimal.Decimal, error) {
	if balance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: balance must not be negative", ErrInvalidRequest)
	}
	account, err := h.UserAccountRepository.UpdateBalance(nil, userAccountID, balance)
	if err != nil {
		return decimal.Zero, err
	}
	return balanceOf(*account), nil
}

func (h accountServiceHandler) Stats(ctx context.Context, userAccountID uuid.UUID) (*domain.UserStats, error) {
	account, err := h.UserAccountRepository.Get(nil, userAccountID)
	if err != nil {
		return nil, err
	}
	trades, err := h.TradeRepository.List(nil, repository.TradeListFilter{
		UserAccountID: &userAccountID,
	})
	if err != nil {
		return nil, err
	}

	return computeStats(balanceOf(*account), trades), nil
}

func computeStats(balance decimal.Decimal, trades []model.Trade) *domain.UserStats {
	out := &domain.UserStats{
		Balance:        balance,
		AllocatedValue: decimal.Zero,
		CompletedValue: decimal.Zero,
	}

	completedValues := stats.Float64Data{}
	for _, t := range trades {
		value := decimal.NewFromFloat(t.UnitPrice).Mul(decimal.NewFromInt(t.Quantity))
		switch t.Status {
		case model.TradeStatus_Pending:
			out.PendingTrades++
		case model.TradeStatus_Allocated:
			out.AllocatedTrades++
			out.AllocatedValue = out.AllocatedValue.Add(value)
		case model.TradeStatus_Completed:
			out.CompletedTrades++
			out.CompletedValue = out.CompletedValue.Add(value)
			completedValues = append(completedValues, value.InexactFloat64())
		}
	}

	if len(completedValues) > 0 {
		if mean, err := stats.Mean(completedValues); err == nil {
			out.MeanCompletedValue = &mean
		}
	}
	// sample stdev is undefined for a single value
	if len(completedValues) > 1 {
		if stdev, err := stats.StandardDeviationSample(completedValues); err == nil {
			out.StdevCompletedValue = &stdev
		}
	}

	return out
}
