package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/db/models/postgres/public/table"
	"tradedesk/internal/domain"
	"tradedesk/internal/logger"
	"tradedesk/internal/reconciler"
	"tradedesk/internal/repository"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AllocationService interface {
	Suggest(ctx context.Context, userAccountID uuid.UUID) (*domain.AllocationResult, error)
	SuggestFor(ctx context.Context, trades []domain.Trade, balance decimal.Decimal) (*domain.AllocationResult, error)
	Confirm(ctx context.Context, input ConfirmAllocationInput) (*ConfirmAllocationResult, error)
}

type allocationServiceHandler struct {
	Db                    *sql.DB
	OracleRepository      repository.OracleRepository
	TradeRepository       repository.TradeRepository
	UserAccountRepository repository.UserAccountRepository
	AllocationRepository  repository.AllocationRepository
	// nil disables order submission
	BrokerRepository repository.BrokerRepository
	MaxAttempts      int
}

func NewAllocationService(
	db *sql.DB,
	oracleRepository repository.OracleRepository,
	tradeRepository repository.TradeRepository,
	userAccountRepository repository.UserAccountRepository,
	allocationRepository repository.AllocationRepository,
	brokerRepository repository.BrokerRepository,
	maxAttempts int,
) AllocationService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return allocationServiceHandler{
		Db:                    db,
		OracleRepository:      oracleRepository,
		TradeRepository:       tradeRepository,
		UserAccountRepository: userAccountRepository,
		AllocationRepository:  allocationRepository,
		BrokerRepository:      brokerRepository,
		MaxAttempts:           maxAttempts,
	}
}

func (h allocationServiceHandler) Suggest(ctx context.Context, userAccountID uuid.UUID) (*domain.AllocationResult, error) {
	account, err := h.UserAccountRepository.Get(nil, userAccountID)
	if err != nil {
		return nil, err
	}

	pending, err := h.TradeRepository.List(nil, repository.TradeListFilter{
		UserAccountID: &userAccountID,
		Statuses:      []model.TradeStatus{model.TradeStatus_Pending},
	})
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, fmt.Errorf("%w: no pending trades to allocate", ErrInvalidRequest)
	}

	return h.SuggestFor(ctx, tradesFromModel(pending), balanceOf(*account))
}

// SuggestFor asks the oracle for an allocation and reconciles it. An
// unusable answer is retried with the strict prompt; transport errors
// are returned as-is.
func (h allocationServiceHandler) SuggestFor(ctx context.Context, trades []domain.Trade, balance decimal.Decimal) (*domain.AllocationResult, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= h.MaxAttempts; attempt++ {
		raw, err := h.OracleRepository.Complete(ctx, repository.CompletionRequest{
			Prompt:  BuildAllocationPrompt(trades, balance, attempt > 1),
			Options: repository.AllocationOptions,
		})
		if err != nil {
			oracleAttempts.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to get allocation suggestion: %w", err)
		}

		result, err := reconciler.Reconcile(trades, balance, raw)
		if errors.Is(err, reconciler.ErrUnparsableResponse) || errors.Is(err, reconciler.ErrNoValidSuggestions) {
			oracleAttempts.WithLabelValues("unusable").Inc()
			log.Warnw("unusable allocation suggestion", "attempt", attempt, "error", err.Error())
			lastErr = err
			continue
		} else if err != nil {
			return nil, err
		}

		oracleAttempts.WithLabelValues("ok").Inc()
		allocationSuggestions.WithLabelValues(strconv.FormatBool(result.Scaled)).Inc()
		rejectedSuggestionEntries.Add(float64(len(result.Rejected)))
		if result.Scaled {
			log.Infow("scaled allocation suggestion to balance", "factor", result.ScalingFactor.String(), "balance", balance.String())
		}

		return result, nil
	}

	return nil, fmt.Errorf("no usable suggestion after %d attempts: %w", h.MaxAttempts, lastErr)
}

type ConfirmAllocationInput struct {
	UserAccountID uuid.UUID
	Quantities    map[int64]int64
	// optional, keyed by trade id
	Explanations map[int64]string
	Source       model.AllocationSource
}

type ConfirmAllocationResult struct {
	Result      *domain.AllocationResult
	Allocations []model.Allocation
	Balance     decimal.Decimal
}

// Confirm validates the quantities against the user's pending trades
// and balance, then allocates them and debits the balance in one tx.
func (h allocationServiceHandler) Confirm(ctx context.Context, input ConfirmAllocationInput) (*ConfirmAllocationResult, error) {
	log := logger.FromContext(ctx)
	if input.Source == "" {
		input.Source = model.AllocationSource_Manual
	}

	tx, err := h.Db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	account, err := h.UserAccountRepository.Get(tx, input.UserAccountID)
	if err != nil {
		return nil, err
	}
	pending, err := h.TradeRepository.List(tx, repository.TradeListFilter{
		UserAccountID: &input.UserAccountID,
		Statuses:      []model.TradeStatus{model.TradeStatus_Pending},
		ForUpdate:     true,
	})
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, fmt.Errorf("%w: no pending trades to allocate", ErrInvalidRequest)
	}

	result, err := reconciler.ValidateManualAllocation(tradesFromModel(pending), balanceOf(*account), input.Quantities)
	if err != nil {
		return nil, err
	}

	tradesByID := map[int64]model.Trade{}
	for _, t := range pending {
		tradesByID[t.TradeID] = t
	}

	rows := []model.Allocation{}
	for _, a := range result.Allocations {
		if a.Quantity == 0 {
			continue
		}
		var explanation *string
		if e, ok := input.Explanations[a.TradeID]; ok && e != "" {
			explanation = &e
		}

		_, err = h.TradeRepository.Update(tx, a.TradeID, model.Trade{
			Quantity:    a.Quantity,
			Status:      model.TradeStatus_Allocated,
			Explanation: explanation,
		}, postgres.ColumnList{
			table.Trade.Quantity,
			table.Trade.Status,
			table.Trade.Explanation,
		})
		if err != nil {
			return nil, err
		}

		rows = append(rows, model.Allocation{
			UserAccountID: input.UserAccountID,
			TradeID:       a.TradeID,
			Quantity:      a.Quantity,
			UnitPrice:     tradesByID[a.TradeID].UnitPrice,
			Explanation:   explanation,
			Source:        input.Source,
		})
	}

	inserted, err := h.AllocationRepository.AddMany(tx, rows)
	if err != nil {
		return nil, err
	}

	// cost may sit within tolerance above the balance
	newBalance := result.RemainingBalance()
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	_, err = h.UserAccountRepository.UpdateBalance(tx, input.UserAccountID, newBalance)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit allocation: %w", err)
	}

	allocationsConfirmed.WithLabelValues(input.Source.String()).Add(float64(len(inserted)))
	log.Infow("confirmed allocation", "allocations", len(inserted), "totalCost", result.TotalCost.String(), "balance", newBalance.String())

	if h.BrokerRepository != nil {
		h.submitOrders(ctx, inserted, tradesByID)
	}

	return &ConfirmAllocationResult{
		Result:      result,
		Allocations: inserted,
		Balance:     newBalance,
	}, nil
}

// order failures don't undo the allocation, they are only logged.
// Nothing is submitted while the market is closed.
func (h allocationServiceHandler) submitOrders(ctx context.Context, allocations []model.Allocation, trades map[int64]model.Trade) {
	log := logger.FromContext(ctx)
	if len(allocations) == 0 {
		return
	}

	open, err := h.BrokerRepository.IsMarketOpen()
	if err != nil {
		log.Errorw("failed to check market clock, skipping orders", "allocations", len(allocations), "error", err.Error())
		return
	}
	if !open {
		log.Infow("market closed, skipping orders", "allocations", len(allocations))
		return
	}

	for _, a := range allocations {
		limitPrice := decimal.NewFromFloat(a.UnitPrice)
		order, err := h.BrokerRepository.PlaceOrder(repository.PlaceOrderRequest{
			AllocationID: a.AllocationID,
			Quantity:     decimal.NewFromInt(a.Quantity),
			Symbol:       trades[a.TradeID].Symbol,
			Side:         alpaca.Buy,
			LimitPrice:   &limitPrice,
		})
		if err != nil {
			log.Errorw("failed to place order", "allocationID", a.AllocationID.String(), "error", err.Error())
			continue
		}
		if err := h.AllocationRepository.SetBrokerOrderID(a.AllocationID, order.ID); err != nil {
			log.Errorw("failed to record broker order", "allocationID", a.AllocationID.String(), "error", err.Error())
		}
	}
}
