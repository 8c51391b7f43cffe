package service

import (
	"context"
	"errors"
	"testing"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/domain"
	"tradedesk/internal/reconciler"
	"tradedesk/internal/repository"
	mock_repository "tradedesk/internal/repository/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_allocationServiceHandler_SuggestFor(t *testing.T) {
	trades := []domain.Trade{
		{ID: 1, Symbol: "AAPL", UnitPrice: decimal.NewFromInt(100)},
		{ID: 2, Symbol: "MSFT", UnitPrice: decimal.NewFromInt(50)},
	}

	t.Run("happy path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oracle := mock_repository.NewMockOracleRepository(ctrl)
		handler := allocationServiceHandler{
			OracleRepository: oracle,
			MaxAttempts:      2,
		}

		oracle.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, req repository.CompletionRequest) (string, error) {
				require.Contains(t, req.Prompt, "Available balance: $120.00")
				require.NotContains(t, req.Prompt, "previous answer")
				require.Equal(t, repository.AllocationOptions, req.Options)
				return "```json\n[{\"id\":1,\"quantity\":1,\"explanation\":\"x\"},{\"id\":2,\"quantity\":2,\"explanation\":\"y\"}]\n```", nil
			})

		result, err := handler.SuggestFor(context.Background(), trades, decimal.NewFromInt(120))
		require.NoError(t, err)
		require.True(t, result.Scaled)
		require.Equal(t, map[int64]int64{1: 0, 2: 2}, result.Quantities())
	})

	t.Run("retries unusable answer with strict prompt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oracle := mock_repository.NewMockOracleRepository(ctrl)
		handler := allocationServiceHandler{
			OracleRepository: oracle,
			MaxAttempts:      2,
		}

		gomock.InOrder(
			oracle.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("I cannot help with that.", nil),
			oracle.EXPECT().
				Complete(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, req repository.CompletionRequest) (string, error) {
					require.Contains(t, req.Prompt, "previous answer could not be used")
					return `[{"id": 2, "quantity": 1, "explanation": "cheap"}]`, nil
				}),
		)

		result, err := handler.SuggestFor(context.Background(), trades, decimal.NewFromInt(120))
		require.NoError(t, err)
		require.False(t, result.Scaled)
		require.Equal(t, map[int64]int64{2: 1}, result.Quantities())
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oracle := mock_repository.NewMockOracleRepository(ctrl)
		handler := allocationServiceHandler{
			OracleRepository: oracle,
			MaxAttempts:      2,
		}

		oracle.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`[{"id":1,"quantity":-3}]`, nil).Times(2)

		_, err := handler.SuggestFor(context.Background(), trades, decimal.NewFromInt(120))
		require.ErrorIs(t, err, reconciler.ErrNoValidSuggestions)
	})

	t.Run("oracle errors are not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oracle := mock_repository.NewMockOracleRepository(ctrl)
		handler := allocationServiceHandler{
			OracleRepository: oracle,
			MaxAttempts:      3,
		}

		oracle.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", repository.ErrOracleUnavailable)

		_, err := handler.SuggestFor(context.Background(), trades, decimal.NewFromInt(120))
		require.ErrorIs(t, err, repository.ErrOracleUnavailable)
	})
}

func Test_allocationServiceHandler_Confirm(t *testing.T) {
	userAccountID := uuid.New()
	pending := []model.Trade{
		{TradeID: 1, UserAccountID: userAccountID, Symbol: "AAPL", UnitPrice: 100, Status: model.TradeStatus_Pending},
		{TradeID: 2, UserAccountID: userAccountID, Symbol: "MSFT", UnitPrice: 50, Status: model.TradeStatus_Pending},
	}

	t.Run("happy path", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		tradeRepository := mock_repository.NewMockTradeRepository(ctrl)
		userAccountRepository := mock_repository.NewMockUserAccountRepository(ctrl)
		allocationRepository := mock_repository.NewMockAllocationRepository(ctrl)
		brokerRepository := mock_repository.NewMockBrokerRepository(ctrl)

		handler := allocationServiceHandler{
			Db:                    db,
			TradeRepository:       tradeRepository,
			UserAccountRepository: userAccountRepository,
			AllocationRepository:  allocationRepository,
			BrokerRepository:      brokerRepository,
			MaxAttempts:           1,
		}

		mock.ExpectBegin()
		mock.ExpectCommit()

		userAccountRepository.EXPECT().
			Get(gomock.Any(), userAccountID).
			Return(&model.UserAccount{UserAccountID: userAccountID, Balance: 200}, nil)
		tradeRepository.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter repository.TradeListFilter) ([]model.Trade, error) {
				require.True(t, filter.ForUpdate)
				require.Equal(t, []model.TradeStatus{model.TradeStatus_Pending}, filter.Statuses)
				return pending, nil
			})
		// zero quantity for trade 1 is not persisted
		tradeRepository.EXPECT().
			Update(gomock.Any(), int64(2), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, _ int64, t2 model.Trade, _ interface{}) (*model.Trade, error) {
				require.Equal(t, int64(3), t2.Quantity)
				require.Equal(t, model.TradeStatus_Allocated, t2.Status)
				require.Equal(t, "cheap", *t2.Explanation)
				return &t2, nil
			})

		allocationID := uuid.New()
		allocationRepository.EXPECT().
			AddMany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, rows []model.Allocation) ([]model.Allocation, error) {
				explanation := "cheap"
				require.Equal(t, "", cmp.Diff([]model.Allocation{{
					UserAccountID: userAccountID,
					TradeID:       2,
					Quantity:      3,
					UnitPrice:     50,
					Explanation:   &explanation,
					Source:        model.AllocationSource_Oracle,
				}}, rows))
				rows[0].AllocationID = allocationID
				return rows, nil
			})
		userAccountRepository.EXPECT().
			UpdateBalance(gomock.Any(), userAccountID, gomock.Any()).
			DoAndReturn(func(_ interface{}, _ uuid.UUID, balance decimal.Decimal) (*model.UserAccount, error) {
				require.True(t, balance.Equal(decimal.NewFromInt(50)))
				return &model.UserAccount{UserAccountID: userAccountID, Balance: 50}, nil
			})
		brokerRepository.EXPECT().IsMarketOpen().Return(true, nil)
		brokerRepository.EXPECT().
			PlaceOrder(gomock.Any()).
			DoAndReturn(func(req repository.PlaceOrderRequest) (*alpaca.Order, error) {
				require.Equal(t, allocationID, req.AllocationID)
				require.Equal(t, "MSFT", req.Symbol)
				require.True(t, req.Quantity.Equal(decimal.NewFromInt(3)))
				return &alpaca.Order{ID: "order-1"}, nil
			})
		allocationRepository.EXPECT().SetBrokerOrderID(allocationID, "order-1").Return(nil)

		result, err := handler.Confirm(context.Background(), ConfirmAllocationInput{
			UserAccountID: userAccountID,
			Quantities:    map[int64]int64{1: 0, 2: 3},
			Explanations:  map[int64]string{2: "cheap"},
			Source:        model.AllocationSource_Oracle,
		})
		require.NoError(t, err)
		require.True(t, result.Balance.Equal(decimal.NewFromInt(50)))
		require.True(t, result.Result.TotalCost.Equal(decimal.NewFromInt(150)))
		require.Len(t, result.Allocations, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("over balance rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		tradeRepository := mock_repository.NewMockTradeRepository(ctrl)
		userAccountRepository := mock_repository.NewMockUserAccountRepository(ctrl)

		handler := allocationServiceHandler{
			Db:                    db,
			TradeRepository:       tradeRepository,
			UserAccountRepository: userAccountRepository,
			MaxAttempts:           1,
		}

		mock.ExpectBegin()
		mock.ExpectRollback()

		userAccountRepository.EXPECT().
			Get(gomock.Any(), userAccountID).
			Return(&model.UserAccount{UserAccountID: userAccountID, Balance: 120}, nil)
		tradeRepository.EXPECT().List(gomock.Any(), gomock.Any()).Return(pending, nil)

		_, err = handler.Confirm(context.Background(), ConfirmAllocationInput{
			UserAccountID: userAccountID,
			Quantities:    map[int64]int64{1: 1, 2: 2},
		})
		require.ErrorIs(t, err, reconciler.ErrBalanceExceeded)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repository failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		userAccountRepository := mock_repository.NewMockUserAccountRepository(ctrl)

		handler := allocationServiceHandler{
			Db:                    db,
			UserAccountRepository: userAccountRepository,
		}

		mock.ExpectBegin()
		mock.ExpectRollback()

		dbErr := errors.New("connection reset")
		userAccountRepository.EXPECT().Get(gomock.Any(), userAccountID).Return(nil, dbErr)

		_, err = handler.Confirm(context.Background(), ConfirmAllocationInput{
			UserAccountID: userAccountID,
			Quantities:    map[int64]int64{1: 1},
		})
		require.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func Test_allocationServiceHandler_submitOrders(t *testing.T) {
	allocations := []model.Allocation{{AllocationID: uuid.New(), TradeID: 2, Quantity: 3, UnitPrice: 50}}
	trades := map[int64]model.Trade{2: {TradeID: 2, Symbol: "MSFT"}}

	t.Run("market closed places nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		brokerRepository := mock_repository.NewMockBrokerRepository(ctrl)
		handler := allocationServiceHandler{BrokerRepository: brokerRepository}

		brokerRepository.EXPECT().IsMarketOpen().Return(false, nil)

		handler.submitOrders(context.Background(), allocations, trades)
	})

	t.Run("clock failure places nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		brokerRepository := mock_repository.NewMockBrokerRepository(ctrl)
		handler := allocationServiceHandler{BrokerRepository: brokerRepository}

		brokerRepository.EXPECT().IsMarketOpen().Return(false, errors.New("alpaca unreachable"))

		handler.submitOrders(context.Background(), allocations, trades)
	})

	t.Run("order failure is logged and the rest continue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		brokerRepository := mock_repository.NewMockBrokerRepository(ctrl)
		allocationRepository := mock_repository.NewMockAllocationRepository(ctrl)
		handler := allocationServiceHandler{
			BrokerRepository:     brokerRepository,
			AllocationRepository: allocationRepository,
		}

		second := model.Allocation{AllocationID: uuid.New(), TradeID: 2, Quantity: 1, UnitPrice: 50}
		brokerRepository.EXPECT().IsMarketOpen().Return(true, nil)
		gomock.InOrder(
			brokerRepository.EXPECT().PlaceOrder(gomock.Any()).Return(nil, errors.New("rejected")),
			brokerRepository.EXPECT().PlaceOrder(gomock.Any()).Return(&alpaca.Order{ID: "order-2"}, nil),
		)
		allocationRepository.EXPECT().SetBrokerOrderID(second.AllocationID, "order-2").Return(nil)

		handler.submitOrders(context.Background(), append(allocations, second), trades)
	})
}
