package service

import (
	"context"
	"testing"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/repository"
	mock_repository "tradedesk/internal/repository/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_tradeServiceHandler_CompleteAndCredit(t *testing.T) {
	userAccountID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		tradeRepository := mock_repository.NewMockTradeRepository(ctrl)
		userAccountRepository := mock_repository.NewMockUserAccountRepository(ctrl)
		handler := tradeServiceHandler{
			Db:                    db,
			TradeRepository:       tradeRepository,
			UserAccountRepository: userAccountRepository,
		}

		mock.ExpectBegin()
		mock.ExpectCommit()

		tradeRepository.EXPECT().Get(gomock.Any(), int64(4)).Return(&model.Trade{
			TradeID:       4,
			UserAccountID: userAccountID,
			UnitPrice:     12.5,
			Quantity:      4,
			Status:        model.TradeStatus_Allocated,
		}, nil)
		userAccountRepository.EXPECT().Get(gomock.Any(), userAccountID).Return(&model.UserAccount{
			UserAccountID: userAccountID,
			Balance:       100,
		}, nil)
		tradeRepository.EXPECT().
			Update(gomock.Any(), int64(4), model.Trade{Status: model.TradeStatus_Completed}, gomock.Any()).
			Return(&model.Trade{TradeID: 4, Status: model.TradeStatus_Completed}, nil)
		userAccountRepository.EXPECT().
			UpdateBalance(gomock.Any(), userAccountID, gomock.Any()).
			DoAndReturn(func(_ interface{}, _ uuid.UUID, balance decimal.Decimal) (*model.UserAccount, error) {
				require.True(t, balance.Equal(decimal.NewFromInt(150)))
				return &model.UserAccount{Balance: 150}, nil
			})

		result, err := handler.CompleteAndCredit(context.Background(), userAccountID, 4)
		require.NoError(t, err)
		require.True(t, result.Credit.Equal(decimal.NewFromInt(50)))
		require.True(t, result.Balance.Equal(decimal.NewFromInt(150)))
		require.Equal(t, model.TradeStatus_Completed, result.Trade.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pending trade can't be completed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		tradeRepository := mock_repository.NewMockTradeRepository(ctrl)
		handler := tradeServiceHandler{
			Db:              db,
			TradeRepository: tradeRepository,
		}

		mock.ExpectBegin()
		mock.ExpectRollback()

		tradeRepository.EXPECT().Get(gomock.Any(), int64(4)).Return(&model.Trade{
			TradeID:       4,
			UserAccountID: userAccountID,
			Status:        model.TradeStatus_Pending,
		}, nil)

		_, err = handler.CompleteAndCredit(context.Background(), userAccountID, 4)
		require.ErrorIs(t, err, ErrInvalidState)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's trade", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		tradeRepository := mock_repository.NewMockTradeRepository(ctrl)
		handler := tradeServiceHandler{
			Db:              db,
			TradeRepository: tradeRepository,
		}

		mock.ExpectBegin()
		mock.ExpectRollback()

		tradeRepository.EXPECT().Get(gomock.Any(), int64(4)).Return(&model.Trade{
			TradeID:       4,
			UserAccountID: uuid.New(),
			Status:        model.TradeStatus_Allocated,
		}, nil)

		_, err = handler.CompleteAndCredit(context.Background(), userAccountID, 4)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func Test_tradeServiceHandler_RefreshPrices(t *testing.T) {
	ctrl := gomock.NewController(t)
	tradeRepository := mock_repository.NewMockTradeRepository(ctrl)
	priceRepository := mock_repository.NewMockPriceRepository(ctrl)
	handler := tradeServiceHandler{
		TradeRepository: tradeRepository,
		PriceRepository: priceRepository,
	}

	tradeRepository.EXPECT().
		List(nil, repository.TradeListFilter{Statuses: []model.TradeStatus{model.TradeStatus_Pending}}).
		Return([]model.Trade{
			{TradeID: 1, Symbol: "AAPL", UnitPrice: 170},
			{TradeID: 2, Symbol: "MSFT", UnitPrice: 380},
			{TradeID: 3, Symbol: "AAPL", UnitPrice: 175.5},
		}, nil)
	priceRepository.EXPECT().
		GetLatestPrices(gomock.Any(), []string{"AAPL", "MSFT"}).
		Return(map[string]decimal.Decimal{
			"AAPL": decimal.NewFromFloat(175.5),
			"MSFT": decimal.NewFromInt(380),
		}, nil)
	tradeRepository.EXPECT().UpdatePrice(nil, int64(1), decimal.NewFromFloat(175.5)).Return(nil)

	updated, err := handler.RefreshPrices(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, updated)
}

func Test_tradeServiceHandler_Add(t *testing.T) {
	userAccountID := uuid.New()

	t.Run("prices from quote when missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tradeRepository := mock_repository.NewMockTradeRepository(ctrl)
		priceRepository := mock_repository.NewMockPriceRepository(ctrl)
		handler := tradeServiceHandler{
			TradeRepository: tradeRepository,
			PriceRepository: priceRepository,
		}

		priceRepository.EXPECT().
			GetLatestPrices(gomock.Any(), []string{"NVDA"}).
			Return(map[string]decimal.Decimal{"NVDA": decimal.NewFromFloat(485.2)}, nil)
		tradeRepository.EXPECT().
			Add(nil, model.Trade{
				UserAccountID: userAccountID,
				Symbol:        "NVDA",
				UnitPrice:     485.2,
				RiskLevel:     "Medium",
				Status:        model.TradeStatus_Pending,
			}).
			Return(&model.Trade{TradeID: 10}, nil)

		trade, err := handler.Add(context.Background(), AddTradeInput{
			UserAccountID: userAccountID,
			Symbol:        " nvda ",
		})
		require.NoError(t, err)
		require.Equal(t, int64(10), trade.TradeID)
	})

	t.Run("rejects non positive price", func(t *testing.T) {
		handler := tradeServiceHandler{}
		zero := decimal.Zero
		_, err := handler.Add(context.Background(), AddTradeInput{
			UserAccountID: userAccountID,
			Symbol:        "AAPL",
			UnitPrice:     &zero,
		})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}
