package repository_test

import (
	"context"
	"errors"
	"testing"

	"tradedesk/internal/repository"
	mock_repository "tradedesk/internal/repository/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBreakerOracleRepository(t *testing.T) {
	t.Run("passes through responses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mock_repository.NewMockOracleRepository(ctrl)
		oracle := repository.NewBreakerOracleRepository("test", inner, 1000)

		req := repository.CompletionRequest{
			Prompt:  "allocate",
			Options: repository.AllocationOptions,
		}
		inner.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`[1, 2]`, nil)

		out, err := oracle.Complete(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, `[1, 2]`, out)
	})

	t.Run("opens after consecutive failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mock_repository.NewMockOracleRepository(ctrl)
		oracle := repository.NewBreakerOracleRepository("test", inner, 1000)

		connErr := errors.New("connection refused")
		inner.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", connErr).Times(3)

		for i := 0; i < 3; i++ {
			_, err := oracle.Complete(context.Background(), repository.CompletionRequest{})
			require.ErrorIs(t, err, connErr)
		}

		// inner is not called again while open
		_, err := oracle.Complete(context.Background(), repository.CompletionRequest{})
		require.ErrorIs(t, err, repository.ErrOracleUnavailable)
	})

	t.Run("cancelled context does not count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mock_repository.NewMockOracleRepository(ctrl)
		oracle := repository.NewBreakerOracleRepository("test", inner, 1000)

		inner.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", context.Canceled).Times(3)
		inner.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("ok", nil)

		for i := 0; i < 3; i++ {
			_, err := oracle.Complete(context.Background(), repository.CompletionRequest{})
			require.ErrorIs(t, err, context.Canceled)
		}
		out, err := oracle.Complete(context.Background(), repository.CompletionRequest{})
		require.NoError(t, err)
		require.Equal(t, "ok", out)
	})
}
