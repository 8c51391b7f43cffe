package service

import (
	"context"
	"errors"
	"testing"

	"tradedesk/internal/repository"
	mock_repository "tradedesk/internal/repository/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChatService_Chat(t *testing.T) {
	t.Run("forwards with chat options", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oracle := mock_repository.NewMockOracleRepository(ctrl)
		handler := NewChatService(oracle)

		oracle.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req repository.CompletionRequest) (string, error) {
				require.Equal(t, "what is a limit order?", req.Prompt)
				require.Equal(t, repository.ChatOptions.NumPredict, req.Options.NumPredict)
				require.Nil(t, req.OnChunk)
				return "  an order with a price cap \n", nil
			})

		out, err := handler.Chat(context.Background(), " what is a limit order? ", nil)
		require.NoError(t, err)
		require.Equal(t, "an order with a price cap", out)
	})

	t.Run("empty message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := NewChatService(mock_repository.NewMockOracleRepository(ctrl))

		_, err := handler.Chat(context.Background(), "   ", nil)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("oracle down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oracle := mock_repository.NewMockOracleRepository(ctrl)
		handler := NewChatService(oracle)

		oracle.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return("", repository.ErrOracleUnavailable)

		_, err := handler.Chat(context.Background(), "hi", nil)
		require.True(t, errors.Is(err, repository.ErrOracleUnavailable))
	})
}
