package service

import (
	"context"
	"fmt"
	"strings"

	"tradedesk/internal/repository"
)

type ChatService interface {
	Chat(ctx context.Context, message string, onChunk func(string)) (string, error)
}

type chatServiceHandler struct {
	OracleRepository repository.OracleRepository
}

func NewChatService(oracleRepository repository.OracleRepository) ChatService {
	return chatServiceHandler{
		OracleRepository: oracleRepository,
	}
}

func (h chatServiceHandler) Chat(ctx context.Context, message string, onChunk func(string)) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: empty message", ErrInvalidRequest)
	}

	out, err := h.OracleRepository.Complete(ctx, repository.CompletionRequest{
		Prompt:  message,
		Options: repository.ChatOptions,
		OnChunk: onChunk,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat response: %w", err)
	}

	return strings.TrimSpace(out), nil
}
