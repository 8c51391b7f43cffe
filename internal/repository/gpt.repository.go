package repository

import (
	"context"
	"fmt"

	"github.com/ayush6624/go-chatgpt"
)

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (OracleRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

// Complete ignores streaming; the whole response is passed to OnChunk
// once it arrives.
func (h gptRepositoryHandler) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	response, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: req.Options.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get gpt completion: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	out := response.Choices[0].Message.Content
	if req.OnChunk != nil {
		req.OnChunk(out)
	}
	return out, nil
}
