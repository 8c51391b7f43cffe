package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradedesk/internal/logger"
	"tradedesk/pkg/ollama"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// OracleRepository sends a prompt to a language model and returns the
// raw text it produced. Nothing about the output is trusted.
type OracleRepository interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Prompt  string
	Options ollama.Options
	// streams the response when set
	OnChunk func(chunk string)
}

var ErrOracleUnavailable = errors.New("oracle unavailable")

var AllocationOptions = ollama.Options{
	NumPredict:    500,
	Temperature:   0.6,
	TopP:          0.8,
	TopK:          30,
	RepeatPenalty: 1.2,
	Stop:          []string{"```", "\n\n", "User:", "Human:", "Assistant:", "System:"},
}

var ChatOptions = ollama.Options{
	NumPredict:    150,
	Temperature:   0.7,
	TopP:          0.9,
	TopK:          40,
	RepeatPenalty: 1.1,
	Stop:          []string{"\n\n", "User:", "Human:", "Assistant:"},
}

type ollamaOracleRepositoryHandler struct {
	Client ollama.Client
	Model  string
}

func NewOllamaOracleRepository(baseUrl, model string) OracleRepository {
	return ollamaOracleRepositoryHandler{
		Client: ollama.NewClient(baseUrl),
		Model:  model,
	}
}

func (h ollamaOracleRepositoryHandler) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	out, err := h.Client.Generate(ctx, ollama.GenerateRequest{
		Model:   h.Model,
		Prompt:  req.Prompt,
		Options: req.Options,
	}, req.OnChunk)
	if err != nil {
		return "", fmt.Errorf("failed to generate with %s: %w", h.Model, err)
	}
	return out, nil
}

type breakerOracleRepositoryHandler struct {
	Oracle  OracleRepository
	Breaker *gobreaker.CircuitBreaker
	Limiter *rate.Limiter
}

// NewBreakerOracleRepository wraps an oracle so that a dead model
// server fails fast instead of hanging every request on its timeout.
// Calls are also limited to rps per second.
func NewBreakerOracleRepository(name string, oracle OracleRepository, rps float64) OracleRepository {
	settings := gobreaker.Settings{
		Name:     name,
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.FromContext(context.Background()).Warnf("oracle breaker %s: %s -> %s", name, from.String(), to.String())
		},
		// a cancelled request says nothing about the model server
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return breakerOracleRepositoryHandler{
		Oracle:  oracle,
		Breaker: gobreaker.NewCircuitBreaker(settings),
		Limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (h breakerOracleRepositoryHandler) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := h.Limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for oracle rate limit: %w", err)
	}

	out, err := h.Breaker.Execute(func() (interface{}, error) {
		return h.Oracle.Complete(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %s", ErrOracleUnavailable, err.Error())
	} else if err != nil {
		return "", err
	}

	return out.(string), nil
}
