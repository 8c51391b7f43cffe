package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/repository"

	"github.com/google/uuid"
)

type WatchlistService interface {
	List(ctx context.Context, userAccountID uuid.UUID) ([]model.WatchlistItem, error)
	Add(ctx context.Context, userAccountID uuid.UUID, symbol string, name *string) (*model.WatchlistItem, error)
	Remove(ctx context.Context, userAccountID uuid.UUID, symbol string) error
}

type watchlistServiceHandler struct {
	WatchlistRepository repository.WatchlistRepository
}

func NewWatchlistService(watchlistRepository repository.WatchlistRepository) WatchlistService {
	return watchlistServiceHandler{
		WatchlistRepository: watchlistRepository,
	}
}

var symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: invalid symbol %q", ErrInvalidRequest, symbol)
	}
	return s, nil
}

func (h watchlistServiceHandler) List(ctx context.Context, userAccountID uuid.UUID) ([]model.WatchlistItem, error) {
	return h.WatchlistRepository.List(userAccountID)
}

func (h watchlistServiceHandler) Add(ctx context.Context, userAccountID uuid.UUID, symbol string, name *string) (*model.WatchlistItem, error) {
	s, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return h.WatchlistRepository.Add(model.WatchlistItem{
		UserAccountID: userAccountID,
		Symbol:        s,
		Name:          name,
	})
}

func (h watchlistServiceHandler) Remove(ctx context.Context, userAccountID uuid.UUID, symbol string) error {
	s, err := NormalizeSymbol(symbol)
	if err != nil {
		return err
	}
	return h.WatchlistRepository.Remove(userAccountID, s)
}
