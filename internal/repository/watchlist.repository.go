package repository

import (
	"database/sql"
	"fmt"
	"time"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

type WatchlistRepository interface {
	List(userAccountID uuid.UUID) ([]model.WatchlistItem, error)
	Add(item model.WatchlistItem) (*model.WatchlistItem, error)
	Remove(userAccountID uuid.UUID, symbol string) error
}

type watchlistRepositoryHandler struct {
	Db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) WatchlistRepository {
	return watchlistRepositoryHandler{Db: db}
}

func (h watchlistRepositoryHandler) List(userAccountID uuid.UUID) ([]model.WatchlistItem, error) {
	t := table.WatchlistItem
	query := t.SELECT(t.AllColumns).
		WHERE(t.UserAccountID.EQ(postgres.UUID(userAccountID))).
		ORDER_BY(t.CreatedAt.ASC())

	out := []model.WatchlistItem{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}

	return out, nil
}

// Add is idempotent per (user, symbol); re-adding only refreshes the name.
func (h watchlistRepositoryHandler) Add(item model.WatchlistItem) (*model.WatchlistItem, error) {
	t := table.WatchlistItem
	item.WatchlistItemID = uuid.New()
	item.CreatedAt = time.Now().UTC()

	query := t.INSERT(t.AllColumns).
		MODEL(item).
		ON_CONFLICT(t.UserAccountID, t.Symbol).
		DO_UPDATE(postgres.SET(t.Name.SET(t.EXCLUDED.Name))).
		RETURNING(t.AllColumns)

	out := model.WatchlistItem{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s to watchlist: %w", item.Symbol, err)
	}

	return &out, nil
}

func (h watchlistRepositoryHandler) Remove(userAccountID uuid.UUID, symbol string) error {
	t := table.WatchlistItem
	query := t.DELETE().WHERE(postgres.AND(
		t.UserAccountID.EQ(postgres.UUID(userAccountID)),
		t.Symbol.EQ(postgres.String(symbol)),
	))

	result, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to remove %s from watchlist: %w", symbol, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove %s from watchlist: %w", symbol, err)
	}
	if n == 0 {
		return fmt.Errorf("watchlist symbol %s: %w", symbol, ErrNotFound)
	}

	return nil
}
