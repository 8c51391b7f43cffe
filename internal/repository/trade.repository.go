package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TradeRepository interface {
	Add(tx *sql.Tx, t model.Trade) (*model.Trade, error)
	Get(tx *sql.Tx, tradeID int64) (*model.Trade, error)
	List(tx *sql.Tx, filter TradeListFilter) ([]model.Trade, error)
	Update(tx *sql.Tx, tradeID int64, t model.Trade, columns postgres.ColumnList) (*model.Trade, error)
	UpdatePrice(tx *sql.Tx, tradeID int64, price decimal.Decimal) error
	Delete(tx *sql.Tx, tradeID int64, userAccountID uuid.UUID) error
}

type TradeListFilter struct {
	UserAccountID *uuid.UUID
	Statuses      []model.TradeStatus
	// locks the selected rows until tx ends
	ForUpdate bool
}

type tradeRepositoryHandler struct {
	Db *sql.DB
}

func NewTradeRepository(db *sql.DB) TradeRepository {
	return tradeRepositoryHandler{Db: db}
}

func (h tradeRepositoryHandler) Add(tx *sql.Tx, t model.Trade) (*model.Trade, error) {
	t.CreatedAt = time.Now().UTC()
	t.ModifiedAt = time.Now().UTC()
	if t.Status == "" {
		t.Status = model.TradeStatus_Pending
	}
	query := table.Trade.
		INSERT(table.Trade.MutableColumns).
		MODEL(t).
		RETURNING(table.Trade.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Trade{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trade: %w", err)
	}

	return &out, nil
}

// Get locks the row when called inside a transaction.
func (h tradeRepositoryHandler) Get(tx *sql.Tx, tradeID int64) (*model.Trade, error) {
	query := table.Trade.
		SELECT(table.Trade.AllColumns).
		WHERE(table.Trade.TradeID.EQ(postgres.Int64(tradeID)))

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
		query = query.FOR(postgres.UPDATE())
	}

	out := model.Trade{}
	err := query.Query(db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("trade %d: %w", tradeID, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get trade %d: %w", tradeID, err)
	}

	return &out, nil
}

func (h tradeRepositoryHandler) List(tx *sql.Tx, filter TradeListFilter) ([]model.Trade, error) {
	query := table.Trade.SELECT(table.Trade.AllColumns)

	whereClauses := []postgres.BoolExpression{}
	if filter.UserAccountID != nil {
		whereClauses = append(whereClauses, table.Trade.UserAccountID.EQ(postgres.UUID(*filter.UserAccountID)))
	}
	if len(filter.Statuses) > 0 {
		statuses := []postgres.Expression{}
		for _, s := range filter.Statuses {
			statuses = append(statuses, postgres.NewEnumValue(s.String()))
		}
		whereClauses = append(whereClauses, table.Trade.Status.IN(statuses...))
	}
	if len(whereClauses) > 0 {
		query = query.WHERE(postgres.AND(whereClauses...))
	}

	// allocation relies on a stable trade order
	query = query.ORDER_BY(table.Trade.CreatedAt.ASC(), table.Trade.TradeID.ASC())

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
		if filter.ForUpdate {
			query = query.FOR(postgres.UPDATE())
		}
	}

	out := []model.Trade{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	return out, nil
}

func (h tradeRepositoryHandler) Update(tx *sql.Tx, tradeID int64, t model.Trade, columns postgres.ColumnList) (*model.Trade, error) {
	t.ModifiedAt = time.Now().UTC()
	columns = append(columns, table.Trade.ModifiedAt)
	query := table.Trade.
		UPDATE(columns).
		MODEL(t).
		WHERE(table.Trade.TradeID.EQ(postgres.Int64(tradeID))).
		RETURNING(table.Trade.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Trade{}
	err := query.Query(db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("trade %d: %w", tradeID, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to update trade %d: %w", tradeID, err)
	}

	return &out, nil
}

func (h tradeRepositoryHandler) UpdatePrice(tx *sql.Tx, tradeID int64, price decimal.Decimal) error {
	p, _ := price.Float64()
	_, err := h.Update(tx, tradeID, model.Trade{UnitPrice: p}, postgres.ColumnList{table.Trade.UnitPrice})
	return err
}

func (h tradeRepositoryHandler) Delete(tx *sql.Tx, tradeID int64, userAccountID uuid.UUID) error {
	query := table.Trade.
		DELETE().
		WHERE(postgres.AND(
			table.Trade.TradeID.EQ(postgres.Int64(tradeID)),
			table.Trade.UserAccountID.EQ(postgres.UUID(userAccountID)),
		))

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	result, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to delete trade %d: %w", tradeID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete trade %d: %w", tradeID, err)
	}
	if n == 0 {
		return fmt.Errorf("trade %d: %w", tradeID, ErrNotFound)
	}

	return nil
}
