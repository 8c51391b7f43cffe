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

type UserAccountRepository interface {
	Get(tx *sql.Tx, userAccountID uuid.UUID) (*model.UserAccount, error)
	GetOrCreate(externalID string) (*model.UserAccount, error)
	UpdateBalance(tx *sql.Tx, userAccountID uuid.UUID, balance decimal.Decimal) (*model.UserAccount, error)
}

type userAccountRepositoryHandler struct {
	DB *sql.DB
}

func NewUserAccountRepository(db *sql.DB) UserAccountRepository {
	return userAccountRepositoryHandler{
		DB: db,
	}
}

// Get locks the account row when called inside a transaction, so
// balance reads and writes in that tx can't interleave with another.
func (h userAccountRepositoryHandler) Get(tx *sql.Tx, userAccountID uuid.UUID) (*model.UserAccount, error) {
	t := table.UserAccount
	query := t.SELECT(t.AllColumns).WHERE(t.UserAccountID.EQ(postgres.UUID(userAccountID)))

	var db qrm.Queryable = h.DB
	if tx != nil {
		db = tx
		query = query.FOR(postgres.UPDATE())
	}

	out := model.UserAccount{}
	err := query.Query(db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("user account %s: %w", userAccountID.String(), ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user account: %w", err)
	}

	return &out, nil
}

func (h userAccountRepositoryHandler) GetOrCreate(externalID string) (*model.UserAccount, error) {
	t := table.UserAccount

	getQuery := t.SELECT(t.AllColumns).WHERE(t.ExternalID.EQ(postgres.String(externalID)))
	out := model.UserAccount{}
	err := getQuery.Query(h.DB, &out)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user account: %w", err)
	} else if err == nil {
		return &out, nil
	}

	newModel := model.UserAccount{
		UserAccountID: uuid.New(),
		ExternalID:    externalID,
		Balance:       0,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	// a concurrent create for the same user just returns the existing row
	createQuery := t.INSERT(t.AllColumns).
		MODEL(newModel).
		ON_CONFLICT(t.ExternalID).
		DO_UPDATE(postgres.SET(t.UpdatedAt.SET(t.EXCLUDED.UpdatedAt))).
		RETURNING(t.AllColumns)

	err = createQuery.Query(h.DB, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &out, nil
}

func (h userAccountRepositoryHandler) UpdateBalance(tx *sql.Tx, userAccountID uuid.UUID, balance decimal.Decimal) (*model.UserAccount, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("failed to update balance: %s is negative", balance.String())
	}
	t := table.UserAccount
	b, _ := balance.Float64()

	query := t.UPDATE(t.Balance, t.UpdatedAt).
		MODEL(model.UserAccount{
			Balance:   b,
			UpdatedAt: time.Now().UTC(),
		}).
		WHERE(t.UserAccountID.EQ(postgres.UUID(userAccountID))).
		RETURNING(t.AllColumns)

	var db qrm.Queryable = h.DB
	if tx != nil {
		db = tx
	}

	out := model.UserAccount{}
	err := query.Query(db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("user account %s: %w", userAccountID.String(), ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	return &out, nil
}
