package repository

import (
	"database/sql"
	"fmt"
	"time"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type AllocationRepository interface {
	AddMany(tx *sql.Tx, allocations []model.Allocation) ([]model.Allocation, error)
	List(userAccountID uuid.UUID) ([]model.Allocation, error)
	SetBrokerOrderID(allocationID uuid.UUID, brokerOrderID string) error
}

type allocationRepositoryHandler struct {
	Db *sql.DB
}

func NewAllocationRepository(db *sql.DB) AllocationRepository {
	return allocationRepositoryHandler{Db: db}
}

func (h allocationRepositoryHandler) AddMany(tx *sql.Tx, allocations []model.Allocation) ([]model.Allocation, error) {
	if len(allocations) == 0 {
		return []model.Allocation{}, nil
	}

	now := time.Now().UTC()
	for i := range allocations {
		allocations[i].AllocationID = uuid.New()
		allocations[i].CreatedAt = now
	}

	query := table.Allocation.
		INSERT(table.Allocation.AllColumns).
		MODELS(allocations).
		RETURNING(table.Allocation.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := []model.Allocation{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert allocations: %w", err)
	}

	return out, nil
}

func (h allocationRepositoryHandler) List(userAccountID uuid.UUID) ([]model.Allocation, error) {
	query := table.Allocation.
		SELECT(table.Allocation.AllColumns).
		WHERE(table.Allocation.UserAccountID.EQ(postgres.UUID(userAccountID))).
		ORDER_BY(table.Allocation.CreatedAt.DESC())

	out := []model.Allocation{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	return out, nil
}

func (h allocationRepositoryHandler) SetBrokerOrderID(allocationID uuid.UUID, brokerOrderID string) error {
	query := table.Allocation.
		UPDATE(table.Allocation.BrokerOrderID).
		SET(postgres.String(brokerOrderID)).
		WHERE(table.Allocation.AllocationID.EQ(postgres.UUID(allocationID)))

	_, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to set broker order id on allocation %s: %w", allocationID.String(), err)
	}

	return nil
}
