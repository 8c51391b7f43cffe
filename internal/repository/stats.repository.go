package repository

import (
	"database/sql"
	"fmt"
)

type UsageStats struct {
	UniqueUsers          int `json:"uniqueUsers"`
	TradesCreated        int `json:"trades"`
	AllocationsConfirmed int `json:"allocations"`
	OracleAllocations    int `json:"oracleAllocations"`
}

func GetUsageStats(db *sql.DB) (*UsageStats, error) {
	query := `select
	(select count(distinct user_account_id) from api_request) as "distinct_users",
	(select count(*) from trade) as "num_trades",
	(select count(*) from allocation) as "num_allocations",
	(select count(*) from allocation where source = 'oracle') as "num_oracle_allocations";`

	row := db.QueryRow(query)

	out := UsageStats{}

	err := row.Scan(&out.UniqueUsers, &out.TradesCreated, &out.AllocationsConfirmed, &out.OracleAllocations)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	return &out, nil
}
