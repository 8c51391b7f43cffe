package api

import (
	"fmt"

	"tradedesk/internal/domain"
	"tradedesk/internal/reconciler"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type reconcileRequest struct {
	Trades  []domain.Trade  `json:"trades"`
	Balance decimal.Decimal `json:"balance"`
	// raw oracle output, required
	Suggestion string `json:"suggestion"`
}

type allocationResultResponse struct {
	Allocations      []domain.Allocation         `json:"allocations"`
	TotalCost        float64                     `json:"totalCost"`
	Balance          float64                     `json:"balance"`
	RemainingBalance float64                     `json:"remainingBalance"`
	Scaled           bool                        `json:"scaled"`
	ScalingFactor    *float64                    `json:"scalingFactor"`
	Rejected         []domain.RejectedSuggestion `json:"rejected"`
}

func allocationResultToResponse(result domain.AllocationResult) allocationResultResponse {
	out := allocationResultResponse{
		Allocations:      result.Allocations,
		TotalCost:        result.TotalCost.InexactFloat64(),
		Balance:          result.Balance.InexactFloat64(),
		RemainingBalance: result.RemainingBalance().InexactFloat64(),
		Scaled:           result.Scaled,
		Rejected:         result.Rejected,
	}
	if out.Allocations == nil {
		out.Allocations = []domain.Allocation{}
	}
	if out.Rejected == nil {
		out.Rejected = []domain.RejectedSuggestion{}
	}
	if result.ScalingFactor != nil {
		f := result.ScalingFactor.InexactFloat64()
		out.ScalingFactor = &f
	}
	return out
}

func (m ApiHandler) reconcile(c *gin.Context) {
	var requestBody reconcileRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	// public route: the oracle is only reachable through /trades/allocate/suggest
	if requestBody.Suggestion == "" {
		returnErrorJson(fmt.Errorf("%w: suggestion is required", reconciler.ErrInvalidInput), c)
		return
	}

	result, err := reconciler.Reconcile(requestBody.Trades, requestBody.Balance, requestBody.Suggestion)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, allocationResultToResponse(*result))
}
