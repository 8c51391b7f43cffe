package api

import (
	"fmt"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/service"

	"github.com/gin-gonic/gin"
)

type allocateRequest struct {
	Allocations []struct {
		TradeID     int64   `json:"trade_id"`
		Quantity    int64   `json:"quantity"`
		Explanation *string `json:"explanation"`
	} `json:"allocations"`
	// "oracle" when the user accepted a suggestion unchanged
	Source *string `json:"source"`
}

type allocateResponse struct {
	Allocations []allocationResponse     `json:"allocations"`
	TotalCost   float64                  `json:"totalCost"`
	NewBalance  float64                  `json:"new_balance"`
	Result      allocationResultResponse `json:"result"`
}

type allocationResponse struct {
	ID            string  `json:"id"`
	TradeID       int64   `json:"trade_id"`
	Quantity      int64   `json:"quantity"`
	UnitPrice     float64 `json:"price"`
	Explanation   *string `json:"explanation"`
	Source        string  `json:"source"`
	BrokerOrderID *string `json:"brokerOrderID"`
}

func (m ApiHandler) allocate(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	var requestBody allocateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	input := service.ConfirmAllocationInput{
		UserAccountID: userAccountID,
		Quantities:    map[int64]int64{},
		Explanations:  map[int64]string{},
		Source:        model.AllocationSource_Manual,
	}
	for _, a := range requestBody.Allocations {
		if _, ok := input.Quantities[a.TradeID]; ok {
			returnErrorJson(fmt.Errorf("%w: trade %d allocated twice", service.ErrInvalidRequest, a.TradeID), c)
			return
		}
		input.Quantities[a.TradeID] = a.Quantity
		if a.Explanation != nil {
			input.Explanations[a.TradeID] = *a.Explanation
		}
	}
	if requestBody.Source != nil {
		switch *requestBody.Source {
		case model.AllocationSource_Manual.String():
		case model.AllocationSource_Oracle.String():
			input.Source = model.AllocationSource_Oracle
		default:
			returnErrorJson(fmt.Errorf("%w: unknown source %q", service.ErrInvalidRequest, *requestBody.Source), c)
			return
		}
	}

	result, err := m.AllocationService.Confirm(c.Request.Context(), input)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := allocateResponse{
		Allocations: []allocationResponse{},
		TotalCost:   result.Result.TotalCost.InexactFloat64(),
		NewBalance:  result.Balance.InexactFloat64(),
		Result:      allocationResultToResponse(*result.Result),
	}
	for _, a := range result.Allocations {
		out.Allocations = append(out.Allocations, allocationResponse{
			ID:            a.AllocationID.String(),
			TradeID:       a.TradeID,
			Quantity:      a.Quantity,
			UnitPrice:     a.UnitPrice,
			Explanation:   a.Explanation,
			Source:        a.Source.String(),
			BrokerOrderID: a.BrokerOrderID,
		})
	}

	c.JSON(200, out)
}

func (m ApiHandler) suggestAllocation(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	result, err := m.AllocationService.Suggest(c.Request.Context(), userAccountID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, allocationResultToResponse(*result))
}
