package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

func (m ApiHandler) getBalance(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	balance, err := m.AccountService.GetBalance(c.Request.Context(), userAccountID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, balanceResponse{Balance: balance.InexactFloat64()})
}

type updateBalanceRequest struct {
	NewBalance *decimal.Decimal `json:"new_balance"`
}

func (m ApiHandler) updateBalance(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	var requestBody updateBalanceRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}
	if requestBody.NewBalance == nil {
		returnErrorJsonCode(fmt.Errorf("new_balance is required"), c, 400)
		return
	}

	balance, err := m.AccountService.SetBalance(c.Request.Context(), userAccountID, *requestBody.NewBalance)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, balanceResponse{Balance: balance.InexactFloat64()})
}

type statsResponse struct {
	Balance             float64  `json:"balance"`
	PendingTrades       int      `json:"pendingTrades"`
	AllocatedTrades     int      `json:"allocatedTrades"`
	CompletedTrades     int      `json:"completedTrades"`
	AllocatedValue      float64  `json:"allocatedValue"`
	CompletedValue      float64  `json:"completedValue"`
	MeanCompletedValue  *float64 `json:"meanCompletedValue"`
	StdevCompletedValue *float64 `json:"stdevCompletedValue"`
}

func (m ApiHandler) getStats(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	stats, err := m.AccountService.Stats(c.Request.Context(), userAccountID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, statsResponse{
		Balance:             stats.Balance.InexactFloat64(),
		PendingTrades:       stats.PendingTrades,
		AllocatedTrades:     stats.AllocatedTrades,
		CompletedTrades:     stats.CompletedTrades,
		AllocatedValue:      stats.AllocatedValue.InexactFloat64(),
		CompletedValue:      stats.CompletedValue.InexactFloat64(),
		MeanCompletedValue:  stats.MeanCompletedValue,
		StdevCompletedValue: stats.StdevCompletedValue,
	})
}
