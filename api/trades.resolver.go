package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type tradeResponse struct {
	ID          int64   `json:"id"`
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	RiskLevel   string  `json:"risk_level"`
	Sector      string  `json:"sector"`
	Status      string  `json:"status"`
	Explanation *string `json:"explanation"`
	CreatedAt   string  `json:"createdAt"`
}

func tradeToResponse(t model.Trade) tradeResponse {
	return tradeResponse{
		ID:          t.TradeID,
		Symbol:      t.Symbol,
		Price:       t.UnitPrice,
		Quantity:    t.Quantity,
		RiskLevel:   t.RiskLevel,
		Sector:      t.Sector,
		Status:      t.Status.String(),
		Explanation: t.Explanation,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func tradeIDParam(c *gin.Context) (int64, error) {
	tradeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid trade id %q", service.ErrInvalidRequest, c.Param("id"))
	}
	return tradeID, nil
}

func parseStatuses(in string) ([]model.TradeStatus, error) {
	out := []model.TradeStatus{}
	if in == "" {
		return out, nil
	}
	for _, s := range strings.Split(in, ",") {
		var status model.TradeStatus
		if err := status.Scan(strings.TrimSpace(s)); err != nil {
			return nil, fmt.Errorf("%w: unknown status %q", service.ErrInvalidRequest, s)
		}
		out = append(out, status)
	}
	return out, nil
}

func (m ApiHandler) listTrades(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	statuses, err := parseStatuses(c.Query("status"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	trades, err := m.TradeService.List(c.Request.Context(), userAccountID, statuses)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []tradeResponse{}
	for _, t := range trades {
		out = append(out, tradeToResponse(t))
	}
	c.JSON(200, out)
}

type addTradeRequest struct {
	Symbol      string           `json:"symbol"`
	Price       *decimal.Decimal `json:"price"`
	RiskLevel   string           `json:"risk_level"`
	Sector      string           `json:"sector"`
	Explanation *string          `json:"explanation"`
}

func (m ApiHandler) addTrade(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	var requestBody addTradeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	trade, err := m.TradeService.Add(c.Request.Context(), service.AddTradeInput{
		UserAccountID: userAccountID,
		Symbol:        requestBody.Symbol,
		UnitPrice:     requestBody.Price,
		RiskLevel:     requestBody.RiskLevel,
		Sector:        requestBody.Sector,
		Explanation:   requestBody.Explanation,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, tradeToResponse(*trade))
}

type updateTradeRequest struct {
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"quantity"`
	RiskLevel   *string          `json:"risk_level"`
	Sector      *string          `json:"sector"`
	Explanation *string          `json:"explanation"`
}

func (m ApiHandler) updateTrade(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}
	tradeID, err := tradeIDParam(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	var requestBody updateTradeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	trade, err := m.TradeService.Update(c.Request.Context(), userAccountID, tradeID, service.UpdateTradeInput{
		UnitPrice:   requestBody.Price,
		Quantity:    requestBody.Quantity,
		RiskLevel:   requestBody.RiskLevel,
		Sector:      requestBody.Sector,
		Explanation: requestBody.Explanation,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, tradeToResponse(*trade))
}

func (m ApiHandler) deleteTrade(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}
	tradeID, err := tradeIDParam(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	if err := m.TradeService.Delete(c.Request.Context(), userAccountID, tradeID); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"success": true})
}

type completeAndCreditRequest struct {
	TradeID int64 `json:"trade_id"`
}

type completeAndCreditResponse struct {
	Trade      tradeResponse `json:"trade"`
	Credit     float64       `json:"credit"`
	NewBalance float64       `json:"new_balance"`
}

func (m ApiHandler) completeAndCredit(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	var requestBody completeAndCreditRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}
	if requestBody.TradeID == 0 {
		returnErrorJson(fmt.Errorf("%w: trade_id is required", service.ErrInvalidRequest), c)
		return
	}

	result, err := m.TradeService.CompleteAndCredit(c.Request.Context(), userAccountID, requestBody.TradeID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, completeAndCreditResponse{
		Trade:      tradeToResponse(result.Trade),
		Credit:     result.Credit.InexactFloat64(),
		NewBalance: result.Balance.InexactFloat64(),
	})
}
