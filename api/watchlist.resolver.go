package api

import (
	"fmt"

	"tradedesk/internal/db/models/postgres/public/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type watchlistItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      *string   `json:"name"`
	CreatedAt string    `json:"createdAt"`
}

func watchlistItemToResponse(item model.WatchlistItem) watchlistItemResponse {
	return watchlistItemResponse{
		ID:        item.WatchlistItemID,
		Symbol:    item.Symbol,
		Name:      item.Name,
		CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (m ApiHandler) getWatchlist(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	items, err := m.WatchlistService.List(c.Request.Context(), userAccountID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []watchlistItemResponse{}
	for _, item := range items {
		out = append(out, watchlistItemToResponse(item))
	}
	c.JSON(200, out)
}

type addToWatchlistRequest struct {
	Symbol string  `json:"symbol"`
	Name   *string `json:"name"`
}

func (m ApiHandler) addToWatchlist(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	var requestBody addToWatchlistRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	item, err := m.WatchlistService.Add(c.Request.Context(), userAccountID, requestBody.Symbol, requestBody.Name)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, watchlistItemToResponse(*item))
}

func (m ApiHandler) removeFromWatchlist(c *gin.Context) {
	userAccountID, ok := requireUserAccountID(c)
	if !ok {
		return
	}

	err := m.WatchlistService.Remove(c.Request.Context(), userAccountID, c.Param("symbol"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"success": true})
}
