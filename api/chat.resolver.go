package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message"`
	Stream  bool   `json:"stream"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (m ApiHandler) chat(c *gin.Context) {
	var requestBody chatRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	if !requestBody.Stream {
		out, err := m.ChatService.Chat(c.Request.Context(), requestBody.Message, nil)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(200, chatResponse{Response: out})
		return
	}

	ctx := c.Request.Context()
	chunks := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		_, err := m.ChatService.Chat(ctx, requestBody.Message, func(chunk string) {
			select {
			case chunks <- chunk:
			case <-ctx.Done():
			}
		})
		errs <- err
	}()

	c.Header("Content-Type", "text/event-stream")
	for chunk := range chunks {
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
	}

	if err := <-errs; err != nil {
		c.SSEvent("error", err.Error())
		return
	}
	c.SSEvent("done", "")
}
