package api

import (
	"fmt"

	"tradedesk/internal/repository"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) usageStats(c *gin.Context) {
	if m.Db == nil {
		returnErrorJson(fmt.Errorf("usage stats need a database"), c)
		return
	}

	stats, err := repository.GetUsageStats(m.Db)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, stats)
}
