package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) refresh(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := m.RefreshService.RefreshPrices(c.Request.Context(), caller)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
