package api

import (
	"github.com/gin-gonic/gin"
)

type promptResponse struct {
	Prompt string `json:"prompt"`
}

func (m ApiHandler) getPrompt(c *gin.Context) {
	userID, period, ok := valuationParams(c)
	if !ok {
		return
	}

	prompt, err := m.PortfolioPromptApp.GeneratePrompt(c.Request.Context(), userID, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, promptResponse{Prompt: prompt})
}
