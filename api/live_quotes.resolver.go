package api

import (
	"fmt"
	"net/http"

	"wealthtracker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const maxLiveQuoteSymbols = 100

type liveQuotesRequest struct {
	Symbols []string `json:"symbols"`
}

type liveQuotesResponse struct {
	Quotes map[string]*decimal.Decimal `json:"quotes"`
}

func (m ApiHandler) liveQuotes(c *gin.Context) {
	var req liveQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, http.StatusBadRequest)
		return
	}
	if len(req.Symbols) == 0 {
		returnErrorJson(domain.NewValidationError("symbols", "must not be empty"), c)
		return
	}
	if len(req.Symbols) > maxLiveQuoteSymbols {
		returnErrorJson(domain.NewValidationError("symbols", fmt.Sprintf("at most %d per request", maxLiveQuoteSymbols)), c)
		return
	}

	quotes := m.RefreshService.GetLiveQuotes(c.Request.Context(), req.Symbols)

	c.JSON(200, liveQuotesResponse{Quotes: quotes})
}
