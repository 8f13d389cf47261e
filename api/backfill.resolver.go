package api

import (
	"fmt"
	"net/http"

	"wealthtracker/internal/domain"
	l1_service "wealthtracker/internal/service/l1"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type backfillRequest struct {
	AssetID        uuid.UUID        `json:"assetID"`
	Symbol         *string          `json:"symbol"`
	ReferencePrice *decimal.Decimal `json:"referencePrice"`
	IsUpdate       bool             `json:"isUpdate"`
}

func (m ApiHandler) backfill(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	var req backfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, http.StatusBadRequest)
		return
	}
	if req.AssetID == uuid.Nil {
		returnErrorJson(domain.NewValidationError("assetID", "is required"), c)
		return
	}

	ctx := c.Request.Context()
	asset, err := m.AssetRepository.Get(ctx, req.AssetID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	// other users' assets look the same as missing ones
	if !caller.Elevated && asset.UserID != caller.UserID {
		returnErrorJson(fmt.Errorf("asset %s: %w", req.AssetID, domain.ErrAssetNotFound), c)
		return
	}

	in := l1_service.BackfillInput{
		AssetID:        asset.AssetID,
		UserID:         asset.UserID,
		Symbol:         req.Symbol,
		ReferencePrice: req.ReferencePrice,
		IsUpdate:       req.IsUpdate,
	}
	if in.Symbol == nil && in.ReferencePrice == nil {
		in.Symbol = asset.Symbol
		if in.Symbol == nil && asset.CurrentPrice.IsPositive() {
			price := asset.CurrentPrice
			in.ReferencePrice = &price
		}
	}

	result, err := m.BackfillService.Backfill(ctx, in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
