package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wealthtracker/internal/db/models/postgres/public/model"
	. "wealthtracker/internal/db/models/postgres/public/table"
	"wealthtracker/internal/domain"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetListFilter struct {
	// nil lists every user's assets
	UserID   *uuid.UUID
	AssetIDs []uuid.UUID
}

type AssetRepository interface {
	List(ctx context.Context, filter AssetListFilter) ([]model.Asset, error)
	Get(ctx context.Context, assetID uuid.UUID) (*model.Asset, error)
	UpdateCurrentPrice(ctx context.Context, assetID uuid.UUID, price decimal.Decimal, at time.Time) error
}

type assetRepositoryHandler struct {
	Db *sql.DB
}

func NewAssetRepository(db *sql.DB) AssetRepository {
	return assetRepositoryHandler{Db: db}
}

func (h assetRepositoryHandler) List(ctx context.Context, filter AssetListFilter) ([]model.Asset, error) {
	conditions := []BoolExpression{Bool(true)}
	if filter.UserID != nil {
		conditions = append(conditions, Asset.UserID.EQ(UUID(*filter.UserID)))
	}
	if len(filter.AssetIDs) > 0 {
		ids := []Expression{}
		for _, id := range filter.AssetIDs {
			ids = append(ids, UUID(id))
		}
		conditions = append(conditions, Asset.AssetID.IN(ids...))
	}

	query := Asset.
		SELECT(Asset.AllColumns).
		WHERE(AND(conditions...)).
		ORDER_BY(Asset.CreatedAt.ASC(), Asset.AssetID.ASC())

	result := []model.Asset{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "list assets",
			Err: err,
		}
	}

	return result, nil
}

func (h assetRepositoryHandler) Get(ctx context.Context, assetID uuid.UUID) (*model.Asset, error) {
	query := Asset.
		SELECT(Asset.AllColumns).
		WHERE(Asset.AssetID.EQ(UUID(assetID)))

	result := model.Asset{}
	err := query.QueryContext(ctx, h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", assetID.String(), domain.ErrAssetNotFound)
	}
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "get asset",
			Err: fmt.Errorf("failed to get asset %s: %w", assetID.String(), err),
		}
	}

	return &result, nil
}

func (h assetRepositoryHandler) UpdateCurrentPrice(ctx context.Context, assetID uuid.UUID, price decimal.Decimal, at time.Time) error {
	lastUpdated := at.UTC()
	query := Asset.
		UPDATE(Asset.CurrentPrice, Asset.LastUpdated).
		MODEL(model.Asset{
			CurrentPrice: domain.RoundPrice(price),
			LastUpdated:  &lastUpdated,
		}).
		WHERE(Asset.AssetID.EQ(UUID(assetID)))

	result, err := query.ExecContext(ctx, h.Db)
	if err != nil {
		return &domain.StoreError{
			Op:  "update current price",
			Err: fmt.Errorf("failed to update asset %s: %w", assetID.String(), err),
		}
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", assetID.String(), domain.ErrAssetNotFound)
	}

	return nil
}
