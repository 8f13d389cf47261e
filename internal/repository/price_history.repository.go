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
	"wealthtracker/internal/logger"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultUpsertBatchSize = 500

type PriceHistoryRepository interface {
	// UpsertBatch writes records in sequential batches. A failed batch is
	// logged and counted, never returned as an error.
	UpsertBatch(ctx context.Context, records []domain.HistoryPoint, batchSize int) domain.UpsertResult
	// GetPreviousDayPrice returns the stored price for the day before
	// today, or nil when there is none.
	GetPreviousDayPrice(ctx context.Context, assetID uuid.UUID, today time.Time) (*decimal.Decimal, error)
	List(ctx context.Context, assetIDs []uuid.UUID, start, end time.Time) ([]model.AssetPriceHistory, error)
}

type priceHistoryRepositoryHandler struct {
	Db  *sql.DB
	Now func() time.Time
}

func NewPriceHistoryRepository(db *sql.DB) PriceHistoryRepository {
	return priceHistoryRepositoryHandler{
		Db:  db,
		Now: time.Now,
	}
}

func upsertStatement(rows []model.AssetPriceHistory) InsertStatement {
	return AssetPriceHistory.
		INSERT(AssetPriceHistory.AllColumns).
		MODELS(rows).
		ON_CONFLICT(
			AssetPriceHistory.AssetID, AssetPriceHistory.Date,
		).DO_UPDATE(
		SET(
			AssetPriceHistory.Price.SET(AssetPriceHistory.EXCLUDED.Price),
			AssetPriceHistory.UserID.SET(AssetPriceHistory.EXCLUDED.UserID),
			AssetPriceHistory.RecordedAt.SET(AssetPriceHistory.EXCLUDED.RecordedAt),
		),
	)
}

func (h priceHistoryRepositoryHandler) UpsertBatch(ctx context.Context, records []domain.HistoryPoint, batchSize int) domain.UpsertResult {
	recordedAt := h.Now().UTC()
	return upsertInBatches(ctx, records, batchSize, func(batch []domain.HistoryPoint) error {
		rows := make([]model.AssetPriceHistory, 0, len(batch))
		for _, r := range batch {
			rows = append(rows, model.AssetPriceHistory{
				AssetID:    r.AssetID,
				UserID:     r.UserID,
				Price:      domain.RoundPrice(r.Price),
				Date:       r.Date,
				RecordedAt: recordedAt,
			})
		}
		_, err := upsertStatement(rows).ExecContext(ctx, h.Db)
		return err
	})
}

type historyKey struct {
	assetID uuid.UUID
	date    string
}

// prepareHistory drops records whose price rounds to zero and keeps the
// last record per (asset, date), returning how many were skipped.
// Postgres rejects a single ON CONFLICT statement that touches the same
// row twice.
func prepareHistory(records []domain.HistoryPoint) ([]domain.HistoryPoint, int) {
	lastIndex := map[historyKey]int{}
	for i, r := range records {
		if !domain.RoundPrice(r.Price).IsPositive() {
			continue
		}
		lastIndex[historyKey{r.AssetID, r.Date.Format(time.DateOnly)}] = i
	}
	if len(lastIndex) == len(records) {
		return records, 0
	}
	out := make([]domain.HistoryPoint, 0, len(lastIndex))
	for i, r := range records {
		if idx, ok := lastIndex[historyKey{r.AssetID, r.Date.Format(time.DateOnly)}]; ok && idx == i {
			out = append(out, r)
		}
	}
	return out, len(records) - len(out)
}

func upsertInBatches(ctx context.Context, records []domain.HistoryPoint, batchSize int, exec func([]domain.HistoryPoint) error) domain.UpsertResult {
	log := logger.FromContext(ctx)
	if batchSize <= 0 {
		batchSize = DefaultUpsertBatchSize
	}

	records, skipped := prepareHistory(records)
	if skipped > 0 {
		log.Warnw("skipped price history records",
			"skipped", skipped,
			"kept", len(records),
		)
	}

	result := domain.UpsertResult{Skipped: skipped}
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		if err := exec(batch); err != nil {
			log.Errorw("failed to upsert price history batch",
				"batchStart", start,
				"batchSize", len(batch),
				"error", err.Error(),
			)
			result = result.Add(domain.UpsertResult{Failed: len(batch)})
			continue
		}
		result = result.Add(domain.UpsertResult{Inserted: len(batch)})
	}

	return result
}

func previousDayPriceStatement(assetID uuid.UUID, today time.Time) SelectStatement {
	return AssetPriceHistory.
		SELECT(AssetPriceHistory.AllColumns).
		WHERE(
			AND(
				AssetPriceHistory.AssetID.EQ(UUID(assetID)),
				AssetPriceHistory.Date.EQ(DateT(today.AddDate(0, 0, -1))),
			),
		).
		LIMIT(1)
}

func (h priceHistoryRepositoryHandler) GetPreviousDayPrice(ctx context.Context, assetID uuid.UUID, today time.Time) (*decimal.Decimal, error) {
	result := model.AssetPriceHistory{}
	err := previousDayPriceStatement(assetID, today).QueryContext(ctx, h.Db, &result)
	return previousDayPrice(assetID, result, err)
}

// previousDayPrice maps a finished query onto GetPreviousDayPrice's
// contract: no row is nil, any other failure is a StoreError.
func previousDayPrice(assetID uuid.UUID, result model.AssetPriceHistory, err error) (*decimal.Decimal, error) {
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "get previous day price",
			Err: fmt.Errorf("failed to query price for %s: %w", assetID.String(), err),
		}
	}

	return &result.Price, nil
}

func (h priceHistoryRepositoryHandler) List(ctx context.Context, assetIDs []uuid.UUID, start, end time.Time) ([]model.AssetPriceHistory, error) {
	if len(assetIDs) == 0 {
		return []model.AssetPriceHistory{}, nil
	}

	ids := make([]Expression, 0, len(assetIDs))
	for _, id := range assetIDs {
		ids = append(ids, UUID(id))
	}

	query := AssetPriceHistory.
		SELECT(AssetPriceHistory.AllColumns).
		WHERE(
			AND(
				AssetPriceHistory.AssetID.IN(ids...),
				AssetPriceHistory.Date.BETWEEN(DateT(start), DateT(end)),
			),
		).
		ORDER_BY(
			AssetPriceHistory.AssetID.ASC(),
			AssetPriceHistory.Date.ASC(),
		)

	result := []model.AssetPriceHistory{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "list price history",
			Err: err,
		}
	}

	return result, nil
}
