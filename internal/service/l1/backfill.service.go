package l1_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/repository"
	"wealthtracker/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BackfillInput struct {
	AssetID        uuid.UUID
	UserID         uuid.UUID
	Symbol         *string
	ReferencePrice *decimal.Decimal
	// IsUpdate writes only today's point for a manually priced asset.
	IsUpdate bool
}

func (in BackfillInput) symbol() (string, bool) {
	if in.Symbol == nil {
		return "", false
	}
	s := strings.TrimSpace(*in.Symbol)
	return s, s != ""
}

func (in BackfillInput) validate() error {
	if in.AssetID == uuid.Nil {
		return domain.NewValidationError("assetID", "is required")
	}
	if in.UserID == uuid.Nil {
		return domain.NewValidationError("userID", "is required")
	}
	if _, ok := in.symbol(); ok {
		return nil
	}
	if in.ReferencePrice == nil {
		return domain.NewValidationError("referencePrice", "is required when no symbol is given")
	}
	if !domain.RoundPrice(*in.ReferencePrice).IsPositive() {
		return domain.NewValidationError("referencePrice", fmt.Sprintf("must be at least 0.01, got %s", in.ReferencePrice.String()))
	}
	return nil
}

type BackfillService interface {
	Backfill(ctx context.Context, in BackfillInput) (*domain.BackfillResult, error)
}

type backfillServiceHandler struct {
	QuoteRepository        repository.QuoteRepository
	PriceHistoryRepository repository.PriceHistoryRepository
	YtdAnchor              time.Time
	BatchSize              int
	Now                    func() time.Time
}

func NewBackfillService(
	quoteRepository repository.QuoteRepository,
	priceHistoryRepository repository.PriceHistoryRepository,
	ytdAnchor time.Time,
	batchSize int,
) BackfillService {
	return backfillServiceHandler{
		QuoteRepository:        quoteRepository,
		PriceHistoryRepository: priceHistoryRepository,
		YtdAnchor:              util.ToDate(ytdAnchor),
		BatchSize:              batchSize,
		Now:                    time.Now,
	}
}

func (h backfillServiceHandler) anchor(today time.Time) time.Time {
	if h.YtdAnchor.After(today) {
		return today
	}
	return h.YtdAnchor
}

// Backfill populates an asset's history from the year-to-date anchor
// through today. Assets with a symbol use the market series, forward
// filled; assets without one are priced flat at the reference price.
// Store failures are reported in the result, not as an error.
func (h backfillServiceHandler) Backfill(ctx context.Context, in BackfillInput) (*domain.BackfillResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	today := util.Today(h.Now())
	if symbol, ok := in.symbol(); ok {
		return h.backfillFromMarket(ctx, in, symbol, today)
	}
	return h.backfillFromReferencePrice(ctx, in, today)
}

func (h backfillServiceHandler) backfillFromMarket(ctx context.Context, in BackfillInput, symbol string, today time.Time) (*domain.BackfillResult, error) {
	log := logger.FromContext(ctx).With("assetID", in.AssetID.String(), "symbol", symbol)

	raw, err := h.QuoteRepository.GetHistoricalSeries(ctx, symbol, h.anchor(today), today)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		log.Infof("no market history available between %s and %s", util.FormatDate(h.anchor(today)), util.FormatDate(today))
		return domain.NewBackfillResult(0, domain.UpsertResult{}, domain.SourceMarketNoData), nil
	}

	filled := ForwardFill(raw, &today)
	records := domain.NewHistoryPoints(in.AssetID, in.UserID, filled)
	res := h.PriceHistoryRepository.UpsertBatch(ctx, records, h.BatchSize)

	log.Infow("backfilled market history",
		"rawPoints", len(raw),
		"filledPoints", len(filled),
		"inserted", res.Inserted,
		"failed", res.Failed,
		"skipped", res.Skipped,
	)
	return domain.NewBackfillResult(len(records), res, domain.SourceMarketHistory), nil
}

func (h backfillServiceHandler) backfillFromReferencePrice(ctx context.Context, in BackfillInput, today time.Time) (*domain.BackfillResult, error) {
	log := logger.FromContext(ctx).With("assetID", in.AssetID.String())

	start, source := h.anchor(today), domain.SourceManualBackfill
	if in.IsUpdate {
		start, source = today, domain.SourceManualUpdate
	}

	series, err := ConstantSeries(start, today, *in.ReferencePrice)
	if err != nil {
		return nil, fmt.Errorf("failed to build reference price series: %w", err)
	}

	records := domain.NewHistoryPoints(in.AssetID, in.UserID, series)
	res := h.PriceHistoryRepository.UpsertBatch(ctx, records, h.BatchSize)

	log.Infow("backfilled reference price history",
		"isUpdate", in.IsUpdate,
		"points", len(records),
		"inserted", res.Inserted,
		"failed", res.Failed,
		"skipped", res.Skipped,
	)
	return domain.NewBackfillResult(len(records), res, source), nil
}
