package l1_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wealthtracker/internal/domain"
	mock_repository "wealthtracker/internal/repository/mocks"
	"wealthtracker/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestBackfillHandler(ctrl *gomock.Controller, now time.Time) (backfillServiceHandler, *mock_repository.MockQuoteRepository, *mock_repository.MockPriceHistoryRepository) {
	quoteRepository := mock_repository.NewMockQuoteRepository(ctrl)
	historyRepository := mock_repository.NewMockPriceHistoryRepository(ctrl)
	h := backfillServiceHandler{
		QuoteRepository:        quoteRepository,
		PriceHistoryRepository: historyRepository,
		YtdAnchor:              util.NewDate(2025, 1, 2),
		BatchSize:              500,
		Now: func() time.Time {
			return now
		},
	}
	return h, quoteRepository, historyRepository
}

func decPtr(i int64) *decimal.Decimal {
	d := decimal.NewFromInt(i)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func Test_backfillServiceHandler_Backfill(t *testing.T) {
	ctx := context.Background()
	assetID := uuid.New()
	userID := uuid.New()

	t.Run("savings creation backfills anchor through today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, _, historyRepository := newTestBackfillHandler(ctrl, time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC))

		historyRepository.EXPECT().
			UpsertBatch(ctx, gomock.Any(), 500).
			DoAndReturn(func(ctx context.Context, records []domain.HistoryPoint, batchSize int) domain.UpsertResult {
				require.Len(t, records, 151)
				require.Equal(t, util.NewDate(2025, 1, 2), records[0].Date)
				require.Equal(t, util.NewDate(2025, 6, 1), records[150].Date)
				for _, r := range records {
					require.Equal(t, assetID, r.AssetID)
					require.Equal(t, userID, r.UserID)
					require.True(t, decimal.NewFromInt(500).Equal(r.Price))
				}
				return domain.UpsertResult{Inserted: len(records)}
			})

		result, err := h.Backfill(ctx, BackfillInput{
			AssetID:        assetID,
			UserID:         userID,
			ReferencePrice: decPtr(500),
		})
		require.NoError(t, err)
		require.Equal(t, &domain.BackfillResult{
			Success:     true,
			Inserted:    151,
			Failed:      0,
			TotalPoints: 151,
			Source:      domain.SourceManualBackfill,
		}, result)
	})

	t.Run("savings update writes only today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, _, historyRepository := newTestBackfillHandler(ctrl, time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC))

		historyRepository.EXPECT().
			UpsertBatch(ctx, gomock.Any(), 500).
			DoAndReturn(func(ctx context.Context, records []domain.HistoryPoint, batchSize int) domain.UpsertResult {
				require.Len(t, records, 1)
				require.Equal(t, util.NewDate(2025, 7, 1), records[0].Date)
				require.True(t, decimal.NewFromInt(510).Equal(records[0].Price))
				return domain.UpsertResult{Inserted: 1}
			})

		result, err := h.Backfill(ctx, BackfillInput{
			AssetID:        assetID,
			UserID:         userID,
			ReferencePrice: decPtr(510),
			IsUpdate:       true,
		})
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Equal(t, 1, result.Inserted)
		require.Equal(t, 1, result.TotalPoints)
		require.Equal(t, domain.SourceManualUpdate, result.Source)
	})

	t.Run("market series is forward filled to today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, quoteRepository, historyRepository := newTestBackfillHandler(ctrl, time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC))

		quoteRepository.EXPECT().
			GetHistoricalSeries(ctx, "AAPL", util.NewDate(2025, 1, 2), util.NewDate(2025, 1, 6)).
			Return([]domain.HistoricalDataPoint{
				{Date: util.NewDate(2025, 1, 2), Price: decimal.RequireFromString("243.849")},
				{Date: util.NewDate(2025, 1, 3), Price: decimal.RequireFromString("243.36")},
			}, nil)
		historyRepository.EXPECT().
			UpsertBatch(ctx, gomock.Any(), 500).
			DoAndReturn(func(ctx context.Context, records []domain.HistoryPoint, batchSize int) domain.UpsertResult {
				require.Len(t, records, 5)
				require.Equal(t, "243.85", records[0].Price.StringFixed(2))
				for _, r := range records[1:] {
					require.Equal(t, "243.36", r.Price.StringFixed(2))
				}
				require.Equal(t, util.NewDate(2025, 1, 6), records[4].Date)
				return domain.UpsertResult{Inserted: 3, Failed: 2}
			})

		result, err := h.Backfill(ctx, BackfillInput{
			AssetID: assetID,
			UserID:  userID,
			Symbol:  strPtr(" AAPL "),
		})
		require.NoError(t, err)
		require.Equal(t, &domain.BackfillResult{
			Success:     false,
			Inserted:    3,
			Failed:      2,
			TotalPoints: 5,
			Source:      domain.SourceMarketHistory,
		}, result)
	})

	t.Run("symbol wins over reference price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, quoteRepository, _ := newTestBackfillHandler(ctrl, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

		quoteRepository.EXPECT().
			GetHistoricalSeries(ctx, "BTC-USD", gomock.Any(), gomock.Any()).
			Return([]domain.HistoricalDataPoint{}, nil)

		result, err := h.Backfill(ctx, BackfillInput{
			AssetID:        assetID,
			UserID:         userID,
			Symbol:         strPtr("BTC-USD"),
			ReferencePrice: decPtr(1),
		})
		require.NoError(t, err)
		require.Equal(t, &domain.BackfillResult{
			Success: true,
			Source:  domain.SourceMarketNoData,
		}, result)
	})

	t.Run("external failure propagates and nothing is written", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, quoteRepository, _ := newTestBackfillHandler(ctrl, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

		quoteRepository.EXPECT().
			GetHistoricalSeries(ctx, "AAPL", gomock.Any(), gomock.Any()).
			Return(nil, &domain.ExternalSourceError{Source: "yahoo", Symbol: "AAPL", Attempts: 3, Err: errors.New("503")})

		_, err := h.Backfill(ctx, BackfillInput{AssetID: assetID, UserID: userID, Symbol: strPtr("AAPL")})
		require.True(t, domain.IsExternalSourceError(err))
	})

	t.Run("anchor in the future collapses to today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, _, historyRepository := newTestBackfillHandler(ctrl, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC))

		historyRepository.EXPECT().
			UpsertBatch(ctx, gomock.Len(1), 500).
			Return(domain.UpsertResult{Inserted: 1})

		result, err := h.Backfill(ctx, BackfillInput{AssetID: assetID, UserID: userID, ReferencePrice: decPtr(5)})
		require.NoError(t, err)
		require.Equal(t, 1, result.TotalPoints)
	})

	t.Run("points the store skipped are reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, quoteRepository, historyRepository := newTestBackfillHandler(ctrl, time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))

		quoteRepository.EXPECT().
			GetHistoricalSeries(ctx, "PENNY", util.NewDate(2025, 1, 2), util.NewDate(2025, 1, 4)).
			Return([]domain.HistoricalDataPoint{
				{Date: util.NewDate(2025, 1, 2), Price: decimal.RequireFromString("0.004")},
				{Date: util.NewDate(2025, 1, 3), Price: decimal.RequireFromString("0.02")},
			}, nil)
		historyRepository.EXPECT().
			UpsertBatch(ctx, gomock.Len(3), 500).
			Return(domain.UpsertResult{Inserted: 2, Skipped: 1})

		result, err := h.Backfill(ctx, BackfillInput{AssetID: assetID, UserID: userID, Symbol: strPtr("PENNY")})
		require.NoError(t, err)
		require.Equal(t, &domain.BackfillResult{
			Success:     true,
			Inserted:    2,
			Skipped:     1,
			TotalPoints: 3,
			Source:      domain.SourceMarketHistory,
		}, result)
		require.Equal(t, result.TotalPoints, result.Inserted+result.Failed+result.Skipped)
	})

	t.Run("validation happens before any I/O", func(t *testing.T) {
		subCent := decimal.RequireFromString("0.004")
		cases := []struct {
			name string
			in   BackfillInput
		}{
			{"missing asset", BackfillInput{UserID: userID, ReferencePrice: decPtr(1)}},
			{"missing user", BackfillInput{AssetID: assetID, ReferencePrice: decPtr(1)}},
			{"no symbol or price", BackfillInput{AssetID: assetID, UserID: userID}},
			{"blank symbol and no price", BackfillInput{AssetID: assetID, UserID: userID, Symbol: strPtr("  ")}},
			{"zero price", BackfillInput{AssetID: assetID, UserID: userID, ReferencePrice: decPtr(0)}},
			{"negative price", BackfillInput{AssetID: assetID, UserID: userID, ReferencePrice: decPtr(-4)}},
			{"price rounds to zero", BackfillInput{AssetID: assetID, UserID: userID, ReferencePrice: &subCent}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				h, _, _ := newTestBackfillHandler(ctrl, time.Now())
				_, err := h.Backfill(ctx, tc.in)
				require.True(t, domain.IsValidationError(err), err)
			})
		}
	})
}
