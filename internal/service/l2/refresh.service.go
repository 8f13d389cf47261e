package l2_service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"wealthtracker/internal/db/models/postgres/public/model"
	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/repository"
	"wealthtracker/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefreshService interface {
	// RefreshPrices reprices every asset visible to caller, one at a
	// time. A failing asset is recorded and skipped.
	RefreshPrices(ctx context.Context, caller domain.Caller) (*domain.RefreshResult, error)
	// GetLiveQuotes fetches current prices concurrently without
	// persisting anything. Symbols without a price map to nil.
	GetLiveQuotes(ctx context.Context, symbols []string) map[string]*decimal.Decimal
}

type refreshServiceHandler struct {
	AssetRepository        repository.AssetRepository
	PriceHistoryRepository repository.PriceHistoryRepository
	QuoteRepository        repository.QuoteRepository
	RateLimitDelay         time.Duration
	LiveQuoteWorkers       int
	Now                    func() time.Time
}

func NewRefreshService(
	assetRepository repository.AssetRepository,
	priceHistoryRepository repository.PriceHistoryRepository,
	quoteRepository repository.QuoteRepository,
	rateLimitDelay time.Duration,
	liveQuoteWorkers int,
) RefreshService {
	return refreshServiceHandler{
		AssetRepository:        assetRepository,
		PriceHistoryRepository: priceHistoryRepository,
		QuoteRepository:        quoteRepository,
		RateLimitDelay:         rateLimitDelay,
		LiveQuoteWorkers:       liveQuoteWorkers,
		Now:                    time.Now,
	}
}

func assetSymbol(a model.Asset) (string, bool) {
	if a.Symbol == nil {
		return "", false
	}
	s := strings.TrimSpace(*a.Symbol)
	return s, s != ""
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h refreshServiceHandler) RefreshPrices(ctx context.Context, caller domain.Caller) (*domain.RefreshResult, error) {
	log := logger.FromContext(ctx)

	filter := repository.AssetListFilter{}
	if !caller.Elevated {
		if caller.UserID == uuid.Nil {
			return nil, domain.NewValidationError("userID", "is required")
		}
		filter.UserID = &caller.UserID
	}

	assets, err := h.AssetRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	now := h.Now()
	today := util.Today(now)
	result := domain.NewRefreshResult()
	externalFetches := 0

	for _, asset := range assets {
		price, err := h.resolvePrice(ctx, asset, today, &externalFetches)
		if err == nil {
			err = h.applyPrice(ctx, asset, *price, now, today)
		}
		if err != nil {
			log.Warnw("failed to refresh asset price",
				"assetID", asset.AssetID.String(),
				"error", err.Error(),
			)
			result.AddFailure(domain.RefreshFailure{
				AssetID: asset.AssetID,
				Symbol:  asset.Symbol,
				Reason:  err.Error(),
			})
			continue
		}
		result.AddSuccess(domain.RefreshSuccess{
			AssetID: asset.AssetID,
			Symbol:  asset.Symbol,
			Price:   *price,
		})
	}

	log.Infow("refreshed asset prices",
		"elevated", caller.Elevated,
		"assets", len(assets),
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

// resolvePrice returns a price that is still > 0 after rounding to the
// stored precision, or an error describing why there is none. Market
// fetches after the first wait RateLimitDelay.
func (h refreshServiceHandler) resolvePrice(ctx context.Context, asset model.Asset, today time.Time, externalFetches *int) (*decimal.Decimal, error) {
	var (
		price *decimal.Decimal
		err   error
	)

	if symbol, ok := assetSymbol(asset); ok {
		if *externalFetches > 0 {
			if err := sleepCtx(ctx, h.RateLimitDelay); err != nil {
				return nil, fmt.Errorf("refresh cancelled: %w", err)
			}
		}
		*externalFetches++

		price, err = h.QuoteRepository.GetCurrentPrice(ctx, symbol)
		if err != nil {
			return nil, err
		}
	} else {
		price, err = h.PriceHistoryRepository.GetPreviousDayPrice(ctx, asset.AssetID, today)
		if err != nil {
			return nil, err
		}
		if price == nil {
			current := asset.CurrentPrice
			price = &current
		}
	}

	if price == nil || !price.IsPositive() {
		return nil, fmt.Errorf("no valid price available")
	}
	rounded := domain.RoundPrice(*price)
	if !rounded.IsPositive() {
		return nil, fmt.Errorf("no valid price available: %s rounds to %s", price.String(), rounded.StringFixed(domain.PriceDecimalPlaces))
	}
	return &rounded, nil
}

// applyPrice writes today's history point before the asset row, so an
// asset whose history write fails keeps its previous current_price.
func (h refreshServiceHandler) applyPrice(ctx context.Context, asset model.Asset, price decimal.Decimal, now, today time.Time) error {
	res := h.PriceHistoryRepository.UpsertBatch(ctx, []domain.HistoryPoint{{
		AssetID: asset.AssetID,
		UserID:  asset.UserID,
		Price:   price,
		Date:    today,
	}}, 1)
	if res.Failed > 0 {
		return &domain.StoreError{
			Op:  "upsert today's history point",
			Err: fmt.Errorf("%d record(s) failed", res.Failed),
		}
	}

	if err := h.AssetRepository.UpdateCurrentPrice(ctx, asset.AssetID, price, now); err != nil {
		return fmt.Errorf("failed to update current price: %w", err)
	}
	return nil
}

func uniqueSymbols(symbols []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (h refreshServiceHandler) GetLiveQuotes(ctx context.Context, symbols []string) map[string]*decimal.Decimal {
	log := logger.FromContext(ctx)
	symbols = uniqueSymbols(symbols)

	numGoroutines := h.LiveQuoteWorkers
	if numGoroutines <= 0 {
		numGoroutines = 1
	}
	if numGoroutines > len(symbols) {
		numGoroutines = len(symbols)
	}

	inputCh := make(chan string, len(symbols))
	for _, s := range symbols {
		inputCh <- s
	}
	close(inputCh)

	var mu sync.Mutex
	out := make(map[string]*decimal.Decimal, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range inputCh {
				var price *decimal.Decimal
				if ctx.Err() == nil {
					p, err := h.QuoteRepository.GetCurrentPrice(ctx, symbol)
					if err != nil {
						log.Warnf("failed to get live quote for %s: %s", symbol, err.Error())
					} else {
						price = p
					}
				}
				mu.Lock()
				out[symbol] = price
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return out
}
