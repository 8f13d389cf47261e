package repository

import (
	"context"
	"fmt"
	"time"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	"wealthtracker/pkg/retry"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

const SourceAlpaca = "alpaca"

type latestQuoteGetter interface {
	GetLatestQuotes(symbols []string, req marketdata.GetLatestQuoteRequest) (map[string]marketdata.Quote, error)
}

// alpacaQuoteRepositoryHandler prices symbols from Alpaca's latest quote
// and leaves daily history to another source.
type alpacaQuoteRepositoryHandler struct {
	MdClient latestQuoteGetter
	Retry    *retry.Handler
	History  QuoteRepository
}

func NewAlpacaQuoteRepository(apiKey, apiSecret, endpoint string, retryHandler *retry.Handler, history QuoteRepository) QuoteRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaQuoteRepositoryHandler{
		MdClient: mdClient,
		Retry:    retryHandler,
		History:  history,
	}
}

func (h alpacaQuoteRepositoryHandler) GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	log := logger.FromContext(ctx)
	symbol, err := cleanSymbol(symbol)
	if err != nil {
		return nil, err
	}

	var quote *marketdata.Quote
	attempts, err := h.Retry.Do(ctx, func(ctx context.Context) error {
		results, err := h.MdClient.GetLatestQuotes([]string{symbol}, marketdata.GetLatestQuoteRequest{})
		if err != nil {
			return fmt.Errorf("failed to get latest quote: %w", err)
		}
		if q, ok := results[symbol]; ok {
			quote = &q
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ExternalSourceError{
			Source:   SourceAlpaca,
			Symbol:   symbol,
			Attempts: attempts,
			Err:      err,
		}
	}
	if quote == nil {
		return nil, nil
	}

	// bid is zero outside market hours for thin books
	for _, p := range []float64{quote.BidPrice, quote.AskPrice} {
		if p > 0 {
			price := decimal.NewFromFloat(p)
			return &price, nil
		}
	}
	log.Warnf("alpaca returned no usable price for %s", symbol)
	return nil, nil
}

func (h alpacaQuoteRepositoryHandler) GetHistoricalSeries(ctx context.Context, symbol string, start, end time.Time) ([]domain.HistoricalDataPoint, error) {
	return h.History.GetHistoricalSeries(ctx, symbol, start, end)
}
