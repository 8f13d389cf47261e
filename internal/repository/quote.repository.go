package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/util"
	"wealthtracker/pkg/retry"
	"wealthtracker/pkg/yahoo"

	"github.com/shopspring/decimal"
)

const SourceYahoo = "yahoo"

// QuoteRepository fetches prices from an external market data source.
// A nil price or an empty series means the source had nothing usable and
// is not an error.
type QuoteRepository interface {
	GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error)
	GetHistoricalSeries(ctx context.Context, symbol string, start, end time.Time) ([]domain.HistoricalDataPoint, error)
}

type chartGetter interface {
	GetChart(ctx context.Context, symbol string, params yahoo.ChartParams) (*yahoo.Chart, error)
}

type yahooQuoteRepositoryHandler struct {
	Client chartGetter
	Retry  *retry.Handler
}

func NewYahooQuoteRepository(client *yahoo.Client, retryHandler *retry.Handler) QuoteRepository {
	return yahooQuoteRepositoryHandler{
		Client: client,
		Retry:  retryHandler,
	}
}

func cleanSymbol(symbol string) (string, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return "", domain.NewValidationError("symbol", "must not be blank")
	}
	return s, nil
}

func (h yahooQuoteRepositoryHandler) fetchChart(ctx context.Context, symbol string, params yahoo.ChartParams) (*yahoo.Chart, error) {
	var chart *yahoo.Chart
	attempts, err := h.Retry.Do(ctx, func(ctx context.Context) error {
		c, err := h.Client.GetChart(ctx, symbol, params)
		if errors.Is(err, yahoo.ErrNotFound) {
			chart = nil
			return nil
		}
		var httpErr *yahoo.HTTPError
		if errors.As(err, &httpErr) && !httpErr.Retryable() {
			return retry.Permanent(err)
		}
		if err != nil {
			logger.FromContext(ctx).Debugf("chart request for %s failed, may retry: %s", symbol, err.Error())
			return err
		}
		chart = c
		return nil
	})
	if err != nil {
		return nil, &domain.ExternalSourceError{
			Source:   SourceYahoo,
			Symbol:   symbol,
			Attempts: attempts,
			Err:      err,
		}
	}
	return chart, nil
}

func (h yahooQuoteRepositoryHandler) GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	symbol, err := cleanSymbol(symbol)
	if err != nil {
		return nil, err
	}

	chart, err := h.fetchChart(ctx, symbol, yahoo.ChartParams{Range: "1d"})
	if err != nil {
		return nil, err
	}
	if chart == nil {
		return nil, nil
	}

	p := chart.CurrentPrice()
	if p == nil {
		return nil, nil
	}
	price := decimal.NewFromFloat(*p)
	return &price, nil
}

// GetHistoricalSeries returns one point per calendar date in [start, end],
// sorted ascending. When a date repeats the later observation wins.
func (h yahooQuoteRepositoryHandler) GetHistoricalSeries(ctx context.Context, symbol string, start, end time.Time) ([]domain.HistoricalDataPoint, error) {
	symbol, err := cleanSymbol(symbol)
	if err != nil {
		return nil, err
	}
	start, end = util.ToDate(start), util.ToDate(end)
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}

	chart, err := h.fetchChart(ctx, symbol, yahoo.ChartParams{
		Start: start,
		End:   end.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}
	if chart == nil {
		return []domain.HistoricalDataPoint{}, nil
	}

	return seriesFromBars(chart.Bars(), start, end), nil
}

func seriesFromBars(bars []yahoo.Bar, start, end time.Time) []domain.HistoricalDataPoint {
	byDate := map[time.Time]decimal.Decimal{}
	for _, bar := range bars {
		date := util.ToDate(bar.Time)
		if date.Before(start) || date.After(end) {
			continue
		}
		byDate[date] = decimal.NewFromFloat(bar.Close)
	}

	out := make([]domain.HistoricalDataPoint, 0, len(byDate))
	for date, price := range byDate {
		out = append(out, domain.HistoricalDataPoint{
			Date:  date,
			Price: price,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
