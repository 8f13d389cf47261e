package integration_tests

import (
	"context"
	"strings"
	"time"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/repository"
	"wealthtracker/internal/util"

	"github.com/shopspring/decimal"
)

// NewMockQuoteRepositoryForTests serves fixed prices so the test
// environment never reaches the network. History has one bar per
// weekday, drifting up a cent a day from 90% of the latest price.
func NewMockQuoteRepositoryForTests() repository.QuoteRepository {
	return mockQuoteRepositoryForTestsHandler{
		prices: map[string]decimal.Decimal{
			"AAPL": decimal.RequireFromString("212.35"),
			"META": decimal.RequireFromString("702.12"),
			"GOOG": decimal.RequireFromString("178.53"),
		},
	}
}

type mockQuoteRepositoryForTestsHandler struct {
	prices map[string]decimal.Decimal
}

func (m mockQuoteRepositoryForTestsHandler) GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	p, ok := m.prices[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m mockQuoteRepositoryForTestsHandler) GetHistoricalSeries(ctx context.Context, symbol string, start, end time.Time) ([]domain.HistoricalDataPoint, error) {
	latest, ok := m.prices[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return []domain.HistoricalDataPoint{}, nil
	}

	dates, err := util.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	base := latest.Mul(decimal.RequireFromString("0.9"))
	cent := decimal.RequireFromString("0.01")
	out := []domain.HistoricalDataPoint{}
	for i, d := range dates {
		if util.IsWeekend(d) {
			continue
		}
		out = append(out, domain.HistoricalDataPoint{
			Date:  d,
			Price: base.Add(cent.Mul(decimal.NewFromInt(int64(i)))),
		})
	}
	return out, nil
}
