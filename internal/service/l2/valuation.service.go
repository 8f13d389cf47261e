package l2_service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"wealthtracker/internal/calculator"
	"wealthtracker/internal/db/models/postgres/public/model"
	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/repository"
	l1_service "wealthtracker/internal/service/l1"
	"wealthtracker/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const unknownBucket = "Unknown"

// history is always read from here so that a window starting after the
// last stored point still gets a carried price
var historyEpoch = util.NewDate(1970, 1, 1)

type ValuationService interface {
	GetPortfolioValuation(ctx context.Context, userID uuid.UUID, period domain.LookbackPeriod) (*domain.PortfolioReport, error)
}

type valuationServiceHandler struct {
	AssetRepository        repository.AssetRepository
	PriceHistoryRepository repository.PriceHistoryRepository
	TrendThresholdPct      float64
	Now                    func() time.Time
}

func NewValuationService(
	assetRepository repository.AssetRepository,
	priceHistoryRepository repository.PriceHistoryRepository,
	trendThresholdPct float64,
) ValuationService {
	if trendThresholdPct <= 0 {
		trendThresholdPct = domain.DefaultTrendThresholdPct
	}
	return valuationServiceHandler{
		AssetRepository:        assetRepository,
		PriceHistoryRepository: priceHistoryRepository,
		TrendThresholdPct:      trendThresholdPct,
		Now:                    time.Now,
	}
}

func (h valuationServiceHandler) GetPortfolioValuation(ctx context.Context, userID uuid.UUID, period domain.LookbackPeriod) (*domain.PortfolioReport, error) {
	log := logger.FromContext(ctx)
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("userID", "is required")
	}

	assets, err := h.AssetRepository.List(ctx, repository.AssetListFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	today := util.Today(h.Now())
	assetIDs := make([]uuid.UUID, 0, len(assets))
	for _, a := range assets {
		assetIDs = append(assetIDs, a.AssetID)
	}

	rows, err := h.PriceHistoryRepository.List(ctx, assetIDs, historyEpoch, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}

	histories := map[uuid.UUID][]domain.HistoricalDataPoint{}
	earliest := time.Time{}
	for _, r := range rows {
		histories[r.AssetID] = append(histories[r.AssetID], domain.HistoricalDataPoint{
			Date:  util.ToDate(r.Date),
			Price: r.Price,
		})
		if earliest.IsZero() || r.Date.Before(earliest) {
			earliest = util.ToDate(r.Date)
		}
	}

	start := period.Start(today, earliest)
	series := ComputeValuation(assets, histories, start, today)
	log.Debugf("computed %d valuation points for %d assets", len(series), len(assets))

	return &domain.PortfolioReport{
		UserID:      userID,
		Period:      period,
		Start:       start,
		End:         today,
		Series:      series,
		Performance: ComputePerformance(series, h.TrendThresholdPct),
		Allocation:  ComputeAllocation(assets),
	}, nil
}

// ComputeValuation sums price x quantity per date over [start, end]. Each
// asset's history is forward filled through end; an asset adds nothing on
// dates before its first recorded price. Leading dates where no asset has
// a price are omitted.
func ComputeValuation(assets []model.Asset, histories map[uuid.UUID][]domain.HistoricalDataPoint, start, end time.Time) []domain.PortfolioValuation {
	dates, err := util.DateRange(start, end)
	if err != nil {
		return []domain.PortfolioValuation{}
	}

	totals := make(map[time.Time]decimal.Decimal, len(dates))
	for _, asset := range assets {
		filled := l1_service.ForwardFill(histories[asset.AssetID], &dates[len(dates)-1])
		for _, p := range filled {
			if p.Date.Before(dates[0]) {
				continue
			}
			totals[p.Date] = totals[p.Date].Add(p.Price.Mul(asset.Quantity))
		}
	}

	out := make([]domain.PortfolioValuation, 0, len(dates))
	for _, d := range dates {
		total, ok := totals[d]
		if !ok && len(out) == 0 {
			continue
		}
		out = append(out, domain.PortfolioValuation{
			Date:       d,
			TotalValue: total.Round(domain.PriceDecimalPlaces),
		})
	}
	return out
}

func ClassifyTrend(percentChange, thresholdPct float64) domain.Trend {
	switch {
	case percentChange > thresholdPct:
		return domain.TrendPositive
	case percentChange < -thresholdPct:
		return domain.TrendNegative
	default:
		return domain.TrendNeutral
	}
}

// ComputePerformance compares the first and last points of series. It
// returns nil for an empty series. Volatility and drawdown are only set
// once there are at least two daily returns.
func ComputePerformance(series []domain.PortfolioValuation, thresholdPct float64) *domain.Performance {
	if len(series) == 0 {
		return nil
	}

	first := series[0].TotalValue
	last := series[len(series)-1].TotalValue
	change := last.Sub(first)

	percent := 0.0
	if !first.IsZero() {
		percent = change.Div(first).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	high, low := first, first
	for _, p := range series {
		if p.TotalValue.GreaterThan(high) {
			high = p.TotalValue
		}
		if p.TotalValue.LessThan(low) {
			low = p.TotalValue
		}
	}

	perf := &domain.Performance{
		StartValue:     first,
		EndValue:       last,
		AbsoluteChange: change,
		PercentChange:  percent,
		Trend:          ClassifyTrend(percent, thresholdPct),
		High:           high,
		Low:            low,
	}

	// too few points for dispersion metrics is not an error
	if metrics, err := calculator.CalculateMetrics(series); err == nil {
		volatility := metrics.AnnualizedStdev * 100
		drawdown := metrics.MaxDrawdown * 100
		perf.Volatility = &volatility
		perf.MaxDrawdown = &drawdown
	}

	return perf
}

func assetValue(a model.Asset) decimal.Decimal {
	return a.Quantity.Mul(a.CurrentPrice)
}

func bucket(s *string) string {
	if s == nil || *s == "" {
		return unknownBucket
	}
	return *s
}

func allocationSlices(values map[string]decimal.Decimal, total decimal.Decimal) []domain.AllocationSlice {
	out := make([]domain.AllocationSlice, 0, len(values))
	for k, v := range values {
		weight := 0.0
		if !total.IsZero() {
			weight = v.Div(total).InexactFloat64()
		}
		out = append(out, domain.AllocationSlice{
			Key:    k,
			Value:  v.Round(domain.PriceDecimalPlaces),
			Weight: weight,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ComputeAllocation breaks current holdings value down by category,
// region and sector.
func ComputeAllocation(assets []model.Asset) domain.Allocation {
	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	byRegion := map[string]decimal.Decimal{}
	bySector := map[string]decimal.Decimal{}

	for _, a := range assets {
		v := assetValue(a)
		total = total.Add(v)
		category := a.Category
		if category == "" {
			category = unknownBucket
		}
		byCategory[category] = byCategory[category].Add(v)
		byRegion[bucket(a.Region)] = byRegion[bucket(a.Region)].Add(v)
		bySector[bucket(a.Sector)] = bySector[bucket(a.Sector)].Add(v)
	}

	return domain.Allocation{
		Total:      total.Round(domain.PriceDecimalPlaces),
		ByCategory: allocationSlices(byCategory, total),
		ByRegion:   allocationSlices(byRegion, total),
		BySector:   allocationSlices(bySector, total),
	}
}
