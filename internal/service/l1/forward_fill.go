package l1_service

import (
	"sort"
	"time"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/util"

	"github.com/shopspring/decimal"
)

// normalizeSeries truncates dates to UTC calendar dates, sorts ascending
// and keeps the last point for any repeated date.
func normalizeSeries(series []domain.HistoricalDataPoint) []domain.HistoricalDataPoint {
	out := make([]domain.HistoricalDataPoint, len(series))
	for i, p := range series {
		out[i] = domain.HistoricalDataPoint{
			Date:  util.ToDate(p.Date),
			Price: p.Price,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	deduped := out[:0]
	for _, p := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(p.Date) {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}

// ForwardFill returns one point per calendar date from the first input
// date through the later of the last input date and fillToDate. Dates
// without an observation carry the most recent earlier price. Nothing is
// ever filled backwards, so dates before the first observation are absent.
func ForwardFill(series []domain.HistoricalDataPoint, fillToDate *time.Time) []domain.HistoricalDataPoint {
	if len(series) == 0 {
		return []domain.HistoricalDataPoint{}
	}

	sparse := normalizeSeries(series)
	first := sparse[0].Date
	end := sparse[len(sparse)-1].Date
	if fillToDate != nil {
		if fillTo := util.ToDate(*fillToDate); fillTo.After(end) {
			end = fillTo
		}
	}

	days := int(end.Sub(first).Hours()/24) + 1
	out := make([]domain.HistoricalDataPoint, 0, days)

	i := 0
	last := sparse[0].Price
	for d := first; !d.After(end); d = d.AddDate(0, 0, 1) {
		if i < len(sparse) && sparse[i].Date.Equal(d) {
			last = sparse[i].Price
			i++
		}
		out = append(out, domain.HistoricalDataPoint{
			Date:  d,
			Price: last,
		})
	}

	return out
}

// ConstantSeries prices every date in [start, end] at price.
func ConstantSeries(start, end time.Time, price decimal.Decimal) ([]domain.HistoricalDataPoint, error) {
	dates, err := util.DateRange(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistoricalDataPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.HistoricalDataPoint{
			Date:  d,
			Price: price,
		})
	}
	return out, nil
}
