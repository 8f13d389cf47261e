package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PortfolioValuation struct {
	Date       time.Time       `json:"date"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendNeutral  Trend = "neutral"
)

// DefaultTrendThresholdPct is the half-width of the neutral band, in percent.
const DefaultTrendThresholdPct = 0.1

type Performance struct {
	StartValue     decimal.Decimal `json:"startValue"`
	EndValue       decimal.Decimal `json:"endValue"`
	AbsoluteChange decimal.Decimal `json:"absoluteChange"`
	PercentChange  float64         `json:"percentChange"`
	Trend          Trend           `json:"trend"`
	High           decimal.Decimal `json:"high"`
	Low            decimal.Decimal `json:"low"`
	// annualized stdev of daily returns, in percent
	Volatility *float64 `json:"volatility"`
	// largest peak-to-trough fall, in percent
	MaxDrawdown *float64 `json:"maxDrawdown"`
}

type AllocationSlice struct {
	Key    string          `json:"key"`
	Value  decimal.Decimal `json:"value"`
	Weight float64         `json:"weight"`
}

type Allocation struct {
	Total      decimal.Decimal   `json:"total"`
	ByCategory []AllocationSlice `json:"byCategory"`
	ByRegion   []AllocationSlice `json:"byRegion"`
	BySector   []AllocationSlice `json:"bySector"`
}

type PortfolioReport struct {
	UserID      uuid.UUID            `json:"userID"`
	Period      LookbackPeriod       `json:"period"`
	Start       time.Time            `json:"start"`
	End         time.Time            `json:"end"`
	Series      []PortfolioValuation `json:"series"`
	Performance *Performance         `json:"performance"`
	Allocation  Allocation           `json:"allocation"`
}

type LookbackPeriod string

const (
	LookbackOneWeek     LookbackPeriod = "1w"
	LookbackOneMonth    LookbackPeriod = "1m"
	LookbackThreeMonths LookbackPeriod = "3m"
	LookbackSixMonths   LookbackPeriod = "6m"
	LookbackYTD         LookbackPeriod = "ytd"
	LookbackOneYear     LookbackPeriod = "1y"
	LookbackAll         LookbackPeriod = "all"
)

func ParseLookbackPeriod(s string) (LookbackPeriod, error) {
	if s == "" {
		return LookbackThreeMonths, nil
	}
	p := LookbackPeriod(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case LookbackOneWeek, LookbackOneMonth, LookbackThreeMonths, LookbackSixMonths, LookbackYTD, LookbackOneYear, LookbackAll:
		return p, nil
	}
	return "", NewValidationError("period", fmt.Sprintf("unsupported lookback %q", s))
}

// Start returns the first date of the window ending on today. For
// LookbackAll the caller's earliest known date is used.
func (p LookbackPeriod) Start(today, earliest time.Time) time.Time {
	switch p {
	case LookbackOneWeek:
		return today.AddDate(0, 0, -7)
	case LookbackOneMonth:
		return today.AddDate(0, -1, 0)
	case LookbackSixMonths:
		return today.AddDate(0, -6, 0)
	case LookbackYTD:
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	case LookbackOneYear:
		return today.AddDate(-1, 0, 0)
	case LookbackAll:
		if earliest.IsZero() || earliest.After(today) {
			return today
		}
		return earliest
	default:
		return today.AddDate(0, -3, 0)
	}
}
