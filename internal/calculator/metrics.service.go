package calculator

import (
	"fmt"
	"math"

	"wealthtracker/internal/domain"

	"github.com/montanaflynn/stats"
)

// valuations exist for every calendar day, not only trading days
const periodsPerYear = 365

type CalculateMetricsResult struct {
	// fractions, not percent
	AnnualizedStdev float64
	MaxDrawdown     float64
}

// CalculateMetrics needs at least three points, i.e. two daily returns.
// Days following a zero valuation are skipped.
func CalculateMetrics(series []domain.PortfolioValuation) (*CalculateMetricsResult, error) {
	returns := calculateReturns(series)
	if len(returns) < 2 {
		return nil, fmt.Errorf("cannot calculate metrics on < 2 returns")
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stdev: %w", err)
	}

	return &CalculateMetricsResult{
		AnnualizedStdev: stdev * math.Sqrt(periodsPerYear),
		MaxDrawdown:     maxDrawdown(series),
	}, nil
}

func calculateReturns(series []domain.PortfolioValuation) []float64 {
	returns := []float64{}
	for i := 1; i < len(series); i++ {
		prev := series[i-1].TotalValue
		if prev.IsZero() {
			continue
		}
		returns = append(returns, series[i].TotalValue.Sub(prev).Div(prev).InexactFloat64())
	}
	return returns
}

// maxDrawdown is the largest peak-to-trough fall as a fraction of the peak.
func maxDrawdown(series []domain.PortfolioValuation) float64 {
	peak := 0.0
	worst := 0.0
	for _, v := range series {
		value := v.TotalValue.InexactFloat64()
		if value > peak {
			peak = value
		}
		if peak > 0 {
			if dd := (peak - value) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
