package calculator

import (
	"fmt"
	"hedgebacktest/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// BuyAndHoldSummary reduces the stock_pnl column of a monthly series into
// the unhedged baseline metrics. The series must be in chronological order;
// the cumulative drawdown calculation depends on it.
func BuyAndHoldSummary(results []domain.MonthlyResult) (*domain.SummaryMetrics, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("cannot summarize empty result series")
	}

	monthlyStockPnl := make([]float64, len(results))
	for i, r := range results {
		monthlyStockPnl[i] = r.StockPnl
	}

	total, err := stats.Sum(monthlyStockPnl)
	if err != nil {
		return nil, fmt.Errorf("failed to sum stock pnl: %w", err)
	}
	mean, err := stats.Mean(monthlyStockPnl)
	if err != nil {
		return nil, fmt.Errorf("failed to average stock pnl: %w", err)
	}

	// sample stdev, matching the service's monthly_volatility definition.
	// one data point has no deviation to measure
	volatility := 0.0
	if len(monthlyStockPnl) > 1 {
		volatility, err = stats.StandardDeviationSample(monthlyStockPnl)
		if err != nil {
			return nil, fmt.Errorf("failed to compute volatility: %w", err)
		}
	}

	winningMonths := 0
	for _, pnl := range monthlyStockPnl {
		if pnl > 0 {
			winningMonths++
		}
	}

	return &domain.SummaryMetrics{
		Months:               len(results),
		WinRatePercent:       100 * float64(winningMonths) / float64(len(results)),
		TotalStockPl:         total,
		TotalHedgePl:         0,
		TotalStrategyPl:      total,
		MaxDrawdown:          MaxDrawdown(monthlyStockPnl),
		MonthlyVolatility:    volatility,
		AvgMonthlyStrategyPl: mean,
		HedgePctOfStock:      0,
	}, nil
}

// MaxDrawdown is the largest peak-to-trough decline of the cumulative pnl
// series: max over months of runningMax(cumulative) - cumulative. Always >= 0.
func MaxDrawdown(monthlyPnl []float64) float64 {
	cumulative := decimal.Zero
	runningMax := decimal.Zero
	maxDrawdown := decimal.Zero

	for i, pnl := range monthlyPnl {
		cumulative = cumulative.Add(decimal.NewFromFloat(pnl))
		if i == 0 || cumulative.GreaterThan(runningMax) {
			runningMax = cumulative
		}
		if dd := runningMax.Sub(cumulative); dd.GreaterThan(maxDrawdown) {
			maxDrawdown = dd
		}
	}

	return maxDrawdown.InexactFloat64()
}

// RiskAdjusted is mean monthly pnl over its volatility. Zero volatility is a
// defined case (single month, constant series) and yields 0, not an error.
func RiskAdjusted(avgMonthlyPnl, volatility float64) float64 {
	if volatility <= 0 {
		return 0
	}
	return avgMonthlyPnl / volatility
}

// CumulativeSeries returns running sums of the given monthly column, used by
// the CLI's cumulative strategy-vs-stock view.
func CumulativeSeries(monthlyPnl []float64) []float64 {
	out := make([]float64, len(monthlyPnl))
	cumulative := decimal.Zero
	for i, pnl := range monthlyPnl {
		cumulative = cumulative.Add(decimal.NewFromFloat(pnl))
		out[i] = cumulative.InexactFloat64()
	}
	return out
}
