package app

import (
	"context"
	"errors"
	"fmt"

	"hedgebacktest/internal/calculator"
	"hedgebacktest/internal/domain"
	"hedgebacktest/internal/logger"
	"hedgebacktest/pkg/backtestsvc"

	"golang.org/x/sync/errgroup"
)

// ErrNoRows means every run in a comparison failed, so there is nothing to
// rank. Callers render the failure list instead.
var ErrNoRows = errors.New("no comparison rows to rank")

// BacktestRunner is the slice of the service client the aggregator needs.
type BacktestRunner interface {
	Run(ctx context.Context, request domain.StrategyRequest) (*backtestsvc.RunResponse, error)
}

type CompareHandler struct {
	BacktestClient BacktestRunner
}

type CompareInput struct {
	Ticker string
	Shares int
	// Params overrides a strategy's tunable; strategies not present use
	// their defaults.
	Params map[domain.Strategy]float64
}

// StrategyFailure records a run that was dropped from the comparison. The
// drop is non-fatal but observable.
type StrategyFailure struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}

type ComparisonResult struct {
	Rows   []domain.ComparisonRow `json:"rows"`
	Failed []StrategyFailure      `json:"failed"`
}

// CompareAll runs the Buy & Hold baseline plus every hedging strategy and
// collects one comparison row per successful run. Runs are independent, so
// they go out concurrently; row order stays deterministic (Buy & Hold first,
// then strategy order). A run that fails, or succeeds without a summary,
// contributes a StrategyFailure instead of a row.
func (h CompareHandler) CompareAll(ctx context.Context, in CompareInput) (*ComparisonResult, error) {
	baseRequest := domain.StrategyRequest{
		Ticker:   in.Ticker,
		Shares:   in.Shares,
		Strategy: domain.Strategy_AtmPuts,
	}
	if err := baseRequest.Valid(); err != nil {
		return nil, fmt.Errorf("invalid comparison input: %w", err)
	}

	numRuns := 1 + len(domain.AllStrategies)
	rowSlots := make([]*domain.ComparisonRow, numRuns)
	failSlots := make([]*StrategyFailure, numRuns)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		row, err := h.runBuyAndHold(groupCtx, in)
		if err != nil {
			failSlots[0] = &StrategyFailure{
				Strategy: domain.BuyAndHoldName,
				Reason:   err.Error(),
			}
			return nil
		}
		rowSlots[0] = row
		return nil
	})

	for i, strategy := range domain.AllStrategies {
		strategy := strategy
		slot := i + 1
		group.Go(func() error {
			row, err := h.runStrategy(groupCtx, in, strategy)
			if err != nil {
				failSlots[slot] = &StrategyFailure{
					Strategy: strategy.DisplayName(),
					Reason:   err.Error(),
				}
				return nil
			}
			rowSlots[slot] = row
			return nil
		})
	}

	// goroutines record failures instead of returning them
	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := &ComparisonResult{
		Rows:   []domain.ComparisonRow{},
		Failed: []StrategyFailure{},
	}
	for _, row := range rowSlots {
		if row != nil {
			out.Rows = append(out.Rows, *row)
		}
	}
	for _, failure := range failSlots {
		if failure != nil {
			logger.Warn("dropping %s from comparison: %s", failure.Strategy, failure.Reason)
			out.Failed = append(out.Failed, *failure)
		}
	}

	return out, nil
}

// runBuyAndHold calls any strategy (atm puts) and reduces only the stock_pnl
// column, giving the unhedged baseline.
func (h CompareHandler) runBuyAndHold(ctx context.Context, in CompareInput) (*domain.ComparisonRow, error) {
	response, err := h.BacktestClient.Run(ctx, domain.StrategyRequest{
		Ticker:   in.Ticker,
		Shares:   in.Shares,
		Strategy: domain.Strategy_AtmPuts,
	})
	if err != nil {
		return nil, err
	}

	summary, err := calculator.BuyAndHoldSummary(response.Results)
	if err != nil {
		return nil, err
	}

	return &domain.ComparisonRow{
		Strategy:       domain.BuyAndHoldName,
		FinalPnl:       summary.TotalStockPl,
		BuyAndHoldPnl:  summary.TotalStockPl,
		HedgePnl:       0,
		WinRatePercent: summary.WinRatePercent,
		MaxDrawdown:    summary.MaxDrawdown,
		Volatility:     summary.MonthlyVolatility,
		RiskAdjusted: calculator.RiskAdjusted(
			summary.AvgMonthlyStrategyPl,
			summary.MonthlyVolatility,
		),
	}, nil
}

func (h CompareHandler) runStrategy(
	ctx context.Context,
	in CompareInput,
	strategy domain.Strategy,
) (*domain.ComparisonRow, error) {
	request := domain.StrategyRequest{
		Ticker:   in.Ticker,
		Shares:   in.Shares,
		Strategy: strategy,
	}
	if param, ok := in.Params[strategy]; ok {
		request.Param = &param
	}

	response, err := h.BacktestClient.Run(ctx, request)
	if err != nil {
		return nil, err
	}
	if response.Summary == nil {
		return nil, fmt.Errorf("response missing summary")
	}

	summary := response.Summary
	return &domain.ComparisonRow{
		Strategy:       strategy.DisplayName(),
		FinalPnl:       summary.TotalStrategyPl,
		BuyAndHoldPnl:  summary.TotalStockPl,
		HedgePnl:       summary.TotalHedgePl,
		WinRatePercent: summary.WinRatePercent,
		MaxDrawdown:    summary.MaxDrawdown,
		Volatility:     summary.MonthlyVolatility,
		RiskAdjusted: calculator.RiskAdjusted(
			summary.AvgMonthlyStrategyPl,
			summary.MonthlyVolatility,
		),
	}, nil
}

// Rank picks the row with the highest risk-adjusted ratio. Ties keep the
// first-seen row.
func Rank(rows []domain.ComparisonRow) (*domain.ComparisonRow, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	best := rows[0]
	for _, row := range rows[1:] {
		if row.RiskAdjusted > best.RiskAdjusted {
			best = row
		}
	}
	return &best, nil
}
