package domain

import (
	"fmt"
	"strings"
)

type Strategy string

const (
	Strategy_AtmPuts        Strategy = "rolling_atm_puts"
	Strategy_OtmPuts        Strategy = "rolling_otm_puts"
	Strategy_PutSpread      Strategy = "rolling_put_spread"
	Strategy_Collar         Strategy = "rolling_collar"
	Strategy_ZeroCostCollar Strategy = "rolling_zero_cost_collar"
)

// AllStrategies lists every hedging strategy in the order the comparison
// runs them.
var AllStrategies = []Strategy{
	Strategy_AtmPuts,
	Strategy_OtmPuts,
	Strategy_PutSpread,
	Strategy_Collar,
	Strategy_ZeroCostCollar,
}

// defaults applied when the strategy's tunable is not set
const (
	DefaultOtmPercent         = 5.0
	DefaultSpreadWidthPercent = 5.0
	DefaultUpsideCapPercent   = 10.0
	DefaultCoverageRatio      = 1.0
)

func NewStrategy(s string) (*Strategy, error) {
	for _, strat := range AllStrategies {
		name := string(strat)
		if strings.EqualFold(name, s) ||
			strings.EqualFold(strings.TrimPrefix(name, "rolling_"), s) {
			return &strat, nil
		}
	}
	return nil, fmt.Errorf("could not convert '%s' to known strategy", s)
}

// DisplayName strips the wire prefix for tables and logs.
func (s Strategy) DisplayName() string {
	return strings.TrimPrefix(string(s), "rolling_")
}

// ParamName returns the wire field carrying the strategy's single tunable,
// or "" for strategies without one.
func (s Strategy) ParamName() string {
	switch s {
	case Strategy_OtmPuts:
		return "otm_percent"
	case Strategy_PutSpread:
		return "spread_width_percent"
	case Strategy_Collar:
		return "upside_cap_percent"
	case Strategy_ZeroCostCollar:
		return "coverage_ratio"
	}
	return ""
}

func (s Strategy) DefaultParam() float64 {
	switch s {
	case Strategy_OtmPuts:
		return DefaultOtmPercent
	case Strategy_PutSpread:
		return DefaultSpreadWidthPercent
	case Strategy_Collar:
		return DefaultUpsideCapPercent
	case Strategy_ZeroCostCollar:
		return DefaultCoverageRatio
	}
	return 0
}

func (s Strategy) paramRange() (min float64, max float64) {
	switch s {
	case Strategy_OtmPuts, Strategy_PutSpread:
		return 1, 15
	case Strategy_Collar:
		return 2, 25
	case Strategy_ZeroCostCollar:
		return 0.5, 1.2
	}
	return 0, 0
}

// StrategyRequest is one backtest submission. Param is the strategy's single
// tunable: OTM % for otm_puts, spread width % for put_spread, upside cap %
// for collar, coverage ratio for zero_cost_collar. nil means use the
// strategy default. atm_puts has no tunable.
type StrategyRequest struct {
	Ticker   string
	Shares   int
	Strategy Strategy
	Param    *float64
}

// ParamOrDefault resolves the tunable at payload-construction time.
func (r StrategyRequest) ParamOrDefault() float64 {
	if r.Param != nil {
		return *r.Param
	}
	return r.Strategy.DefaultParam()
}

func (r StrategyRequest) Valid() error {
	if r.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if r.Shares <= 0 {
		return fmt.Errorf("shares must be > 0, got %d", r.Shares)
	}
	if _, err := NewStrategy(string(r.Strategy)); err != nil {
		return err
	}
	if r.Param != nil {
		if r.Strategy == Strategy_AtmPuts {
			return fmt.Errorf("strategy %s does not take a parameter", r.Strategy.DisplayName())
		}
		min, max := r.Strategy.paramRange()
		if *r.Param < min || *r.Param > max {
			return fmt.Errorf(
				"%s must be between %v and %v, got %v",
				r.Strategy.ParamName(), min, max, *r.Param,
			)
		}
	}
	return nil
}
