package domain

// MonthlyResult is one simulated month from the backtest service. The
// service sends more fields than we reduce over; unknown ones are dropped by
// the decoder and the known extras are carried for table rendering.
// Chronological order is significant - cumulative sums assume it.
type MonthlyResult struct {
	Month    string  `json:"month,omitempty"`
	StockPnl float64 `json:"stock_pnl"`
	HedgePnl float64 `json:"hedge_pnl,omitempty"`
	TotalPnl float64 `json:"total_pnl"`
}

// SummaryMetrics is the per-run statistics block. For hedged strategies it
// arrives from the service; for the Buy & Hold baseline it is recomputed
// client-side from the stock_pnl column.
type SummaryMetrics struct {
	Months               int     `json:"months"`
	WinRatePercent       float64 `json:"win_rate_percent"`
	TotalStockPl         float64 `json:"total_stock_pl"`
	TotalHedgePl         float64 `json:"total_hedge_pl"`
	TotalStrategyPl      float64 `json:"total_strategy_pl"`
	MaxDrawdown          float64 `json:"max_drawdown"`
	MonthlyVolatility    float64 `json:"monthly_volatility"`
	AvgMonthlyStrategyPl float64 `json:"avg_monthly_strategy_pl"`
	HedgePctOfStock      float64 `json:"hedge_pct_of_stock"`
}

// BuyAndHoldName labels the synthetic baseline row in comparisons.
const BuyAndHoldName = "Buy & Hold"

// ComparisonRow is one line of the multi-strategy comparison table.
type ComparisonRow struct {
	Strategy       string  `json:"strategy" csv:"Strategy"`
	FinalPnl       float64 `json:"finalPnl" csv:"Final PnL"`
	BuyAndHoldPnl  float64 `json:"buyAndHoldPnl" csv:"Buy & Hold PnL"`
	HedgePnl       float64 `json:"hedgePnl" csv:"Hedge PnL"`
	WinRatePercent float64 `json:"winRatePercent" csv:"Win Rate %"`
	MaxDrawdown    float64 `json:"maxDrawdown" csv:"Max Drawdown"`
	Volatility     float64 `json:"volatility" csv:"Volatility"`
	RiskAdjusted   float64 `json:"riskAdjusted" csv:"Risk-Adjusted"`
}
