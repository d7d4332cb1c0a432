package api

import (
	"errors"
	"fmt"

	"hedgebacktest/internal/calculator"
	"hedgebacktest/internal/domain"
	"hedgebacktest/pkg/backtestsvc"

	"github.com/gin-gonic/gin"
)

// BacktestRequest mirrors the upstream wire contract: one optional
// parameter, keyed by strategy. Fields for other strategies are ignored.
type BacktestRequest struct {
	Ticker             string   `json:"ticker"`
	Shares             int      `json:"shares"`
	Strategy           string   `json:"strategy"`
	OtmPercent         *float64 `json:"otm_percent"`
	SpreadWidthPercent *float64 `json:"spread_width_percent"`
	UpsideCapPercent   *float64 `json:"upside_cap_percent"`
	CoverageRatio      *float64 `json:"coverage_ratio"`
}

type BacktestResponse struct {
	Status     string                 `json:"status"`
	Results    []domain.MonthlyResult `json:"results"`
	Summary    *domain.SummaryMetrics `json:"summary,omitempty"`
	BuyAndHold *domain.SummaryMetrics `json:"buyAndHold"`
}

func (r BacktestRequest) toStrategyRequest() (*domain.StrategyRequest, error) {
	strategy, err := domain.NewStrategy(r.Strategy)
	if err != nil {
		return nil, err
	}

	out := domain.StrategyRequest{
		Ticker:   r.Ticker,
		Shares:   r.Shares,
		Strategy: *strategy,
	}

	switch *strategy {
	case domain.Strategy_OtmPuts:
		out.Param = r.OtmPercent
	case domain.Strategy_PutSpread:
		out.Param = r.SpreadWidthPercent
	case domain.Strategy_Collar:
		out.Param = r.UpsideCapPercent
	case domain.Strategy_ZeroCostCollar:
		out.Param = r.CoverageRatio
	}

	if err := out.Valid(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m ApiHandler) backtest(c *gin.Context) {
	var requestBody BacktestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	request, err := requestBody.toStrategyRequest()
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	response, err := m.BacktestClient.Run(c.Request.Context(), *request)
	if err != nil {
		statusErr := &backtestsvc.StatusError{}
		if errors.As(err, &statusErr) || errors.Is(err, backtestsvc.ErrNoResults) {
			returnErrorJsonCode(err, c, 502)
			return
		}
		returnErrorJson(err, c)
		return
	}

	// the dashboard's buy & hold panel: same series, stock leg only
	buyAndHold, err := calculator.BuyAndHoldSummary(response.Results)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, BacktestResponse{
		Status:     response.Status,
		Results:    response.Results,
		Summary:    response.Summary,
		BuyAndHold: buyAndHold,
	})
}
