package api

import (
	"errors"
	"fmt"

	"hedgebacktest/internal/app"
	"hedgebacktest/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompareRequest struct {
	Ticker string `json:"ticker"`
	Shares int    `json:"shares"`
}

type CompareResponse struct {
	Rows   []domain.ComparisonRow `json:"rows"`
	Failed []app.StrategyFailure  `json:"failed"`
	Best   *domain.ComparisonRow  `json:"best,omitempty"`
}

func (m ApiHandler) compare(c *gin.Context) {
	var requestBody CompareRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	result, err := m.CompareHandler.CompareAll(c.Request.Context(), app.CompareInput{
		Ticker: requestBody.Ticker,
		Shares: requestBody.Shares,
	})
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	best, err := app.Rank(result.Rows)
	if err != nil && !errors.Is(err, app.ErrNoRows) {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, CompareResponse{
		Rows:   result.Rows,
		Failed: result.Failed,
		Best:   best,
	})
}
