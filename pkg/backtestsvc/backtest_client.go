package backtestsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"hedgebacktest/internal/domain"
)

const DefaultTimeout = 60 * time.Second

// ErrNoResults means the service answered 200 but the payload carried no
// monthly results. Distinct from StatusError so callers can tell a transport
// failure from a malformed success.
var ErrNoResults = errors.New("no results returned")

// StatusError is a non-200 answer from the backtest service. The body is
// surfaced verbatim; the service has no structured error schema.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backtest service failed with status code %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	HttpClient *http.Client
	BaseURL    string
}

func NewClient(baseURL string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Client{
		HttpClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
	}
}

// RunResponse is the service's success payload. Unknown fields are ignored;
// Summary is absent for some runs and that is not an error.
type RunResponse struct {
	Status  string                 `json:"status"`
	Results []domain.MonthlyResult `json:"results"`
	Summary *domain.SummaryMetrics `json:"summary,omitempty"`
}

type runPayload struct {
	Ticker   string `json:"ticker"`
	Shares   int    `json:"shares"`
	Strategy string `json:"strategy"`

	OtmPercent         *float64 `json:"otm_percent,omitempty"`
	SpreadWidthPercent *float64 `json:"spread_width_percent,omitempty"`
	UpsideCapPercent   *float64 `json:"upside_cap_percent,omitempty"`
	CoverageRatio      *float64 `json:"coverage_ratio,omitempty"`
}

func newRunPayload(request domain.StrategyRequest) runPayload {
	payload := runPayload{
		Ticker:   request.Ticker,
		Shares:   request.Shares,
		Strategy: string(request.Strategy),
	}

	param := request.ParamOrDefault()
	switch request.Strategy {
	case domain.Strategy_OtmPuts:
		payload.OtmPercent = &param
	case domain.Strategy_PutSpread:
		payload.SpreadWidthPercent = &param
	case domain.Strategy_Collar:
		payload.UpsideCapPercent = &param
	case domain.Strategy_ZeroCostCollar:
		payload.CoverageRatio = &param
	}

	return payload
}

// Run submits one backtest. Single attempt, no retry - a failure is the
// caller's to surface or drop.
func (c Client) Run(ctx context.Context, request domain.StrategyRequest) (*RunResponse, error) {
	if err := request.Valid(); err != nil {
		return nil, fmt.Errorf("invalid backtest request: %w", err)
	}

	payloadBytes, err := json.Marshal(newRunPayload(request))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backtest service: %w", err)
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		return nil, &StatusError{
			StatusCode: response.StatusCode,
			Body:       string(responseBytes),
		}
	}

	var responseJson RunResponse
	if err := json.Unmarshal(responseBytes, &responseJson); err != nil {
		return nil, fmt.Errorf("failed to parse backtest response: %w", err)
	}

	if len(responseJson.Results) == 0 {
		return nil, ErrNoResults
	}

	return &responseJson, nil
}
