package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"hedgebacktest/internal/domain"
	"hedgebacktest/pkg/backtestsvc"

	"github.com/stretchr/testify/require"
)

type runPayload struct {
	Ticker   string `json:"ticker"`
	Strategy string `json:"strategy"`
}

// backtestServer answers every strategy with a canned summary unless the
// strategy is listed in fail (500) or noSummary (200 without summary block).
func backtestServer(t *testing.T, fail map[string]bool, noSummary map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload runPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		if fail[payload.Strategy] {
			w.WriteHeader(500)
			w.Write([]byte("pricing engine unavailable"))
			return
		}

		results := `[
			{"month": "2023-01", "stock_pnl": 100, "hedge_pnl": -10, "total_pnl": 90},
			{"month": "2023-02", "stock_pnl": -50, "hedge_pnl": 40, "total_pnl": -10},
			{"month": "2023-03", "stock_pnl": 200, "hedge_pnl": -15, "total_pnl": 185}
		]`
		if noSummary[payload.Strategy] {
			fmt.Fprintf(w, `{"status": "ok", "results": %s}`, results)
			return
		}

		// vary avg pnl per strategy so ranking has something to choose
		avg := 50.0
		if payload.Strategy == string(domain.Strategy_Collar) {
			avg = 90
		}
		fmt.Fprintf(w, `{
			"status": "ok",
			"results": %s,
			"summary": {
				"months": 3,
				"win_rate_percent": 66.7,
				"total_stock_pl": 250,
				"total_hedge_pl": 15,
				"total_strategy_pl": 265,
				"max_drawdown": 60,
				"monthly_volatility": 20,
				"avg_monthly_strategy_pl": %v
			}
		}`, results, avg)
	}))
}

func newHandler(serverURL string) CompareHandler {
	return CompareHandler{
		BacktestClient: backtestsvc.NewClient(serverURL, 0),
	}
}

func TestCompareHandler_CompareAll(t *testing.T) {
	input := CompareInput{Ticker: "SPY", Shares: 200}

	t.Run("all runs succeed", func(t *testing.T) {
		server := backtestServer(t, nil, nil)
		defer server.Close()

		result, err := newHandler(server.URL).CompareAll(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, result.Rows, 6)
		require.Empty(t, result.Failed)
		require.Equal(t, domain.BuyAndHoldName, result.Rows[0].Strategy)
		require.Equal(t, []string{
			domain.BuyAndHoldName,
			"atm_puts", "otm_puts", "put_spread", "collar", "zero_cost_collar",
		}, rowNames(result.Rows))

		// buy & hold row is the client-side reduction of stock_pnl
		bh := result.Rows[0]
		require.Equal(t, 250.0, bh.FinalPnl)
		require.Equal(t, 250.0, bh.BuyAndHoldPnl)
		require.Equal(t, 0.0, bh.HedgePnl)
		require.Equal(t, 50.0, bh.MaxDrawdown)

		// hedged rows come straight off the service summary
		collar := result.Rows[4]
		require.Equal(t, 265.0, collar.FinalPnl)
		require.Equal(t, 15.0, collar.HedgePnl)
		require.InDelta(t, 90.0/20.0, collar.RiskAdjusted, 1e-9)
	})

	t.Run("one failing strategy is dropped", func(t *testing.T) {
		server := backtestServer(t, map[string]bool{
			string(domain.Strategy_PutSpread): true,
		}, nil)
		defer server.Close()

		result, err := newHandler(server.URL).CompareAll(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, result.Rows, 5)
		require.NotContains(t, rowNames(result.Rows), "put_spread")

		require.Len(t, result.Failed, 1)
		require.Equal(t, "put_spread", result.Failed[0].Strategy)
		require.Contains(t, result.Failed[0].Reason, "500")
		require.Contains(t, result.Failed[0].Reason, "pricing engine unavailable")
	})

	t.Run("missing summary is dropped with a reason", func(t *testing.T) {
		server := backtestServer(t, nil, map[string]bool{
			string(domain.Strategy_Collar): true,
		})
		defer server.Close()

		result, err := newHandler(server.URL).CompareAll(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, result.Rows, 5)
		require.Len(t, result.Failed, 1)
		require.Equal(t, "collar", result.Failed[0].Strategy)
		require.Contains(t, result.Failed[0].Reason, "missing summary")
	})

	t.Run("failing baseline drops only the buy and hold row", func(t *testing.T) {
		server := backtestServer(t, map[string]bool{
			string(domain.Strategy_AtmPuts): true,
		}, nil)
		defer server.Close()

		result, err := newHandler(server.URL).CompareAll(context.Background(), input)
		require.NoError(t, err)

		// atm_puts serves double duty: the baseline and its own strategy
		// row both fail with it
		require.Len(t, result.Rows, 4)
		require.Len(t, result.Failed, 2)
		require.Equal(t, domain.BuyAndHoldName, result.Failed[0].Strategy)
		require.Equal(t, "atm_puts", result.Failed[1].Strategy)
	})

	t.Run("everything failing is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(503)
		}))
		defer server.Close()

		result, err := newHandler(server.URL).CompareAll(context.Background(), input)
		require.NoError(t, err)
		require.Empty(t, result.Rows)
		require.Len(t, result.Failed, 6)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := newHandler("http://localhost:0").CompareAll(
			context.Background(),
			CompareInput{Ticker: "SPY", Shares: -5},
		)
		require.ErrorContains(t, err, "shares")
	})

	t.Run("param override reaches the wire", func(t *testing.T) {
		var mu sync.Mutex
		var gotOtm float64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			if payload["strategy"] == string(domain.Strategy_OtmPuts) {
				mu.Lock()
				gotOtm = payload["otm_percent"].(float64)
				mu.Unlock()
			}
			w.WriteHeader(503)
		}))
		defer server.Close()

		in := input
		in.Params = map[domain.Strategy]float64{domain.Strategy_OtmPuts: 12}
		_, err := newHandler(server.URL).CompareAll(context.Background(), in)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, 12.0, gotOtm)
	})
}

func rowNames(rows []domain.ComparisonRow) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Strategy
	}
	return names
}

func TestRank(t *testing.T) {
	t.Run("picks highest risk adjusted", func(t *testing.T) {
		best, err := Rank([]domain.ComparisonRow{
			{Strategy: "a", RiskAdjusted: 0.5},
			{Strategy: "b", RiskAdjusted: 1.2},
			{Strategy: "c", RiskAdjusted: 0.9},
		})
		require.NoError(t, err)
		require.Equal(t, "b", best.Strategy)
	})

	t.Run("tie keeps first seen", func(t *testing.T) {
		best, err := Rank([]domain.ComparisonRow{
			{Strategy: "a", RiskAdjusted: 1.2},
			{Strategy: "b", RiskAdjusted: 1.2},
		})
		require.NoError(t, err)
		require.Equal(t, "a", best.Strategy)
	})

	t.Run("empty rows", func(t *testing.T) {
		_, err := Rank(nil)
		require.ErrorIs(t, err, ErrNoRows)
	})
}
