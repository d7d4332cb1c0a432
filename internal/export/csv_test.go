package export

import (
	"bytes"
	"strings"
	"testing"

	"hedgebacktest/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestComparisonRowsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := ComparisonRowsCSV(&buf, []domain.ComparisonRow{
		{
			Strategy:       domain.BuyAndHoldName,
			FinalPnl:       230,
			BuyAndHoldPnl:  230,
			WinRatePercent: 50,
			MaxDrawdown:    50,
		},
		{
			Strategy:     "collar",
			FinalPnl:     180,
			HedgePnl:     -20,
			RiskAdjusted: 1.25,
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(
		t,
		"Strategy,Final PnL,Buy & Hold PnL,Hedge PnL,Win Rate %,Max Drawdown,Volatility,Risk-Adjusted",
		lines[0],
	)
	require.Contains(t, lines[1], "Buy & Hold,230,230")
	require.Contains(t, lines[2], "collar,180")
}

func TestMonthlyResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := MonthlyResultsCSV(&buf, []domain.MonthlyResult{
		{Month: "2023-01", StockPnl: 100, HedgePnl: -20, TotalPnl: 80},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "Month,Stock PnL,Hedge PnL,Total PnL", lines[0])
	require.Equal(t, "2023-01,100,-20,80", lines[1])
}
