package commands

import (
	"fmt"
	"io"

	"hedgebacktest/internal/app"
	"hedgebacktest/internal/domain"
	"hedgebacktest/internal/export"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare all hedging strategies against buy & hold",
	Long: `Run every hedging strategy plus the unhedged baseline, rank the
results by risk-adjusted return and print the comparison table. Strategies
whose run fails are listed separately and excluded from the ranking.

Example:
  hedge compare --ticker SPY --contracts 2 --csv comparison.csv`,
	RunE: runCompare,
}

var (
	compareTicker    string
	compareContracts int
	compareShares    int
	compareCsvPath   string
)

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareTicker, "ticker", "SPY", "ticker to hedge")
	compareCmd.Flags().IntVar(&compareContracts, "contracts", 2, "number of option contracts (1 contract = 100 shares)")
	compareCmd.Flags().IntVar(&compareShares, "shares", 0, "shares held (overrides --contracts)")
	compareCmd.Flags().StringVar(&compareCsvPath, "csv", "", "write the comparison table to this CSV file")
}

func runCompare(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	shares, err := resolveShares(compareContracts, compareShares)
	if err != nil {
		return err
	}

	fmt.Printf("Comparing all strategies on %s (%d shares)...\n\n", compareTicker, shares)

	handler := app.CompareHandler{BacktestClient: client}
	result, err := handler.CompareAll(cmd.Context(), app.CompareInput{
		Ticker: compareTicker,
		Shares: shares,
	})
	if err != nil {
		return err
	}

	if len(result.Rows) > 0 {
		printComparison(result.Rows)
	}

	for _, failure := range result.Failed {
		fmt.Printf("! %s dropped: %s\n", failure.Strategy, failure.Reason)
	}
	if len(result.Failed) > 0 {
		fmt.Println()
	}

	best, err := app.Rank(result.Rows)
	if err != nil {
		return fmt.Errorf("no strategy results returned")
	}
	fmt.Printf("Best risk-adjusted strategy: %s (%.2f)\n", best.Strategy, best.RiskAdjusted)

	if compareCsvPath != "" {
		err := export.ToFile(compareCsvPath, func(w io.Writer) error {
			return export.ComparisonRowsCSV(w, result.Rows)
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", compareCsvPath)
	}

	return nil
}

func printComparison(rows []domain.ComparisonRow) {
	fmt.Println("Multi-Strategy Comparison")

	widths := []int{18, 12, 14, 12, 10, 13, 12, 13}
	printTableHeader([]string{
		"Strategy", "Final PnL", "Buy&Hold PnL", "Hedge PnL",
		"Win Rate", "Max Drawdown", "Volatility", "Risk-Adjusted",
	}, widths)

	for _, row := range rows {
		printTableRow([]string{
			row.Strategy,
			formatMoney(row.FinalPnl),
			formatMoney(row.BuyAndHoldPnl),
			formatMoney(row.HedgePnl),
			fmt.Sprintf("%.1f%%", row.WinRatePercent),
			formatMoney(row.MaxDrawdown),
			formatMoney(row.Volatility),
			fmt.Sprintf("%.2f", row.RiskAdjusted),
		}, widths)
	}
	fmt.Println()
}
