package commands

import (
	"fmt"
	"io"

	"hedgebacktest/internal/calculator"
	"hedgebacktest/internal/domain"
	"hedgebacktest/internal/export"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single strategy backtest",
	Long: `Submit one strategy backtest and print the summary metrics, the
detailed monthly table and the cumulative strategy-vs-stock series.

--param is the strategy's single tunable:
  otm_puts          OTM % for the puts (1-15, default 5)
  put_spread        spread width % (1-15, default 5)
  collar            upside cap % (2-25, default 10)
  zero_cost_collar  coverage ratio (0.5-1.2, default 1.0)

Example:
  hedge run --ticker SPY --contracts 2 --strategy otm_puts --param 7.5`,
	RunE: runBacktest,
}

var (
	runTicker    string
	runContracts int
	runShares    int
	runStrategy  string
	runParam     float64
	runCsvPath   string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runTicker, "ticker", "SPY", "ticker to hedge")
	runCmd.Flags().IntVar(&runContracts, "contracts", 2, "number of option contracts (1 contract = 100 shares)")
	runCmd.Flags().IntVar(&runShares, "shares", 0, "shares held (overrides --contracts)")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "atm_puts", "hedging strategy")
	runCmd.Flags().Float64Var(&runParam, "param", 0, "strategy tunable (0 = strategy default)")
	runCmd.Flags().StringVar(&runCsvPath, "csv", "", "write the monthly results to this CSV file")
}

func resolveShares(contracts, shares int) (int, error) {
	if shares > 0 {
		return shares, nil
	}
	if contracts < 1 || contracts > 10 {
		return 0, fmt.Errorf("contracts must be between 1 and 10, got %d", contracts)
	}
	return contracts * 100, nil
}

func runBacktest(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	shares, err := resolveShares(runContracts, runShares)
	if err != nil {
		return err
	}

	strategy, err := domain.NewStrategy(runStrategy)
	if err != nil {
		return err
	}

	request := domain.StrategyRequest{
		Ticker:   runTicker,
		Shares:   shares,
		Strategy: *strategy,
	}
	if runParam != 0 {
		request.Param = &runParam
	}

	fmt.Printf("Running %s on %s (%d shares)...\n\n", strategy.DisplayName(), runTicker, shares)

	response, err := client.Run(cmd.Context(), request)
	if err != nil {
		return err
	}

	fmt.Println(response.Status)
	fmt.Println()

	if response.Summary != nil {
		printSummary(*response.Summary)
	}

	buyAndHold, err := calculator.BuyAndHoldSummary(response.Results)
	if err != nil {
		return err
	}
	fmt.Println("Buy & Hold vs Strategy")
	fmt.Printf("  Buy & Hold PnL:  %s\n", formatMoney(buyAndHold.TotalStockPl))
	if response.Summary != nil {
		fmt.Printf("  Strategy PnL:    %s\n", formatMoney(response.Summary.TotalStrategyPl))
	}
	fmt.Println()

	printMonthlyResults(response.Results)

	if runCsvPath != "" {
		err := export.ToFile(runCsvPath, func(w io.Writer) error {
			return export.MonthlyResultsCSV(w, response.Results)
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", runCsvPath)
	}

	return nil
}

func printSummary(summary domain.SummaryMetrics) {
	fmt.Println("Summary")
	printSeparator()
	fmt.Printf("  Months Tested:       %d\n", summary.Months)
	fmt.Printf("  Win Rate:            %.1f%%\n", summary.WinRatePercent)
	fmt.Printf("  Buy & Hold Stock PnL: %s\n", formatMoney(summary.TotalStockPl))
	fmt.Printf("  Hedge Net PnL:       %s\n", formatMoney(summary.TotalHedgePl))
	fmt.Printf("  Strategy Final PnL:  %s\n", formatMoney(summary.TotalStrategyPl))
	fmt.Printf("  Hedge vs Stock:      %.1f%%\n", summary.HedgePctOfStock)
	fmt.Printf("  Max Drawdown:        %s\n", formatMoney(summary.MaxDrawdown))
	fmt.Printf("  Monthly Volatility:  %s\n", formatMoney(summary.MonthlyVolatility))
	fmt.Println()
}

func printMonthlyResults(results []domain.MonthlyResult) {
	fmt.Println("Detailed Monthly Results")

	widths := []int{10, 14, 14, 14, 16, 16}
	printTableHeader([]string{
		"Month", "Stock PnL", "Hedge PnL", "Total PnL", "Cum. Stock", "Cum. Strategy",
	}, widths)

	stockPnl := make([]float64, len(results))
	totalPnl := make([]float64, len(results))
	for i, r := range results {
		stockPnl[i] = r.StockPnl
		totalPnl[i] = r.TotalPnl
	}
	cumStock := calculator.CumulativeSeries(stockPnl)
	cumStrategy := calculator.CumulativeSeries(totalPnl)

	for i, r := range results {
		month := r.Month
		if month == "" {
			month = fmt.Sprintf("#%d", i+1)
		}
		printTableRow([]string{
			month,
			formatMoney(r.StockPnl),
			formatMoney(r.HedgePnl),
			formatMoney(r.TotalPnl),
			formatMoney(cumStock[i]),
			formatMoney(cumStrategy[i]),
		}, widths)
	}
}
