package commands

import (
	"os"

	"hedgebacktest/internal/hedgeconfig"
	"hedgebacktest/pkg/backtestsvc"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hedge",
	Short: "Rolling options-hedging strategy backtester",
	Long: `Backtest rolling options-hedging strategies (puts, spreads, collars)
against a buy & hold baseline. The simulation itself runs on a remote
computation service; this tool builds the requests, reduces the monthly
P&L series and renders the comparison.

Example:
  hedge run --ticker SPY --contracts 2 --strategy otm_puts --param 7.5
  hedge compare --ticker SPY --contracts 2 --csv comparison.csv`,
}

var (
	configPath       string
	endpointOverride string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to hedge.yaml (optional)")
	rootCmd.PersistentFlags().StringVar(&endpointOverride, "endpoint", "", "backtest service URL override")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadClient() (*hedgeconfig.Config, backtestsvc.Client, error) {
	cfg, err := hedgeconfig.Load(configPath)
	if err != nil {
		return nil, backtestsvc.Client{}, err
	}
	if endpointOverride != "" {
		cfg.Service.BaseURL = endpointOverride
	}
	return cfg, backtestsvc.NewClient(cfg.Service.BaseURL, cfg.Service.Timeout()), nil
}
