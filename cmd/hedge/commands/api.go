package commands

import (
	"hedgebacktest/api"
	"hedgebacktest/internal/app"

	"github.com/spf13/cobra"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the backtest HTTP API",
	RunE:  runApi,
}

var apiPort int

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().IntVar(&apiPort, "port", 0, "listen port (0 = config value)")
}

func runApi(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	port := apiPort
	if port == 0 {
		port = cfg.Api.Port
	}

	handler := api.ApiHandler{
		BacktestClient: client,
		CompareHandler: app.CompareHandler{BacktestClient: client},
	}
	return handler.StartApi(port)
}
