package cmd

import (
	"fmt"

	"hedgebacktest/api"
	"hedgebacktest/internal/app"
	"hedgebacktest/internal/hedgeconfig"
	"hedgebacktest/pkg/backtestsvc"
)

// InitializeDependencies wires the api handler from config. Shared by the
// server and lambda entry points.
func InitializeDependencies() (*api.ApiHandler, *hedgeconfig.Config, error) {
	cfg, err := hedgeconfig.Load("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := backtestsvc.NewClient(cfg.Service.BaseURL, cfg.Service.Timeout())

	return &api.ApiHandler{
		BacktestClient: client,
		CompareHandler: app.CompareHandler{BacktestClient: client},
	}, cfg, nil
}
