package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"fundamental-screener/internal/datasource"
	"fundamental-screener/internal/logger"
	"fundamental-screener/internal/resultlog"
	"fundamental-screener/internal/screening"
	"fundamental-screener/internal/store"
)

// initializeSystem loads the environment and initializes the logger
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old run-history files if retention is configured
func compressOldLogs(ctx context.Context, cfg *store.Config) {
	if err := resultlog.CompressOlder(cfg.LogRetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old run history", "error", err)
	}
}

// initializeProvider selects the financial data provider from config
func initializeProvider(ctx context.Context, cfg *store.Config) (screening.FinancialDataProvider, func(), error) {
	if cfg.Screening.DataSource == "MOCK" {
		logger.Info(ctx, "Using MOCK financial data for testing")
		return screening.NewMockProvider(cfg.Screening.MockSeed), func() {}, nil
	}

	logger.Info(ctx, "Fetching LIVE financial data from SEC EDGAR")
	provider, err := datasource.NewEdgarProvider(datasource.EdgarConfig{
		UserAgent:   cfg.Screening.Edgar.UserAgent,
		CacheDir:    cfg.Screening.Edgar.CacheDir,
		CacheTTL:    cfg.EdgarTTL(),
		Timeout:     cfg.EdgarTimeout(),
		FilingYears: cfg.Screening.Edgar.FilingYears,
	})
	if err != nil {
		return nil, nil, err
	}
	return provider, provider.Close, nil
}
