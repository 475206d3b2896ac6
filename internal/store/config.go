package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fundamental-screener/internal/screening"
	"fundamental-screener/internal/technical"
)

type Config struct {
	Universe []string `yaml:"universe"`

	Screening struct {
		DataSource string           `yaml:"data_source"` // MOCK or EDGAR
		MockSeed   int64            `yaml:"mock_seed"`
		Params     screening.Config `yaml:"params"`
		Edgar      struct {
			UserAgent     string `yaml:"user_agent"`
			CacheDir      string `yaml:"cache_dir"`
			CacheTTLHours int    `yaml:"cache_ttl_hours"`
			TimeoutSecs   int    `yaml:"timeout_seconds"`
			FilingYears   int    `yaml:"filing_years"`
		} `yaml:"edgar"`
	} `yaml:"screening"`

	Technical struct {
		DataSource string           `yaml:"data_source"` // MOCK or KITE
		Symbols    []string         `yaml:"symbols"`
		Period     string           `yaml:"period"`
		MockSeed   int64            `yaml:"mock_seed"`
		MockBars   int              `yaml:"mock_bars"`
		Params     technical.Config `yaml:"params"`
		Kite       struct {
			APIKeyEnv        string         `yaml:"api_key_env"`
			AccessTokenEnv   string         `yaml:"access_token_env"`
			InstrumentTokens map[string]int `yaml:"instrument_tokens"`
			HistoryDays      int            `yaml:"history_days"`
		} `yaml:"kite"`
	} `yaml:"technical"`

	LogRetentionDays int `yaml:"log_retention_days"`
}

func (c *Config) Validate() error {
	if c.Screening.DataSource != "MOCK" && c.Screening.DataSource != "EDGAR" {
		return fmt.Errorf("invalid screening.data_source '%s': must be 'MOCK' or 'EDGAR'", c.Screening.DataSource)
	}
	if c.Technical.DataSource != "MOCK" && c.Technical.DataSource != "KITE" {
		return fmt.Errorf("invalid technical.data_source '%s': must be 'MOCK' or 'KITE'", c.Technical.DataSource)
	}
	if len(c.Universe) == 0 {
		return errors.New("universe cannot be empty")
	}
	if c.Screening.DataSource == "EDGAR" && c.Screening.Edgar.UserAgent == "" {
		return errors.New("screening.edgar.user_agent is required: EDGAR rejects anonymous clients")
	}
	if c.Technical.DataSource == "KITE" && len(c.Technical.Kite.InstrumentTokens) == 0 {
		return errors.New("technical.kite.instrument_tokens cannot be empty in KITE mode")
	}
	w := c.Screening.Params.Weights
	sum := w.Predictability + w.Depth + w.ExpansionTrend + w.Growth
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("screening.params.weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// EdgarTTL returns the configured cache TTL as a duration.
func (c *Config) EdgarTTL() time.Duration {
	return time.Duration(c.Screening.Edgar.CacheTTLHours) * time.Hour
}

// EdgarTimeout returns the configured HTTP timeout as a duration.
func (c *Config) EdgarTimeout() time.Duration {
	return time.Duration(c.Screening.Edgar.TimeoutSecs) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	c.Screening.Params = screening.DefaultConfig()
	c.Technical.Params = technical.DefaultConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Screening.DataSource == "" {
		c.Screening.DataSource = "MOCK"
	}
	if c.Technical.DataSource == "" {
		c.Technical.DataSource = "MOCK"
	}
	if c.Technical.Period == "" {
		c.Technical.Period = "day"
	}
	if c.Technical.MockBars == 0 {
		c.Technical.MockBars = 300
	}
	if c.Screening.Edgar.CacheTTLHours == 0 {
		c.Screening.Edgar.CacheTTLHours = 24
	}
	if c.Screening.Edgar.TimeoutSecs == 0 {
		c.Screening.Edgar.TimeoutSecs = 30
	}
	if c.Screening.Edgar.FilingYears == 0 {
		c.Screening.Edgar.FilingYears = 3
	}
	if c.LogRetentionDays == 0 {
		c.LogRetentionDays = 30
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
