package marketdata

import (
	"context"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"fundamental-screener/internal/technical"
)

// KiteProvider fetches historical daily candles from the Zerodha Kite
// Connect API. Symbols must be mapped to instrument tokens up front because
// the historical endpoint is token-addressed.
type KiteProvider struct {
	kc     *kiteconnect.Client
	tokens map[string]int
	days   int
}

// NewKiteProvider creates a provider with API credentials and the
// symbol-to-instrument-token map from configuration.
func NewKiteProvider(apiKey, accessToken string, tokens map[string]int, days int) *KiteProvider {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	if days <= 0 {
		days = 400
	}
	return &KiteProvider{kc: kc, tokens: tokens, days: days}
}

// FetchBars retrieves daily candles for the symbol, oldest first.
func (k *KiteProvider) FetchBars(ctx context.Context, symbol, period string) ([]technical.PriceBar, error) {
	token, ok := k.tokens[symbol]
	if !ok {
		return nil, fmt.Errorf("no instrument token configured for %s", symbol)
	}
	if period == "" {
		period = "day"
	}

	to := time.Now()
	from := to.AddDate(0, 0, -k.days)

	candles, err := k.kc.GetHistoricalData(token, period, from, to, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical data for %s: %w", symbol, err)
	}

	bars := make([]technical.PriceBar, 0, len(candles))
	for _, c := range candles {
		bars = append(bars, technical.PriceBar{
			Date:   c.Date.Time,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: float64(c.Volume),
		})
	}
	return bars, nil
}
