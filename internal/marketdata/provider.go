package marketdata

import (
	"context"

	"fundamental-screener/internal/technical"
)

// Provider supplies OHLCV bars for the technical confidence engine.
type Provider interface {
	// FetchBars retrieves bars for a symbol, oldest first. period is the
	// bar interval label (e.g. "day").
	FetchBars(ctx context.Context, symbol, period string) ([]technical.PriceBar, error)
}
