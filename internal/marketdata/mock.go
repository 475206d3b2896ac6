package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"fundamental-screener/internal/technical"
)

// MockProvider generates a synthetic OHLCV random walk per symbol. The walk
// is seeded from the base seed and the symbol so runs are reproducible and
// symbols differ from each other.
type MockProvider struct {
	seed int64
	bars int
}

// NewMockProvider creates a mock provider emitting the given number of bars.
func NewMockProvider(seed int64, bars int) *MockProvider {
	if bars <= 0 {
		bars = 300
	}
	return &MockProvider{seed: seed, bars: bars}
}

// FetchBars generates the synthetic series for one symbol.
func (m *MockProvider) FetchBars(ctx context.Context, symbol, period string) ([]technical.PriceBar, error) {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	r := rand.New(rand.NewSource(m.seed ^ int64(h.Sum64())))

	price := 50 + r.Float64()*450
	drift := -0.0005 + r.Float64()*0.002
	volatility := 0.005 + r.Float64()*0.02
	baseVolume := 1e5 + r.Float64()*9e5

	start := time.Now().AddDate(0, 0, -m.bars)
	bars := make([]technical.PriceBar, 0, m.bars)
	for i := 0; i < m.bars; i++ {
		open := price
		change := drift + (r.Float64()*2-1)*volatility
		close := open * (1 + change)
		high := math.Max(open, close) * (1 + r.Float64()*volatility)
		low := math.Min(open, close) * (1 - r.Float64()*volatility)
		volume := baseVolume * (0.5 + r.Float64()*1.5)
		if math.Abs(change) > volatility {
			volume *= 1.5 // heavier turnover on outsized moves
		}

		bars = append(bars, technical.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
		price = close
	}
	return bars, nil
}
