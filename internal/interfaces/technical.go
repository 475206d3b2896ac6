package interfaces

import (
	"context"

	"fundamental-screener/internal/technical"
)

// TechnicalAnalyzer defines the interface for the bar-driven confidence engine
type TechnicalAnalyzer interface {
	// Update ingests one bar and refreshes all derived state
	Update(ctx context.Context, bar technical.PriceBar)

	// Report assembles the current full analysis snapshot
	Report() *technical.Report
}
