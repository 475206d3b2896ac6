package interfaces

import (
	"context"

	"fundamental-screener/internal/screening"
)

// CompanyScreener defines the interface for fundamental screening
type CompanyScreener interface {
	// ScreenUniverse fetches data for the tickers and screens all of them
	ScreenUniverse(ctx context.Context, tickers []string) (*screening.ScreeningResult, error)

	// Screen scores already-fetched company records
	Screen(ctx context.Context, records []screening.CompanyRecord) *screening.ScreeningResult

	// ScreenCompany scores a single company record
	ScreenCompany(record screening.CompanyRecord) (screening.CompanyScreeningResult, error)
}
