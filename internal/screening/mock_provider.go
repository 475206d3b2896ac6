package screening

import (
	"context"
	"fmt"
	"math/rand"
)

// MockProvider generates synthetic financial histories for testing and
// development. The same seed always produces the same universe.
type MockProvider struct {
	seed int64
}

// NewMockProvider creates a mock provider with the given seed.
func NewMockProvider(seed int64) *MockProvider {
	return &MockProvider{seed: seed}
}

// FetchCompanyRecords generates a synthetic record per ticker.
func (m *MockProvider) FetchCompanyRecords(ctx context.Context, tickers []string) ([]CompanyRecord, error) {
	r := rand.New(rand.NewSource(m.seed))
	records := make([]CompanyRecord, 0, len(tickers))
	for _, ticker := range tickers {
		records = append(records, m.generateRecord(ticker, r))
	}
	return records, nil
}

// generateRecord builds eight quarters, four annual periods and three years
// of depth metrics. Growth and volatility vary per company so a mock universe
// exercises every grade and recommendation bucket.
func (m *MockProvider) generateRecord(ticker string, r *rand.Rand) CompanyRecord {
	baseRevenue := 200e6 + r.Float64()*2e9
	quarterlyGrowth := -0.03 + r.Float64()*0.10 // -3% to +7% per quarter
	volatility := 0.01 + r.Float64()*0.25

	const startYear = 2021
	var periods []FinancialPeriod

	revenue := baseRevenue
	annualTotals := map[int]float64{}
	for q := 0; q < 8; q++ {
		year := startYear + q/4
		quarter := q%4 + 1
		noise := 1.0 + (r.Float64()*2-1)*volatility
		revenue = revenue * (1 + quarterlyGrowth) * noise
		if revenue < 0 {
			revenue = 0
		}
		periods = append(periods, FinancialPeriod{
			PeriodLabel: fmt.Sprintf("Q%d-%d", quarter, year),
			PeriodType:  PeriodQuarter,
			Revenue:     revenue,
			FiscalYear:  year,
		})
		annualTotals[year] += revenue
	}

	// Two back-filled annual periods before the quarterly window, then the
	// two covered by it, giving the CAGR computation four points.
	prior := baseRevenue * 4
	for i := 0; i < 2; i++ {
		year := startYear - 2 + i
		prior = prior * (0.9 + r.Float64()*0.15)
		periods = append(periods, FinancialPeriod{
			PeriodLabel: fmt.Sprintf("FY-%d", year),
			PeriodType:  PeriodAnnual,
			Revenue:     prior,
			FiscalYear:  year,
		})
	}
	for year := startYear; year < startYear+2; year++ {
		periods = append(periods, FinancialPeriod{
			PeriodLabel: fmt.Sprintf("FY-%d", year),
			PeriodType:  PeriodAnnual,
			Revenue:     annualTotals[year],
			FiscalYear:  year,
		})
	}

	depthBase := DepthMetricSet{
		FiscalYear:         startYear - 1,
		LineItems:          150 + r.Float64()*200,
		DisclosureSections: 10 + r.Float64()*15,
		SegmentDetails:     5 + r.Float64()*15,
		RiskFactors:        15 + r.Float64()*20,
		MDAndAPages:        20 + r.Float64()*30,
	}
	depth := []DepthMetricSet{depthBase}
	drift := func(v float64) float64 {
		next := v * (0.92 + r.Float64()*0.20)
		if next < 0 {
			next = 0
		}
		return next
	}
	for year := startYear; year < startYear+2; year++ {
		last := depth[len(depth)-1]
		depth = append(depth, DepthMetricSet{
			FiscalYear:         year,
			LineItems:          drift(last.LineItems),
			DisclosureSections: drift(last.DisclosureSections),
			SegmentDetails:     drift(last.SegmentDetails),
			RiskFactors:        drift(last.RiskFactors),
			MDAndAPages:        drift(last.MDAndAPages),
		})
	}

	return CompanyRecord{Ticker: ticker, Periods: periods, Depth: depth}
}
