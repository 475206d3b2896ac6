package screening

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"fundamental-screener/internal/logger"
)

// FinancialDataProvider supplies raw per-company records for screening.
// Implementations exist for synthetic data (MockProvider) and for a live
// filing source (the EDGAR provider in internal/datasource).
type FinancialDataProvider interface {
	// FetchCompanyRecords retrieves financial periods and depth metrics
	// for a list of tickers.
	FetchCompanyRecords(ctx context.Context, tickers []string) ([]CompanyRecord, error)
}

// Screener runs the full fundamental pipeline over a batch of companies.
// It holds configuration only; all per-company computation is pure, so
// companies never share mutable state.
type Screener struct {
	cfg      Config
	provider FinancialDataProvider
}

// NewScreener creates a screener with the given configuration and provider.
func NewScreener(cfg Config, provider FinancialDataProvider) *Screener {
	return &Screener{cfg: cfg, provider: provider}
}

// ScreenUniverse fetches records for the tickers and screens them.
func (s *Screener) ScreenUniverse(ctx context.Context, tickers []string) (*ScreeningResult, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no financial data provider configured")
	}
	records, err := s.provider.FetchCompanyRecords(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company records: %w", err)
	}
	return s.Screen(ctx, records), nil
}

// Screen runs every company through the analyzers and builds the ranked
// result. Malformed records are skipped and counted; fetch failures and
// companies whose scoring produces a non-finite value are counted as failed.
// Neither aborts the batch.
func (s *Screener) Screen(ctx context.Context, records []CompanyRecord) *ScreeningResult {
	op := logger.StartOperation(ctx, "screen_companies", "records", len(records))
	ctx = op.GetContext()

	results := make([]CompanyScreeningResult, 0, len(records))
	skipped, failed := 0, 0

	for _, record := range records {
		if record.FetchError != "" {
			logger.Error(ctx, "Company data fetch failed", "ticker", record.Ticker, "error", record.FetchError)
			failed++
			continue
		}
		if reason := validateRecord(record); reason != "" {
			logger.Warn(ctx, "Skipping malformed record", "ticker", record.Ticker, "reason", reason)
			skipped++
			continue
		}

		result, err := s.ScreenCompany(record)
		if err != nil {
			logger.ErrorWithErr(ctx, "Company scoring failed", err, "ticker", record.Ticker)
			failed++
			continue
		}

		logger.Recommendation(ctx, result.Ticker,
			string(result.Recommendation.Action),
			result.Recommendation.Confidence,
			strings.Join(result.Recommendation.Reasons, "; "))
		results = append(results, result)
	}

	// Descending by score, ties broken by ticker ascending.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Quality.OverallScore != results[j].Quality.OverallScore {
			return results[i].Quality.OverallScore > results[j].Quality.OverallScore
		}
		return results[i].Ticker < results[j].Ticker
	})

	summary := s.buildSummary(results, skipped, failed)
	op.End("companies", len(results), "skipped", skipped, "failed", failed)

	return &ScreeningResult{Summary: summary, Companies: results}
}

// ScreenCompany scores a single well-formed company record. A non-finite
// overall score indicates an unguarded arithmetic defect and is returned as
// an error rather than silently ranked.
func (s *Screener) ScreenCompany(record CompanyRecord) (CompanyScreeningResult, error) {
	pred := AnalyzePredictability(s.cfg, record.Periods)
	depth := AnalyzeDepth(s.cfg, record.Depth)
	growth := GrowthScore(record.Periods)
	quality := AggregateQuality(s.cfg, pred, depth, growth)

	if !isFinite(quality.OverallScore) || !isFinite(pred.OverallScore) || !isFinite(depth.DepthScore) {
		return CompanyScreeningResult{}, fmt.Errorf("non-finite score computed for %s", record.Ticker)
	}

	return CompanyScreeningResult{
		Ticker:         record.Ticker,
		Predictability: pred,
		Depth:          depth,
		Quality:        quality,
		Recommendation: Recommend(quality, pred, depth),
	}, nil
}

// validateRecord returns a non-empty reason when the record is malformed.
func validateRecord(record CompanyRecord) string {
	if strings.TrimSpace(record.Ticker) == "" {
		return "empty ticker"
	}
	for _, p := range record.Periods {
		if p.Revenue < 0 || !isFinite(p.Revenue) {
			return fmt.Sprintf("invalid revenue in %s", p.PeriodLabel)
		}
		if p.PeriodType != PeriodQuarter && p.PeriodType != PeriodAnnual {
			return fmt.Sprintf("unknown period type %q", p.PeriodType)
		}
	}
	for _, d := range record.Depth {
		for name, value := range d.Metrics() {
			if value < 0 || !isFinite(value) {
				return fmt.Sprintf("invalid depth metric %s for FY%d", name, d.FiscalYear)
			}
		}
	}
	return ""
}

func (s *Screener) buildSummary(results []CompanyScreeningResult, skipped, failed int) ScreeningSummary {
	summary := ScreeningSummary{
		GeneratedAt:    time.Now(),
		TotalCompanies: len(results),
		Skipped:        skipped,
		Failed:         failed,
		GradeCounts:    map[string]int{},
		ActionCounts:   map[string]int{},
	}
	if len(results) == 0 {
		return summary
	}

	scores := make([]float64, 0, len(results))
	contracting := 0
	for _, r := range results {
		scores = append(scores, r.Quality.OverallScore)
		summary.GradeCounts[string(r.Quality.OverallGrade)]++
		summary.ActionCounts[string(r.Recommendation.Action)]++
		if r.Depth.ExpansionTrend == ExpansionContracting {
			contracting++
		}
	}

	summary.MaxScore = scores[0]
	summary.MinScore = scores[len(scores)-1]
	summary.AverageScore = mean(scores)
	summary.MedianScore = median(scores)

	topN := s.cfg.TopN
	if topN <= 0 {
		topN = 5
	}
	if topN > len(results) {
		topN = len(results)
	}
	for _, r := range results[:topN] {
		summary.TopPerformers = append(summary.TopPerformers, r.Ticker)
	}

	summary.Insights = buildInsights(summary, results, contracting)
	return summary
}

// buildInsights generates portfolio-level observations from threshold checks.
func buildInsights(summary ScreeningSummary, results []CompanyScreeningResult, contracting int) []string {
	var insights []string

	if contracting > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d companies show contracting disclosure - review before investing", contracting))
	}
	if n := summary.ActionCounts[string(ActionStrongBuy)]; n > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d companies qualify as strong buys with improving fundamentals", n))
	}
	if n := summary.ActionCounts[string(ActionAvoid)]; n > len(results)/2 {
		insights = append(insights, fmt.Sprintf(
			"over half the universe (%d of %d) scores below 50 - consider tightening the candidate list", n, len(results)))
	}
	if summary.AverageScore >= 70 {
		insights = append(insights, fmt.Sprintf(
			"portfolio average quality is strong at %.1f", summary.AverageScore))
	} else if summary.AverageScore < 50 {
		insights = append(insights, fmt.Sprintf(
			"portfolio average quality is weak at %.1f", summary.AverageScore))
	}
	if summary.Skipped > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d records were skipped as malformed - check the upstream data source", summary.Skipped))
	}
	if summary.Failed > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d companies could not be fetched or scored and were excluded from ranking", summary.Failed))
	}

	return insights
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
