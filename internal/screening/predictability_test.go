package screening

import (
	"math"
	"testing"
)

func quarters(revenues ...float64) []FinancialPeriod {
	periods := make([]FinancialPeriod, 0, len(revenues))
	for i, r := range revenues {
		periods = append(periods, FinancialPeriod{
			PeriodLabel: "Q",
			PeriodType:  PeriodQuarter,
			FiscalYear:  2021 + i/4,
			Revenue:     r,
		})
	}
	return periods
}

func annuals(revenues ...float64) []FinancialPeriod {
	periods := make([]FinancialPeriod, 0, len(revenues))
	for i, r := range revenues {
		periods = append(periods, FinancialPeriod{
			PeriodLabel: "FY",
			PeriodType:  PeriodAnnual,
			FiscalYear:  2020 + i,
			Revenue:     r,
		})
	}
	return periods
}

func TestConstantSeriesScoresPerfect(t *testing.T) {
	cfg := DefaultConfig()
	periods := append(quarters(100, 100, 100, 100), annuals(400, 400)...)

	result := AnalyzePredictability(cfg, periods)

	if result.QoQScore != 100 {
		t.Errorf("Expected QoQ score 100 for constant quarters, got %f", result.QoQScore)
	}
	if result.QoYScore != 100 {
		t.Errorf("Expected QoY score 100 for constant annuals, got %f", result.QoYScore)
	}
	if result.OverallScore != 100 {
		t.Errorf("Expected overall score 100, got %f", result.OverallScore)
	}
	if result.Grade != GradeExcellent {
		t.Errorf("Expected grade excellent, got %s", result.Grade)
	}
	if result.Trend != TrendStable {
		t.Errorf("Expected stable trend for constant series, got %s", result.Trend)
	}
}

func TestExtremeVolatilityScoresZero(t *testing.T) {
	cfg := DefaultConfig()
	// Two points far apart: CV well above 1, clamped to worst case.
	result := AnalyzePredictability(cfg, quarters(1, 1000))

	if result.QoQScore != 0 {
		t.Errorf("Expected QoQ score 0 when CV >= 1, got %f", result.QoQScore)
	}
}

func TestConsistencyScoreUsesSampleStdev(t *testing.T) {
	cfg := DefaultConfig()
	// Mean 135, squared deviations sum 7700. Sample stdev sqrt(7700/3)
	// gives CV 0.375276 and score 62.4724; population stdev would give
	// 67.5 instead.
	result := AnalyzePredictability(cfg, quarters(100, 150, 90, 200))

	if math.Abs(result.QoQScore-62.4724) > 1e-3 {
		t.Errorf("Expected QoQ score 62.4724, got %f", result.QoQScore)
	}
}

func TestSparseDataDegradesToZero(t *testing.T) {
	cfg := DefaultConfig()

	result := AnalyzePredictability(cfg, quarters(100))
	if result.QoQScore != 0 || result.QoYScore != 0 || result.OverallScore != 0 {
		t.Errorf("Expected all-zero scores for sparse data, got %+v", result)
	}
	if result.Grade != GradePoor {
		t.Errorf("Expected grade poor, got %s", result.Grade)
	}

	empty := AnalyzePredictability(cfg, nil)
	if empty.OverallScore != 0 {
		t.Errorf("Expected zero score for no periods, got %f", empty.OverallScore)
	}
}

func TestZeroRevenueSeriesPinnedToWorstCase(t *testing.T) {
	cfg := DefaultConfig()
	result := AnalyzePredictability(cfg, quarters(0, 0, 0))

	if result.QoQScore != 0 {
		t.Errorf("Expected QoQ score 0 for non-positive mean, got %f", result.QoQScore)
	}
}

func TestOverallBlendsQuarterlyAndAnnual(t *testing.T) {
	cfg := DefaultConfig()
	// Constant quarters (100) with no annual data (0).
	result := AnalyzePredictability(cfg, quarters(50, 50, 50, 50))

	expected := cfg.QoQWeight * 100
	if result.OverallScore != expected {
		t.Errorf("Expected overall %f, got %f", expected, result.OverallScore)
	}
}

func TestImprovingTrend(t *testing.T) {
	cfg := DefaultConfig()
	// Growth rates accelerate sharply in the second half.
	result := AnalyzePredictability(cfg, quarters(100, 101, 102, 112, 128, 150))

	if result.Trend != TrendImproving {
		t.Errorf("Expected improving trend, got %s", result.Trend)
	}
}

func TestDecliningTrend(t *testing.T) {
	cfg := DefaultConfig()
	result := AnalyzePredictability(cfg, quarters(100, 117, 135, 140, 141, 142))

	if result.Trend != TrendDeclining {
		t.Errorf("Expected declining trend, got %s", result.Trend)
	}
}

func TestTrendFallsBackToAnnual(t *testing.T) {
	cfg := DefaultConfig()
	// Too few quarters, enough annuals with accelerating growth.
	periods := append(quarters(100, 105), annuals(100, 101, 102, 115, 135)...)
	result := AnalyzePredictability(cfg, periods)

	if result.Trend != TrendImproving {
		t.Errorf("Expected improving trend from annual fallback, got %s", result.Trend)
	}
}

func TestGradeBuckets(t *testing.T) {
	cases := []struct {
		score float64
		want  Grade
	}{
		{100, GradeExcellent},
		{85, GradeExcellent},
		{84.9, GradeGood},
		{70, GradeGood},
		{69.9, GradeFair},
		{55, GradeFair},
		{54.9, GradePoor},
		{0, GradePoor},
	}
	for _, tc := range cases {
		if got := gradeFor(tc.score); got != tc.want {
			t.Errorf("gradeFor(%f): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}
