package screening

import (
	"math"

	"fundamental-screener/internal/ta"
)

// AnalyzePredictability computes revenue consistency scores from an ordered
// (oldest first) sequence of reporting periods. Fewer than two points in a
// subsequence is sparse data, not an error: the affected score degrades to 0
// and the result still comes back usable.
func AnalyzePredictability(cfg Config, periods []FinancialPeriod) PredictabilityResult {
	var quarterly, annual []float64
	for _, p := range periods {
		switch p.PeriodType {
		case PeriodQuarter:
			quarterly = append(quarterly, p.Revenue)
		case PeriodAnnual:
			annual = append(annual, p.Revenue)
		}
	}

	qoq := consistencyScore(quarterly)
	qoy := consistencyScore(annual)
	overall := cfg.QoQWeight*qoq + cfg.QoYWeight*qoy

	return PredictabilityResult{
		QoQScore:     qoq,
		QoYScore:     qoy,
		OverallScore: overall,
		Grade:        gradeFor(overall),
		Trend:        revenueTrend(cfg, quarterly, annual),
	}
}

// consistencyScore maps the coefficient of variation of a revenue series onto
// [0,100]. CV uses sample standard deviation. A non-positive mean makes CV
// undefined; it is pinned to the worst case instead of dividing by zero.
func consistencyScore(revenues []float64) float64 {
	if len(revenues) < 2 {
		return 0
	}
	mean := ta.Mean(revenues)
	cv := 1.0
	if mean > 0 {
		cv = ta.StdDev(revenues, len(revenues)) / mean
	}
	if math.IsNaN(cv) || cv > 1.0 {
		cv = 1.0
	}
	return 100.0 * (1.0 - cv)
}

// revenueTrend compares the mean period-over-period growth rate of the most
// recent half of the series against the earlier half. The quarterly series is
// preferred; annual is the fallback when quarters are too sparse.
func revenueTrend(cfg Config, quarterly, annual []float64) Trend {
	series := quarterly
	if len(series) < 4 {
		series = annual
	}
	if len(series) < 4 {
		return TrendStable
	}

	growth := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		if series[i-1] <= 0 {
			continue
		}
		growth = append(growth, (series[i]-series[i-1])/series[i-1]*100)
	}
	if len(growth) < 2 {
		return TrendStable
	}

	mid := len(growth) / 2
	early := ta.Mean(growth[:mid])
	recent := ta.Mean(growth[mid:])

	switch {
	case recent-early > cfg.TrendEpsilon:
		return TrendImproving
	case early-recent > cfg.TrendEpsilon:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// gradeFor classifies a 0-100 score into the shared four-bucket grade scale.
func gradeFor(score float64) Grade {
	switch {
	case score >= 85:
		return GradeExcellent
	case score >= 70:
		return GradeGood
	case score >= 55:
		return GradeFair
	default:
		return GradePoor
	}
}
