package screening

import (
	"math"

	"fundamental-screener/internal/ta"
)

// GrowthScore maps annual revenue CAGR onto [0,100]. Neutral 50 at zero
// growth, saturating at roughly 25% CAGR; shrinking revenue scores below 50.
// The aggregator treats this as a collaborator input, so callers may replace
// it with an externally supplied value.
func GrowthScore(periods []FinancialPeriod) float64 {
	var annual []float64
	for _, p := range periods {
		if p.PeriodType == PeriodAnnual {
			annual = append(annual, p.Revenue)
		}
	}
	if len(annual) < 2 {
		return 0
	}
	cagr := ta.CAGR(annual[0], annual[len(annual)-1], float64(len(annual)-1))
	if math.IsNaN(cagr) {
		return 0
	}
	score := 50.0 + cagr*2.0
	return math.Max(0, math.Min(100, score))
}

// expansionScore maps the depth expansion trend onto a [0,100] sub-score.
func expansionScore(trend ExpansionTrend) float64 {
	switch trend {
	case ExpansionExpanding:
		return 100
	case ExpansionStablePositive:
		return 75
	case ExpansionStable:
		return 50
	default:
		return 25
	}
}

// AggregateQuality combines predictability, depth, expansion and growth into
// one weighted quality score with a letter grade.
func AggregateQuality(cfg Config, pred PredictabilityResult, depth DepthResult, growthScore float64) QualityScore {
	w := cfg.Weights
	expansion := expansionScore(depth.ExpansionTrend)

	components := map[string]float64{
		"predictability":  w.Predictability * pred.OverallScore,
		"depth":           w.Depth * depth.DepthScore,
		"expansion_trend": w.ExpansionTrend * expansion,
		"growth":          w.Growth * growthScore,
	}

	overall := 0.0
	for _, points := range components {
		overall += points
	}

	return QualityScore{
		Components:   components,
		OverallScore: overall,
		OverallGrade: letterGradeFor(cfg, overall),
	}
}

func letterGradeFor(cfg Config, score float64) LetterGrade {
	switch {
	case score >= cfg.GradeAPlus:
		return LetterAPlus
	case score >= cfg.GradeA:
		return LetterA
	case score >= cfg.GradeB:
		return LetterB
	case score >= cfg.GradeC:
		return LetterC
	default:
		return LetterD
	}
}
