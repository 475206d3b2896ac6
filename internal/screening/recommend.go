package screening

import "fmt"

// Recommend maps a quality score plus trend signals to a discrete action.
// Rules are evaluated top to bottom, first match wins; the trailing default
// keeps the table total so every input yields exactly one action.
func Recommend(quality QualityScore, pred PredictabilityResult, depth DepthResult) Recommendation {
	score := quality.OverallScore
	trend := pred.Trend
	expansion := depth.ExpansionTrend

	var action Action
	var confidence float64

	switch {
	case score >= 80 && trend == TrendImproving && expansion == ExpansionExpanding:
		action, confidence = ActionStrongBuy, 95
	case score >= 70 && (trend == TrendImproving || trend == TrendStable):
		action, confidence = ActionBuy, 80
	case score >= 60 && trend == TrendStable && expansion == ExpansionStable:
		action, confidence = ActionHold, 65
	case score >= 50 && (trend == TrendDeclining || expansion == ExpansionContracting):
		action, confidence = ActionWatch, 50
	case score < 50:
		action, confidence = ActionAvoid, 30
	default:
		// Mid-range score with mixed signals matches none of the rules
		// above; treat it as a hold rather than leaving a gap.
		action, confidence = ActionHold, 55
	}

	return Recommendation{
		Action:     action,
		Confidence: confidence,
		Reasons:    buildReasons(quality, pred, depth),
	}
}

// buildReasons appends one human-readable string per contributing factor.
func buildReasons(quality QualityScore, pred PredictabilityResult, depth DepthResult) []string {
	reasons := []string{
		fmt.Sprintf("quality score %.1f (%s)", quality.OverallScore, quality.OverallGrade),
		fmt.Sprintf("predictability trend: %s", pred.Trend),
	}

	positive := 0
	for _, delta := range depth.YoYChanges {
		if delta > 0 {
			positive++
		}
	}

	switch depth.ExpansionTrend {
	case ExpansionExpanding:
		reasons = append(reasons, fmt.Sprintf("10-K depth expanding by %d metrics", positive))
	case ExpansionContracting:
		reasons = append(reasons, fmt.Sprintf("10-K depth contracting (%d of 5 metrics grew)", positive))
	default:
		reasons = append(reasons, fmt.Sprintf("10-K depth %s", depth.ExpansionTrend))
	}

	if pred.Grade == GradeExcellent {
		reasons = append(reasons, fmt.Sprintf("highly consistent revenue (score %.1f)", pred.OverallScore))
	}
	if pred.Grade == GradePoor {
		reasons = append(reasons, "volatile or sparse revenue history")
	}

	return reasons
}
