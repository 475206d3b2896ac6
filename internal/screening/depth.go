package screening

import "sort"

// AnalyzeDepth computes the disclosure depth score from per-fiscal-year 10-K
// depth metrics. Year-over-year changes need the two most recent years;
// with fewer the result degrades to a contracting, zero-score outcome.
func AnalyzeDepth(cfg Config, sets []DepthMetricSet) DepthResult {
	if len(sets) == 0 {
		return DepthResult{
			YoYChanges:     map[string]float64{},
			ExpansionTrend: ExpansionContracting,
			Grade:          GradePoor,
		}
	}

	ordered := make([]DepthMetricSet, len(sets))
	copy(ordered, sets)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].FiscalYear < ordered[j].FiscalYear
	})

	current := ordered[len(ordered)-1]
	score := depthScore(cfg.Normalization, current)

	if len(ordered) < 2 {
		return DepthResult{
			DepthScore:     score,
			YoYChanges:     map[string]float64{},
			ExpansionTrend: ExpansionStable,
			Grade:          gradeFor(score),
		}
	}

	previous := ordered[len(ordered)-2]
	changes := map[string]float64{}
	prevMetrics := previous.Metrics()
	for name, value := range current.Metrics() {
		changes[name] = value - prevMetrics[name]
	}

	positive := 0
	for _, delta := range changes {
		if delta > 0 {
			positive++
		}
	}

	return DepthResult{
		DepthScore:     score,
		YoYChanges:     changes,
		ExpansionTrend: expansionTrendFor(positive),
		Grade:          gradeFor(score),
	}
}

// depthScore is the weighted sum of normalized metric sub-scores.
// Weights: line items 25%, disclosure sections 25%, segment details 20%,
// risk factors 15%, MD&A pages 15%.
func depthScore(scale NormalizationScale, set DepthMetricSet) float64 {
	return 0.25*normalize(set.LineItems, scale.LineItems) +
		0.25*normalize(set.DisclosureSections, scale.DisclosureSections) +
		0.20*normalize(set.SegmentDetails, scale.SegmentDetails) +
		0.15*normalize(set.RiskFactors, scale.RiskFactors) +
		0.15*normalize(set.MDAndAPages, scale.MDAndAPages)
}

// normalize maps a raw metric value onto [0,100] against its reference scale.
func normalize(value, reference float64) float64 {
	if reference <= 0 || value <= 0 {
		return 0
	}
	score := value / reference * 100.0
	if score > 100 {
		score = 100
	}
	return score
}

func expansionTrendFor(positiveChanges int) ExpansionTrend {
	switch {
	case positiveChanges >= 4:
		return ExpansionExpanding
	case positiveChanges == 3:
		return ExpansionStablePositive
	case positiveChanges == 2:
		return ExpansionStable
	default:
		return ExpansionContracting
	}
}
