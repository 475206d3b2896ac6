package technical

import "math"

// computeAdaptationStats summarizes the rolling outcome window and the
// pattern occurrence history into the inputs of the adaptive score.
func computeAdaptationStats(outcomes []PatternOutcome, history []CandlestickPattern, currentIndex int, cfg Config) AdaptationStats {
	stats := AdaptationStats{
		SampleSize:       len(outcomes),
		CurrentRegime:    DirectionNeutral,
		ReliabilityTrend: EvolutionStable,
		StrengthTrend:    EvolutionStable,
	}

	if len(outcomes) > 0 {
		correct := 0
		bullishSum, bearishSum := 0.0, 0.0
		bullishN, bearishN := 0, 0
		for _, o := range outcomes {
			if o.PredictedCorrectly {
				correct++
			}
			switch o.Pattern.Direction {
			case DirectionBullish:
				bullishSum += o.Magnitude
				bullishN++
			case DirectionBearish:
				bearishSum += o.Magnitude
				bearishN++
			}
		}
		stats.SuccessRate = float64(correct) / float64(len(outcomes))
		if bullishN > 0 {
			stats.AvgMoveAfterBullish = bullishSum / float64(bullishN)
		}
		if bearishN > 0 {
			stats.AvgMoveAfterBearish = bearishSum / float64(bearishN)
		}
	}

	stats.RegimeShiftDetected, stats.CurrentRegime, stats.RegimeShiftMagnitude =
		analyzeFrequency(history, currentIndex, cfg)
	stats.ReliabilityTrend, stats.StrengthTrend = evolutionTrends(history, currentIndex, cfg)

	return stats
}

// analyzeFrequency compares per-pattern occurrence rates in a recent
// sub-window against an older sub-window. A swing beyond the configured
// percent-change threshold on any pattern flags a regime shift; the regime is
// whichever direction dominates recent occurrences.
func analyzeFrequency(history []CandlestickPattern, currentIndex int, cfg Config) (bool, Direction, float64) {
	lookback := cfg.FrequencyLookback
	if lookback <= 0 {
		lookback = 100
	}
	windowStart := currentIndex - lookback + 1
	recentStart := currentIndex - lookback/4 + 1

	// Both sub-windows must cover observed bars; during warm-up the older
	// window would lie before bar 0 and any first occurrence would read as
	// a shift from a rate of zero.
	if windowStart < 0 {
		return false, DirectionNeutral, 0
	}

	recentBars := float64(currentIndex - recentStart + 1)
	olderBars := float64(recentStart - windowStart)
	if recentBars <= 0 || olderBars <= 0 {
		return false, DirectionNeutral, 0
	}

	recentCounts := map[string]int{}
	olderCounts := map[string]int{}
	recentBullish, recentBearish := 0, 0
	for _, p := range history {
		if p.BarIndex < windowStart {
			continue
		}
		if p.BarIndex >= recentStart {
			recentCounts[p.PatternName]++
			switch p.Direction {
			case DirectionBullish:
				recentBullish++
			case DirectionBearish:
				recentBearish++
			}
		} else {
			olderCounts[p.PatternName]++
		}
	}

	maxChange := 0.0
	names := map[string]bool{}
	for n := range recentCounts {
		names[n] = true
	}
	for n := range olderCounts {
		names[n] = true
	}
	for name := range names {
		recentRate := float64(recentCounts[name]) / recentBars
		olderRate := float64(olderCounts[name]) / olderBars
		var change float64
		switch {
		case olderRate == 0 && recentRate == 0:
			continue
		case olderRate == 0:
			change = 100
		default:
			change = (recentRate - olderRate) / olderRate * 100
		}
		if math.Abs(change) > math.Abs(maxChange) {
			maxChange = change
		}
	}

	shifted := math.Abs(maxChange) >= cfg.RegimeShiftThreshold
	regime := DirectionNeutral
	if shifted {
		if recentBullish > recentBearish {
			regime = DirectionBullish
		} else if recentBearish > recentBullish {
			regime = DirectionBearish
		}
	}
	return shifted, regime, maxChange
}

// evolutionTrends compares the recent average reliability and strength of
// detected patterns against their historical averages.
func evolutionTrends(history []CandlestickPattern, currentIndex int, cfg Config) (EvolutionTrend, EvolutionTrend) {
	lookback := cfg.FrequencyLookback
	if lookback <= 0 {
		lookback = 100
	}
	recentStart := currentIndex - lookback/4 + 1

	var recentRel, recentStr, histRel, histStr float64
	recentN, histN := 0, 0
	for _, p := range history {
		if p.BarIndex >= recentStart {
			recentRel += p.Reliability
			recentStr += p.Strength
			recentN++
		} else {
			histRel += p.Reliability
			histStr += p.Strength
			histN++
		}
	}
	if recentN == 0 || histN == 0 {
		return EvolutionStable, EvolutionStable
	}

	classify := func(recent, hist float64) EvolutionTrend {
		delta := recent - hist
		switch {
		case delta > cfg.EvolutionEpsilon:
			return EvolutionImproving
		case delta < -cfg.EvolutionEpsilon:
			return EvolutionDeclining
		default:
			return EvolutionStable
		}
	}

	return classify(recentRel/float64(recentN), histRel/float64(histN)),
		classify(recentStr/float64(recentN), histStr/float64(histN))
}

// computeAdaptiveScore combines the base pattern-summary confidence with the
// three signed adjustments, clamping the result to [0,100].
//
// Trend-following rewards a window whose patterns resolved correctly more
// than half the time (up to +/-20). Frequency-shift pushes with the detected
// regime (up to +/-10). Reliability-evolution adds a fixed nudge for an
// improving or declining pattern mix.
func computeAdaptiveScore(base float64, stats AdaptationStats, cfg Config) AdaptiveScore {
	score := AdaptiveScore{BaseScore: base}

	if stats.SampleSize > 0 {
		score.TrendFollowingAdj = (stats.SuccessRate - 0.5) * 40
	}

	if stats.RegimeShiftDetected {
		magnitude := math.Min(math.Abs(stats.RegimeShiftMagnitude), 100) / 100 * 10
		switch stats.CurrentRegime {
		case DirectionBullish:
			score.FrequencyShiftAdj = magnitude
		case DirectionBearish:
			score.FrequencyShiftAdj = -magnitude
		}
	}

	switch stats.ReliabilityTrend {
	case EvolutionImproving:
		score.ReliabilityEvolutionAdj = 8
	case EvolutionDeclining:
		score.ReliabilityEvolutionAdj = -8
	}

	final := base + score.TrendFollowingAdj + score.FrequencyShiftAdj + score.ReliabilityEvolutionAdj
	score.FinalAdaptiveScore = math.Max(0, math.Min(100, final))
	return score
}
