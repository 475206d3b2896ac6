package technical

import (
	"math"
	"testing"
)

func outcome(direction Direction, correct bool, magnitude float64) PatternOutcome {
	return PatternOutcome{
		Pattern:            CandlestickPattern{PatternName: PatternHammer, Direction: direction},
		PredictedCorrectly: correct,
		Magnitude:          magnitude,
	}
}

func TestAdaptationStatsFromOutcomes(t *testing.T) {
	outcomes := []PatternOutcome{
		outcome(DirectionBullish, true, 2.0),
		outcome(DirectionBullish, true, 4.0),
		outcome(DirectionBullish, false, -1.0),
		outcome(DirectionBearish, true, -3.0),
	}

	stats := computeAdaptationStats(outcomes, nil, 99, DefaultConfig())

	if stats.SampleSize != 4 {
		t.Errorf("Expected sample size 4, got %d", stats.SampleSize)
	}
	if stats.SuccessRate != 0.75 {
		t.Errorf("Expected success rate 0.75, got %f", stats.SuccessRate)
	}
	if math.Abs(stats.AvgMoveAfterBullish-5.0/3.0) > 1e-9 {
		t.Errorf("Expected avg bullish move 1.667, got %f", stats.AvgMoveAfterBullish)
	}
	if stats.AvgMoveAfterBearish != -3.0 {
		t.Errorf("Expected avg bearish move -3, got %f", stats.AvgMoveAfterBearish)
	}
	if stats.RegimeShiftDetected {
		t.Error("Expected no regime shift without history")
	}
}

func TestRegimeShiftDetection(t *testing.T) {
	cfg := DefaultConfig()

	// Hammers absent in the older window, frequent in the recent quarter.
	var history []CandlestickPattern
	for i := 80; i < 100; i += 2 {
		history = append(history, CandlestickPattern{
			PatternName: PatternHammer,
			Direction:   DirectionBullish,
			BarIndex:    i,
		})
	}

	shifted, regime, magnitude := analyzeFrequency(history, 99, cfg)

	if !shifted {
		t.Fatal("Expected regime shift for newly appearing pattern")
	}
	if regime != DirectionBullish {
		t.Errorf("Expected bullish regime, got %s", regime)
	}
	if magnitude != 100 {
		t.Errorf("Expected magnitude 100 for pattern absent earlier, got %f", magnitude)
	}
}

func TestNoRegimeShiftDuringWarmup(t *testing.T) {
	cfg := DefaultConfig()

	// First pattern ever, before a full lookback window of bars exists.
	history := []CandlestickPattern{
		{PatternName: PatternHammer, Direction: DirectionBullish, BarIndex: 10},
	}

	shifted, regime, magnitude := analyzeFrequency(history, 12, cfg)

	if shifted {
		t.Error("Expected no regime shift before a full lookback window")
	}
	if regime != DirectionNeutral || magnitude != 0 {
		t.Errorf("Expected neutral/0 during warm-up, got %s/%f", regime, magnitude)
	}
}

func TestNoRegimeShiftOnSteadyFrequency(t *testing.T) {
	cfg := DefaultConfig()

	// One hammer every 5 bars across the whole window.
	var history []CandlestickPattern
	for i := 0; i < 100; i += 5 {
		history = append(history, CandlestickPattern{
			PatternName: PatternHammer,
			Direction:   DirectionBullish,
			BarIndex:    i,
		})
	}

	shifted, regime, _ := analyzeFrequency(history, 99, cfg)

	if shifted {
		t.Error("Expected no regime shift for a steady occurrence rate")
	}
	if regime != DirectionNeutral {
		t.Errorf("Expected neutral regime without a shift, got %s", regime)
	}
}

func TestEvolutionTrends(t *testing.T) {
	cfg := DefaultConfig()

	var history []CandlestickPattern
	// Older patterns: reliability 60, strength 60.
	for i := 0; i < 60; i += 5 {
		history = append(history, CandlestickPattern{
			PatternName: PatternHammer, Reliability: 60, Strength: 60, BarIndex: i,
		})
	}
	// Recent patterns: reliability 70, strength 50.
	for i := 80; i < 100; i += 5 {
		history = append(history, CandlestickPattern{
			PatternName: PatternHammer, Reliability: 70, Strength: 50, BarIndex: i,
		})
	}

	reliability, strength := evolutionTrends(history, 99, cfg)

	if reliability != EvolutionImproving {
		t.Errorf("Expected improving reliability, got %s", reliability)
	}
	if strength != EvolutionDeclining {
		t.Errorf("Expected declining strength, got %s", strength)
	}
}

func TestEvolutionStableWithoutBothWindows(t *testing.T) {
	cfg := DefaultConfig()
	history := []CandlestickPattern{
		{PatternName: PatternHammer, Reliability: 60, Strength: 60, BarIndex: 99},
	}

	reliability, strength := evolutionTrends(history, 99, cfg)
	if reliability != EvolutionStable || strength != EvolutionStable {
		t.Errorf("Expected stable/stable with one-sided history, got %s/%s", reliability, strength)
	}
}

func TestAdaptiveScoreClampsHigh(t *testing.T) {
	stats := AdaptationStats{SampleSize: 10, SuccessRate: 1.0}
	score := computeAdaptiveScore(95, stats, DefaultConfig())

	if score.TrendFollowingAdj != 20 {
		t.Errorf("Expected trend adjustment +20, got %f", score.TrendFollowingAdj)
	}
	if score.FinalAdaptiveScore != 100 {
		t.Errorf("Expected clamp to 100, got %f", score.FinalAdaptiveScore)
	}
}

func TestAdaptiveScoreClampsLow(t *testing.T) {
	stats := AdaptationStats{
		SampleSize:       10,
		SuccessRate:      0,
		ReliabilityTrend: EvolutionDeclining,
	}
	score := computeAdaptiveScore(5, stats, DefaultConfig())

	if score.TrendFollowingAdj != -20 {
		t.Errorf("Expected trend adjustment -20, got %f", score.TrendFollowingAdj)
	}
	if score.ReliabilityEvolutionAdj != -8 {
		t.Errorf("Expected evolution adjustment -8, got %f", score.ReliabilityEvolutionAdj)
	}
	if score.FinalAdaptiveScore != 0 {
		t.Errorf("Expected clamp to 0, got %f", score.FinalAdaptiveScore)
	}
}

func TestAdaptiveRegimeAdjustmentSign(t *testing.T) {
	cfg := DefaultConfig()

	bullish := computeAdaptiveScore(50, AdaptationStats{
		RegimeShiftDetected:  true,
		CurrentRegime:        DirectionBullish,
		RegimeShiftMagnitude: 80,
	}, cfg)
	if bullish.FrequencyShiftAdj != 8 {
		t.Errorf("Expected +8 bullish adjustment, got %f", bullish.FrequencyShiftAdj)
	}

	bearish := computeAdaptiveScore(50, AdaptationStats{
		RegimeShiftDetected:  true,
		CurrentRegime:        DirectionBearish,
		RegimeShiftMagnitude: -120,
	}, cfg)
	if bearish.FrequencyShiftAdj != -10 {
		t.Errorf("Expected -10 bearish adjustment capped at magnitude 100, got %f", bearish.FrequencyShiftAdj)
	}
}

func TestAdaptiveNoSamplesNoTrendAdjustment(t *testing.T) {
	score := computeAdaptiveScore(50, AdaptationStats{}, DefaultConfig())
	if score.TrendFollowingAdj != 0 {
		t.Errorf("Expected no trend adjustment without samples, got %f", score.TrendFollowingAdj)
	}
	if score.FinalAdaptiveScore != 50 {
		t.Errorf("Expected unchanged score 50, got %f", score.FinalAdaptiveScore)
	}
}
