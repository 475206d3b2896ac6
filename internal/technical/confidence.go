package technical

import (
	"math"

	"fundamental-screener/internal/ta"
)

// computeConfidence builds the multi-component bullish score. Each component
// is a [0,1] factor scaled by its weight; with the default weights the
// components sum to 40+20+15+25 = 100.
func computeConfidence(cfg Config, bars []PriceBar, states []MovingAverageState, goldenCross bool, fib FibonacciAnalysis, patterns PatternSummary) BullishConfidence {
	c := BullishConfidence{
		MAAlignment:         cfg.Weights.MAAlignment * maAlignmentFactor(bars, states, goldenCross),
		FibAlignment:        cfg.Weights.Fibonacci * fibAlignmentFactor(fib),
		VolumeConfirmation:  cfg.Weights.Volume * volumeFactor(cfg, bars),
		PatternConfirmation: cfg.Weights.Pattern * patternFactor(patterns),
	}
	c.Score = c.MAAlignment + c.FibAlignment + c.VolumeConfirmation + c.PatternConfirmation
	c.Rating = confidenceRating(c.Score)
	return c
}

// maAlignmentFactor rewards price above the short average, bullish ordering
// of the averages, and a rising short average. A golden cross on the latest
// bar adds a bonus.
func maAlignmentFactor(bars []PriceBar, states []MovingAverageState, goldenCross bool) float64 {
	if len(bars) == 0 {
		return 0
	}
	price := bars[len(bars)-1].Close

	byWindow := map[int]MovingAverageState{}
	for _, s := range states {
		byWindow[s.Window] = s
	}
	ma50, ma200, ma250 := byWindow[50], byWindow[200], byWindow[250]

	factor := 0.0
	if ma50.Filled && price > ma50.Current {
		factor += 0.30
	}
	if ma50.Filled && ma200.Filled && ma50.Current > ma200.Current {
		factor += 0.35
	}
	if ma200.Filled && ma250.Filled && ma200.Current > ma250.Current {
		factor += 0.15
	}
	if ma50.Filled && ma50.Trend == DirectionBullish {
		factor += 0.20
	}
	if goldenCross {
		factor += 0.25
	}
	return math.Min(factor, 1.0)
}

// fibAlignmentFactor rewards price holding in the upper retracement zone and
// proximity to the golden ratio level.
func fibAlignmentFactor(fib FibonacciAnalysis) float64 {
	if fib.WindowHigh <= fib.WindowLow {
		return 0
	}
	positional := 1.0 - fib.CurrentFibPosition
	return math.Min(0.5*positional+0.5*fib.GoldenRatioStrength/100, 1.0)
}

// volumeFactor compares the latest bar's volume against its recent average.
// Expansion on a bullish close confirms; expansion on a bearish close does not.
func volumeFactor(cfg Config, bars []PriceBar) float64 {
	if len(bars) == 0 {
		return 0
	}
	last := bars[len(bars)-1]

	lookback := cfg.VolumeLookback
	if lookback <= 0 {
		lookback = 20
	}
	if len(bars) < lookback {
		return 0.3 // not enough history to confirm either way
	}

	volumes := make([]float64, 0, lookback)
	for _, b := range bars[len(bars)-lookback:] {
		volumes = append(volumes, b.Volume)
	}
	avg := ta.Mean(volumes)
	if avg <= 0 || math.IsNaN(avg) {
		return 0.3
	}

	ratio := last.Volume / avg
	var factor float64
	switch {
	case ratio >= 1.5:
		factor = 1.0
	case ratio >= 1.2:
		factor = 0.7
	case ratio >= 1.0:
		factor = 0.5
	default:
		factor = 0.3
	}
	if last.Close < last.Open {
		factor *= 0.5
	}
	return factor
}

// patternFactor converts the pattern summary into a bullish factor.
func patternFactor(patterns PatternSummary) float64 {
	net := patterns.BullishCount - patterns.BearishCount
	switch {
	case net > 0:
		return math.Min(patterns.Confidence/100+0.1*float64(net), 1.0)
	case net < 0:
		return math.Max(0.3-0.1*float64(-net), 0)
	default:
		return 0.4
	}
}

func confidenceRating(score float64) string {
	switch {
	case score >= 80:
		return "very strong"
	case score >= 65:
		return "strong"
	case score >= 50:
		return "neutral"
	case score >= 35:
		return "weak"
	default:
		return "very weak"
	}
}
