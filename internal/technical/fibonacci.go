package technical

import "math"

// Standard retracement ratios, shallowest to deepest.
var fibRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}

// ComputeFibonacci derives retracement levels from the high/low over the
// active lookback window. Level prices descend from the window high: ratio 0
// sits at the high, ratio 1 at the low.
func ComputeFibonacci(bars []PriceBar, lookback int) FibonacciAnalysis {
	if len(bars) == 0 {
		return FibonacciAnalysis{}
	}
	start := len(bars) - lookback
	if start < 0 {
		start = 0
	}

	high := bars[start].High
	low := bars[start].Low
	for _, b := range bars[start:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}

	analysis := FibonacciAnalysis{WindowHigh: high, WindowLow: low}
	span := high - low
	for _, ratio := range fibRatios {
		analysis.Levels = append(analysis.Levels, FibLevel{
			Ratio: ratio,
			Price: high - span*ratio,
		})
	}

	price := bars[len(bars)-1].Close
	analysis.CurrentFibPosition = nearestLevelBelow(analysis.Levels, price)
	analysis.GoldenRatioStrength = goldenRatioStrength(analysis.Levels, span, price)
	return analysis
}

// nearestLevelBelow returns the ratio of the closest level at or below price.
// Below every level (price under the window low) the deepest ratio applies.
func nearestLevelBelow(levels []FibLevel, price float64) float64 {
	best := levels[len(levels)-1].Ratio
	bestDist := math.Inf(1)
	for _, lv := range levels {
		if lv.Price <= price && price-lv.Price < bestDist {
			best = lv.Ratio
			bestDist = price - lv.Price
		}
	}
	return best
}

// goldenRatioStrength is an inverse-distance score in [0,100] peaking when
// price sits exactly on the 0.618 level.
func goldenRatioStrength(levels []FibLevel, span, price float64) float64 {
	if span <= 0 {
		return 0
	}
	var golden float64
	for _, lv := range levels {
		if lv.Ratio == 0.618 {
			golden = lv.Price
		}
	}
	dist := math.Abs(price-golden) / span
	return math.Max(0, 100*(1-dist*4))
}
