package technical

import "math"

// Candlestick pattern names.
const (
	PatternHammer           = "hammer"
	PatternInvertedHammer   = "inverted_hammer"
	PatternDoji             = "doji"
	PatternDragonflyDoji    = "dragonfly_doji"
	PatternGravestoneDoji   = "gravestone_doji"
	PatternBullishEngulfing = "bullish_engulfing"
	PatternBearishEngulfing = "bearish_engulfing"
	PatternMorningStar      = "morning_star"
	PatternEveningStar      = "evening_star"
	PatternThreeWhite       = "three_white_soldiers"
	PatternThreeBlack       = "three_black_crows"
)

// Combination types by candle count.
const (
	CombinationSingle = "single"
	CombinationDouble = "double"
	CombinationTriple = "triple"
)

// Baseline reliability per pattern, before temporal adjustment. Multi-candle
// formations are historically more dependable than single candles.
var baseReliability = map[string]float64{
	PatternHammer:           60,
	PatternInvertedHammer:   55,
	PatternDoji:             45,
	PatternDragonflyDoji:    60,
	PatternGravestoneDoji:   60,
	PatternBullishEngulfing: 70,
	PatternBearishEngulfing: 70,
	PatternMorningStar:      75,
	PatternEveningStar:      75,
	PatternThreeWhite:       80,
	PatternThreeBlack:       80,
}

// DetectPatterns runs the fixed pattern library against the latest bar of the
// series. barIndex is the index the detections are stamped with.
func DetectPatterns(bars []PriceBar, barIndex int) []CandlestickPattern {
	if len(bars) < 2 {
		return nil
	}

	var patterns []CandlestickPattern
	add := func(p *CandlestickPattern) {
		if p != nil {
			p.BarIndex = barIndex
			patterns = append(patterns, *p)
		}
	}

	add(detectHammer(bars))
	add(detectInvertedHammer(bars))
	add(detectDoji(bars))
	add(detectEngulfing(bars))
	add(detectStar(bars))
	add(detectSoldiersCrows(bars))

	return patterns
}

func newPattern(name string, direction Direction, strength float64, combination string) *CandlestickPattern {
	return &CandlestickPattern{
		PatternName:     name,
		Direction:       direction,
		Strength:        math.Min(strength, 100),
		Reliability:     baseReliability[name],
		CombinationType: combination,
	}
}

// detectHammer finds a small body at the top of a long lower wick.
func detectHammer(bars []PriceBar) *CandlestickPattern {
	c := bars[len(bars)-1]
	body := math.Abs(c.Close - c.Open)
	totalRange := c.High - c.Low
	if totalRange == 0 {
		return nil
	}

	lowerWick := math.Min(c.Open, c.Close) - c.Low
	upperWick := c.High - math.Max(c.Open, c.Close)

	if body/totalRange < 0.35 && lowerWick >= body*2 && upperWick < totalRange*0.2 {
		strength := 60.0
		if hasPriorTrend(bars, DirectionBearish, 5) {
			strength += 20
		}
		if lowerWick >= body*3 {
			strength += 10
		}
		if c.Close > c.Open {
			strength += 5
		}
		return newPattern(PatternHammer, DirectionBullish, strength, CombinationSingle)
	}
	return nil
}

// detectInvertedHammer finds a small body under a long upper wick.
func detectInvertedHammer(bars []PriceBar) *CandlestickPattern {
	c := bars[len(bars)-1]
	body := math.Abs(c.Close - c.Open)
	totalRange := c.High - c.Low
	if totalRange == 0 {
		return nil
	}

	lowerWick := math.Min(c.Open, c.Close) - c.Low
	upperWick := c.High - math.Max(c.Open, c.Close)

	if body/totalRange < 0.35 && upperWick >= body*2 && lowerWick < totalRange*0.2 {
		strength := 55.0
		if hasPriorTrend(bars, DirectionBearish, 5) {
			strength += 20
		}
		if upperWick >= body*3 {
			strength += 10
		}
		return newPattern(PatternInvertedHammer, DirectionBullish, strength, CombinationSingle)
	}
	return nil
}

// detectDoji classifies indecision candles, including the dragonfly and
// gravestone variants.
func detectDoji(bars []PriceBar) *CandlestickPattern {
	c := bars[len(bars)-1]
	body := math.Abs(c.Close - c.Open)
	totalRange := c.High - c.Low
	if totalRange == 0 {
		return nil
	}
	if body/totalRange > 0.1 {
		return nil
	}

	lowerWick := math.Min(c.Open, c.Close) - c.Low
	upperWick := c.High - math.Max(c.Open, c.Close)

	name := PatternDoji
	direction := DirectionNeutral
	strength := 55.0

	if lowerWick > upperWick*2 {
		name = PatternDragonflyDoji
		direction = DirectionBullish
		strength = 70
		if hasPriorTrend(bars, DirectionBearish, 5) {
			strength += 15
		}
	} else if upperWick > lowerWick*2 {
		name = PatternGravestoneDoji
		direction = DirectionBearish
		strength = 70
		if hasPriorTrend(bars, DirectionBullish, 5) {
			strength += 15
		}
	}

	return newPattern(name, direction, strength, CombinationSingle)
}

// detectEngulfing finds a body of opposite color that fully engulfs the
// previous body.
func detectEngulfing(bars []PriceBar) *CandlestickPattern {
	if len(bars) < 3 {
		return nil
	}
	prev := bars[len(bars)-2]
	curr := bars[len(bars)-1]

	prevBody := prev.Close - prev.Open
	currBody := curr.Close - curr.Open
	if prevBody == 0 {
		return nil
	}

	if prevBody < 0 && currBody > 0 && curr.Close > prev.Open && curr.Open < prev.Close {
		strength := 65.0
		if ratio := math.Abs(currBody) / math.Abs(prevBody); ratio >= 1.5 {
			strength += 15
		} else if ratio >= 1.2 {
			strength += 8
		}
		if hasPriorTrend(bars, DirectionBearish, 5) {
			strength += 15
		}
		return newPattern(PatternBullishEngulfing, DirectionBullish, strength, CombinationDouble)
	}

	if prevBody > 0 && currBody < 0 && curr.Open > prev.Close && curr.Close < prev.Open {
		strength := 65.0
		if ratio := math.Abs(currBody) / math.Abs(prevBody); ratio >= 1.5 {
			strength += 15
		} else if ratio >= 1.2 {
			strength += 8
		}
		if hasPriorTrend(bars, DirectionBullish, 5) {
			strength += 15
		}
		return newPattern(PatternBearishEngulfing, DirectionBearish, strength, CombinationDouble)
	}

	return nil
}

// detectStar finds morning star (bullish) and evening star (bearish)
// three-candle reversals.
func detectStar(bars []PriceBar) *CandlestickPattern {
	if len(bars) < 4 {
		return nil
	}
	first := bars[len(bars)-3]
	middle := bars[len(bars)-2]
	last := bars[len(bars)-1]

	firstBody := first.Close - first.Open
	middleBody := math.Abs(middle.Close - middle.Open)
	lastBody := last.Close - last.Open
	middleRange := middle.High - middle.Low

	if middleRange > 0 && middleBody/middleRange > 0.3 {
		return nil // star candle too large
	}

	firstMid := (first.Open + first.Close) / 2

	if firstBody < 0 && lastBody > 0 &&
		math.Abs(firstBody) > middleBody*2 && lastBody > middleBody*2 {
		strength := 70.0
		if hasPriorTrend(bars, DirectionBearish, 5) {
			strength += 15
		}
		if last.Close > firstMid {
			strength += 10
		}
		return newPattern(PatternMorningStar, DirectionBullish, strength, CombinationTriple)
	}

	if firstBody > 0 && lastBody < 0 &&
		firstBody > middleBody*2 && math.Abs(lastBody) > middleBody*2 {
		strength := 70.0
		if hasPriorTrend(bars, DirectionBullish, 5) {
			strength += 15
		}
		if last.Close < firstMid {
			strength += 10
		}
		return newPattern(PatternEveningStar, DirectionBearish, strength, CombinationTriple)
	}

	return nil
}

// detectSoldiersCrows finds three consecutive same-colored candles with
// progressively higher (or lower) closes.
func detectSoldiersCrows(bars []PriceBar) *CandlestickPattern {
	if len(bars) < 4 {
		return nil
	}
	c1 := bars[len(bars)-3]
	c2 := bars[len(bars)-2]
	c3 := bars[len(bars)-1]

	if c1.Close > c1.Open && c2.Close > c2.Open && c3.Close > c3.Open {
		if c2.Open >= c1.Open && c2.Close > c1.Close && c3.Open >= c2.Open && c3.Close > c2.Close {
			strength := 75.0
			if hasPriorTrend(bars, DirectionBearish, 5) {
				strength += 15
			}
			return newPattern(PatternThreeWhite, DirectionBullish, strength, CombinationTriple)
		}
	}

	if c1.Close < c1.Open && c2.Close < c2.Open && c3.Close < c3.Open {
		if c2.Open <= c1.Open && c2.Close < c1.Close && c3.Open <= c2.Open && c3.Close < c2.Close {
			strength := 75.0
			if hasPriorTrend(bars, DirectionBullish, 5) {
				strength += 15
			}
			return newPattern(PatternThreeBlack, DirectionBearish, strength, CombinationTriple)
		}
	}

	return nil
}

// hasPriorTrend reports whether at least 60% of the candles preceding the
// pattern closed in the given direction.
func hasPriorTrend(bars []PriceBar, direction Direction, lookback int) bool {
	if len(bars) < lookback+2 {
		return false
	}
	start := len(bars) - lookback - 2
	if start < 0 {
		start = 0
	}
	end := len(bars) - 2

	up, down := 0, 0
	for i := start; i < end; i++ {
		if bars[i].Close > bars[i].Open {
			up++
		} else if bars[i].Close < bars[i].Open {
			down++
		}
	}

	total := end - start
	if total == 0 {
		return false
	}

	switch direction {
	case DirectionBullish:
		return float64(up)/float64(total) >= 0.6
	case DirectionBearish:
		return float64(down)/float64(total) >= 0.6
	}
	return false
}

// SummarizePatterns aggregates detections into direction counts, the single
// strongest pattern, and a 0-100 confidence for the dominant direction.
func SummarizePatterns(patterns []CandlestickPattern) PatternSummary {
	summary := PatternSummary{Patterns: patterns}
	if len(patterns) == 0 {
		summary.Confidence = 0
		return summary
	}

	var strongest *CandlestickPattern
	bullish, bearish := 0.0, 0.0
	for i := range patterns {
		p := &patterns[i]
		switch p.Direction {
		case DirectionBullish:
			summary.BullishCount++
			bullish += p.Strength * p.Reliability / 100
		case DirectionBearish:
			summary.BearishCount++
			bearish += p.Strength * p.Reliability / 100
		default:
			summary.NeutralCount++
		}
		if strongest == nil || p.Strength > strongest.Strength {
			strongest = p
		}
	}
	summary.Strongest = strongest

	dominant := math.Max(bullish, bearish)
	summary.Confidence = math.Min(dominant, 100)
	return summary
}
