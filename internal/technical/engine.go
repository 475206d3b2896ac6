package technical

import (
	"context"
	"math"
	"time"

	"fundamental-screener/internal/logger"
	"fundamental-screener/internal/ta"
)

// pendingOutcome is a fired pattern waiting for its forward-move horizon.
type pendingOutcome struct {
	pattern   CandlestickPattern
	fireClose float64
}

// Engine maintains the per-symbol rolling state of the confidence engine.
// Bars for one symbol must arrive strictly in order; different symbols get
// independent engines and may be updated concurrently without locking.
type Engine struct {
	symbol string
	period string
	cfg    Config

	bars     []PriceBar
	barCount int // total bars seen; index of the latest bar is barCount-1

	maHistory map[int][]float64 // recent values of each moving average

	prevShort, prevLong     float64
	havePrevCross           bool
	goldenCross, deathCross bool

	lastPatterns   []CandlestickPattern
	patternHistory []CandlestickPattern
	pending        []pendingOutcome
	outcomes       []PatternOutcome
}

// NewEngine creates an engine for one symbol.
func NewEngine(symbol, period string, cfg Config) *Engine {
	if cfg.FibLookback <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		symbol:    symbol,
		period:    period,
		cfg:       cfg,
		maHistory: map[int][]float64{},
	}
}

// Update ingests the next bar and recomputes all rolling state.
func (e *Engine) Update(ctx context.Context, bar PriceBar) {
	e.bars = append(e.bars, bar)
	e.barCount++
	idx := e.barCount - 1

	// The widest window plus slack is all the history any computation needs.
	maxKeep := e.cfg.FibLookback
	if maWindows[2] > maxKeep {
		maxKeep = maWindows[2]
	}
	maxKeep += 10
	if len(e.bars) > maxKeep {
		e.bars = e.bars[len(e.bars)-maxKeep:]
	}

	closes := make([]float64, len(e.bars))
	for i, b := range e.bars {
		closes[i] = b.Close
	}

	for _, w := range maWindows {
		if len(closes) < w {
			continue
		}
		value := ta.SMA(closes, w)
		hist := append(e.maHistory[w], value)
		if keep := e.cfg.TrendLookback + 5; len(hist) > keep {
			hist = hist[len(hist)-keep:]
		}
		e.maHistory[w] = hist
	}

	e.detectCross(ctx)
	e.detectAndTrackPatterns(ctx, idx, bar)
}

// detectCross fires golden/death cross events edge-triggered: only on the bar
// where the 50-average moves across the 200-average, not while it stays there.
func (e *Engine) detectCross(ctx context.Context) {
	e.goldenCross, e.deathCross = false, false

	short := e.maHistory[maWindows[0]]
	long := e.maHistory[maWindows[1]]
	if len(short) == 0 || len(long) == 0 {
		return
	}
	curShort := short[len(short)-1]
	curLong := long[len(long)-1]

	if e.havePrevCross {
		if e.prevShort <= e.prevLong && curShort > curLong {
			e.goldenCross = true
			logger.Signal(ctx, e.symbol, "GOLDEN_CROSS", "ma50", curShort, "ma200", curLong)
		}
		if e.prevShort >= e.prevLong && curShort < curLong {
			e.deathCross = true
			logger.Signal(ctx, e.symbol, "DEATH_CROSS", "ma50", curShort, "ma200", curLong)
		}
	}

	e.prevShort, e.prevLong = curShort, curLong
	e.havePrevCross = true
}

// detectAndTrackPatterns detects patterns on the latest bar, queues them for
// outcome resolution, and resolves any whose forward horizon elapsed.
func (e *Engine) detectAndTrackPatterns(ctx context.Context, idx int, bar PriceBar) {
	e.lastPatterns = DetectPatterns(e.bars, idx)

	for _, p := range e.lastPatterns {
		e.patternHistory = append(e.patternHistory, p)
		e.pending = append(e.pending, pendingOutcome{pattern: p, fireClose: bar.Close})
	}

	// Drop occurrence history that fell out of the frequency window.
	minIndex := idx - e.cfg.FrequencyLookback
	trimmed := e.patternHistory[:0]
	for _, p := range e.patternHistory {
		if p.BarIndex >= minIndex {
			trimmed = append(trimmed, p)
		}
	}
	e.patternHistory = trimmed

	// Resolve matured pending patterns into outcomes.
	remaining := e.pending[:0]
	for _, pend := range e.pending {
		if idx < pend.pattern.BarIndex+e.cfg.OutcomeHorizon {
			remaining = append(remaining, pend)
			continue
		}
		if pend.fireClose <= 0 {
			continue
		}
		move := (bar.Close - pend.fireClose) / pend.fireClose * 100
		e.outcomes = append(e.outcomes, PatternOutcome{
			Pattern:            pend.pattern,
			PredictedCorrectly: predictedCorrectly(pend.pattern.Direction, move),
			Magnitude:          move,
		})
	}
	e.pending = remaining

	if len(e.outcomes) > e.cfg.OutcomeWindow {
		e.outcomes = e.outcomes[len(e.outcomes)-e.cfg.OutcomeWindow:]
	}
}

// predictedCorrectly judges a pattern against its realized forward move.
// Neutral patterns predict indecision, so a small move either way counts.
func predictedCorrectly(direction Direction, movePct float64) bool {
	switch direction {
	case DirectionBullish:
		return movePct > 0
	case DirectionBearish:
		return movePct < 0
	default:
		return math.Abs(movePct) <= 1.0
	}
}

// movingAverageStates snapshots all three windows on the latest bar.
func (e *Engine) movingAverageStates() []MovingAverageState {
	var price float64
	if len(e.bars) > 0 {
		price = e.bars[len(e.bars)-1].Close
	}

	states := make([]MovingAverageState, 0, len(maWindows))
	for _, w := range maWindows {
		state := MovingAverageState{Window: w, Trend: DirectionNeutral}
		hist := e.maHistory[w]
		if len(hist) > 0 {
			state.Filled = true
			state.Current = hist[len(hist)-1]
			if price != 0 && state.Current != 0 {
				state.DistanceFromPrice = (price - state.Current) / state.Current * 100
			}
			if len(hist) >= e.cfg.TrendLookback {
				state.Slope = ta.Slope(hist, e.cfg.TrendLookback)
				state.Trend = maTrend(state.Slope, state.Current)
			}
		}
		states = append(states, state)
	}
	return states
}

// maTrend classifies the direction of the average itself. The threshold is
// relative so the classification is scale-free across symbols.
func maTrend(slope, current float64) Direction {
	if current == 0 || math.IsNaN(slope) {
		return DirectionNeutral
	}
	relative := slope / current
	switch {
	case relative > 0.0005:
		return DirectionBullish
	case relative < -0.0005:
		return DirectionBearish
	default:
		return DirectionNeutral
	}
}

// Report assembles the full per-symbol confidence report from current state.
func (e *Engine) Report() *Report {
	states := e.movingAverageStates()
	fib := ComputeFibonacci(e.bars, e.cfg.FibLookback)
	summary := SummarizePatterns(e.lastPatterns)
	stats := computeAdaptationStats(e.outcomes, e.patternHistory, e.barCount-1, e.cfg)

	return &Report{
		Symbol:         e.symbol,
		Period:         e.period,
		GeneratedAt:    time.Now(),
		Bars:           e.barCount,
		MovingAverages: states,
		GoldenCross:    e.goldenCross,
		DeathCross:     e.deathCross,
		Fibonacci:      fib,
		Confidence:     computeConfidence(e.cfg, e.bars, states, e.goldenCross, fib, summary),
		Patterns:       summary,
		Adaptation:     stats,
		Adaptive:       computeAdaptiveScore(summary.Confidence, stats, e.cfg),
	}
}

// Analyze runs a full bar series through a fresh engine and returns the
// resulting report. This is the batch entry point used by the CLI.
func Analyze(ctx context.Context, symbol, period string, bars []PriceBar, cfg Config) *Report {
	engine := NewEngine(symbol, period, cfg)
	for _, bar := range bars {
		engine.Update(ctx, bar)
	}
	return engine.Report()
}
