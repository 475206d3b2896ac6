package technical

import "time"

// PriceBar is one OHLCV trading period.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Direction labels a signal as bullish, bearish or neutral.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
	DirectionNeutral Direction = "neutral"
)

// MovingAverageState describes one moving-average window on the latest bar.
// Current is only meaningful once Filled is true. Trend is the direction of
// the average itself over a short lookback, not of price.
type MovingAverageState struct {
	Window            int       `json:"window"`
	Current           float64   `json:"current"`
	Filled            bool      `json:"filled"`
	Trend             Direction `json:"trend"`
	Slope             float64   `json:"slope"`
	DistanceFromPrice float64   `json:"distance_from_price_pct"`
}

// FibLevel is one retracement level with its price.
type FibLevel struct {
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
}

// FibonacciAnalysis holds retracement levels over the active lookback window.
type FibonacciAnalysis struct {
	WindowHigh          float64    `json:"window_high"`
	WindowLow           float64    `json:"window_low"`
	Levels              []FibLevel `json:"levels"`
	CurrentFibPosition  float64    `json:"current_fib_position"` // ratio of nearest level below price
	GoldenRatioStrength float64    `json:"golden_ratio_strength"`
}

// CandlestickPattern is one detected pattern at a bar index.
type CandlestickPattern struct {
	PatternName     string    `json:"pattern_name"`
	Direction       Direction `json:"direction"`
	Strength        float64   `json:"strength"`         // 0-100
	Reliability     float64   `json:"reliability"`      // 0-100, baseline before temporal adjustment
	CombinationType string    `json:"combination_type"` // single, double, triple
	BarIndex        int       `json:"bar_index"`
}

// PatternSummary aggregates the patterns detected on the latest bar.
type PatternSummary struct {
	Patterns     []CandlestickPattern `json:"patterns"`
	BullishCount int                  `json:"bullish_count"`
	BearishCount int                  `json:"bearish_count"`
	NeutralCount int                  `json:"neutral_count"`
	Strongest    *CandlestickPattern  `json:"strongest,omitempty"`
	Confidence   float64              `json:"confidence"` // 0-100
}

// PatternOutcome joins a pattern with its realized forward price move.
type PatternOutcome struct {
	Pattern            CandlestickPattern `json:"pattern"`
	PredictedCorrectly bool               `json:"predicted_correctly"`
	Magnitude          float64            `json:"magnitude"` // forward move in percent
}

// EvolutionTrend describes how pattern reliability or strength is moving.
type EvolutionTrend string

const (
	EvolutionImproving EvolutionTrend = "improving"
	EvolutionDeclining EvolutionTrend = "declining"
	EvolutionStable    EvolutionTrend = "stable"
)

// AdaptationStats summarizes the rolling pattern-outcome history.
type AdaptationStats struct {
	SampleSize           int            `json:"sample_size"`
	SuccessRate          float64        `json:"success_rate"`
	AvgMoveAfterBullish  float64        `json:"avg_move_after_bullish"`
	AvgMoveAfterBearish  float64        `json:"avg_move_after_bearish"`
	RegimeShiftDetected  bool           `json:"regime_shift_detected"`
	CurrentRegime        Direction      `json:"current_regime"`
	RegimeShiftMagnitude float64        `json:"regime_shift_magnitude"` // percent change in occurrence rate
	ReliabilityTrend     EvolutionTrend `json:"reliability_trend"`
	StrengthTrend        EvolutionTrend `json:"strength_trend"`
}

// AdaptiveScore is the temporally adjusted pattern confidence.
type AdaptiveScore struct {
	BaseScore               float64 `json:"base_score"`
	TrendFollowingAdj       float64 `json:"trend_following_adj"`
	FrequencyShiftAdj       float64 `json:"frequency_shift_adj"`
	ReliabilityEvolutionAdj float64 `json:"reliability_evolution_adj"`
	FinalAdaptiveScore      float64 `json:"final_adaptive_score"` // clamped to [0,100]
}

// BullishConfidence is the multi-component bullish score for a symbol.
type BullishConfidence struct {
	MAAlignment         float64 `json:"ma_alignment"`
	FibAlignment        float64 `json:"fib_alignment"`
	VolumeConfirmation  float64 `json:"volume_confirmation"`
	PatternConfirmation float64 `json:"pattern_confirmation"`
	Score               float64 `json:"score"`
	Rating              string  `json:"rating"`
}

// Report is the full per-symbol output of the confidence engine.
type Report struct {
	Symbol         string               `json:"symbol"`
	Period         string               `json:"period"`
	GeneratedAt    time.Time            `json:"generated_at"`
	Bars           int                  `json:"bars"`
	MovingAverages []MovingAverageState `json:"moving_averages"`
	GoldenCross    bool                 `json:"golden_cross"` // fired on the latest bar
	DeathCross     bool                 `json:"death_cross"`
	Fibonacci      FibonacciAnalysis    `json:"fibonacci"`
	Confidence     BullishConfidence    `json:"confidence"`
	Patterns       PatternSummary       `json:"patterns"`
	Adaptation     AdaptationStats      `json:"adaptation"`
	Adaptive       AdaptiveScore        `json:"adaptive"`
}

// ConfidenceWeights are the bullish-confidence component weights.
// They should sum to 100.
type ConfidenceWeights struct {
	MAAlignment float64 `yaml:"ma_alignment"`
	Fibonacci   float64 `yaml:"fibonacci"`
	Volume      float64 `yaml:"volume"`
	Pattern     float64 `yaml:"pattern"`
}

// Config holds the tunables of the technical track.
type Config struct {
	TrendLookback  int `yaml:"trend_lookback"`
	FibLookback    int `yaml:"fib_lookback"`
	VolumeLookback int `yaml:"volume_lookback"`

	Weights ConfidenceWeights `yaml:"weights"`

	// Temporal adaptation.
	OutcomeHorizon       int     `yaml:"outcome_horizon"`        // bars to look forward
	OutcomeWindow        int     `yaml:"outcome_window"`         // rolling outcomes kept
	FrequencyLookback    int     `yaml:"frequency_lookback"`     // bars covered by frequency analysis
	RegimeShiftThreshold float64 `yaml:"regime_shift_threshold"` // percent change in occurrence rate
	EvolutionEpsilon     float64 `yaml:"evolution_epsilon"`      // min score delta before a trend is called
}

// Moving-average window lengths maintained by the engine.
var maWindows = [3]int{50, 200, 250}

// DefaultConfig returns the documented default tunables.
func DefaultConfig() Config {
	return Config{
		TrendLookback:  5,
		FibLookback:    250,
		VolumeLookback: 20,
		Weights: ConfidenceWeights{
			MAAlignment: 40,
			Fibonacci:   20,
			Volume:      15,
			Pattern:     25,
		},
		OutcomeHorizon:       5,
		OutcomeWindow:        50,
		FrequencyLookback:    100,
		RegimeShiftThreshold: 50,
		EvolutionEpsilon:     3,
	}
}
