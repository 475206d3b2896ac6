package screening

import "time"

// PeriodType distinguishes quarterly from annual reporting periods.
type PeriodType string

const (
	PeriodQuarter PeriodType = "quarter"
	PeriodAnnual  PeriodType = "annual"
)

// FinancialPeriod is one reporting period for a company. Immutable once
// produced by the data provider; callers keep periods ordered oldest first.
type FinancialPeriod struct {
	PeriodLabel string     `json:"period_label"` // e.g. "Q1-2023" or "FY-2023"
	PeriodType  PeriodType `json:"period_type"`
	Revenue     float64    `json:"revenue"`
	FiscalYear  int        `json:"fiscal_year"`
}

// DepthMetricSet holds the five 10-K disclosure depth metrics for one fiscal
// year. Exactly one set per fiscal year per company.
type DepthMetricSet struct {
	FiscalYear         int     `json:"fiscal_year"`
	LineItems          float64 `json:"line_items"`
	DisclosureSections float64 `json:"disclosure_sections"`
	SegmentDetails     float64 `json:"segment_details"`
	RiskFactors        float64 `json:"risk_factors"`
	MDAndAPages        float64 `json:"md_and_a_pages"`
}

// Metrics returns the metric values keyed by canonical name.
func (d DepthMetricSet) Metrics() map[string]float64 {
	return map[string]float64{
		MetricLineItems:          d.LineItems,
		MetricDisclosureSections: d.DisclosureSections,
		MetricSegmentDetails:     d.SegmentDetails,
		MetricRiskFactors:        d.RiskFactors,
		MetricMDAndAPages:        d.MDAndAPages,
	}
}

// Canonical depth metric names.
const (
	MetricLineItems          = "line_items"
	MetricDisclosureSections = "disclosure_sections"
	MetricSegmentDetails     = "segment_details"
	MetricRiskFactors        = "risk_factors"
	MetricMDAndAPages        = "md_and_a_pages"
)

// Grade is the four-bucket quality classification shared by the
// predictability and depth analyzers.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

// Trend describes the direction of a company's revenue consistency.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// ExpansionTrend describes the year-over-year movement of disclosure depth.
type ExpansionTrend string

const (
	ExpansionExpanding      ExpansionTrend = "expanding"
	ExpansionStablePositive ExpansionTrend = "stable_positive"
	ExpansionStable         ExpansionTrend = "stable"
	ExpansionContracting    ExpansionTrend = "contracting"
)

// PredictabilityResult holds revenue consistency scores for one company.
type PredictabilityResult struct {
	QoQScore     float64 `json:"qoq_score"`
	QoYScore     float64 `json:"qoy_score"`
	OverallScore float64 `json:"overall_score"`
	Grade        Grade   `json:"grade"`
	Trend        Trend   `json:"trend"`
}

// DepthResult holds the disclosure depth analysis for one company.
type DepthResult struct {
	DepthScore     float64            `json:"depth_score"`
	YoYChanges     map[string]float64 `json:"yoy_changes"`
	ExpansionTrend ExpansionTrend     `json:"expansion_trend"`
	Grade          Grade              `json:"grade"`
}

// LetterGrade is the overall quality classification.
type LetterGrade string

const (
	LetterAPlus LetterGrade = "A+"
	LetterA     LetterGrade = "A"
	LetterB     LetterGrade = "B"
	LetterC     LetterGrade = "C"
	LetterD     LetterGrade = "D"
)

// QualityScore is the weighted aggregate of all fundamental components.
type QualityScore struct {
	// Weighted points contributed by each component.
	Components   map[string]float64 `json:"components"`
	OverallScore float64            `json:"overall_score"`
	OverallGrade LetterGrade        `json:"overall_grade"`
}

// Action is the discrete recommendation produced for a company.
type Action string

const (
	ActionStrongBuy Action = "STRONG_BUY"
	ActionBuy       Action = "BUY"
	ActionHold      Action = "HOLD"
	ActionWatch     Action = "WATCH"
	ActionAvoid     Action = "AVOID"
)

// Recommendation maps a quality score and trend signals to an action.
type Recommendation struct {
	Action     Action   `json:"action"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// CompanyRecord is the raw per-company input supplied by a data provider.
// FetchError marks a ticker whose data could not be retrieved; such records
// are counted as failed and never scored.
type CompanyRecord struct {
	Ticker     string            `json:"ticker"`
	Periods    []FinancialPeriod `json:"periods"`
	Depth      []DepthMetricSet  `json:"depth"`
	FetchError string            `json:"fetch_error,omitempty"`
}

// CompanyScreeningResult aggregates all derived results for one company.
// Created once per screening run and never mutated afterwards.
type CompanyScreeningResult struct {
	Ticker         string               `json:"ticker"`
	Predictability PredictabilityResult `json:"predictability"`
	Depth          DepthResult          `json:"depth"`
	Quality        QualityScore         `json:"quality"`
	Recommendation Recommendation       `json:"recommendation"`
}

// ScreeningSummary is the portfolio-level view over one screening run.
type ScreeningSummary struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	TotalCompanies int            `json:"total_companies"`
	Skipped        int            `json:"skipped"`
	Failed         int            `json:"failed"`
	AverageScore   float64        `json:"average_score"`
	MedianScore    float64        `json:"median_score"`
	MinScore       float64        `json:"min_score"`
	MaxScore       float64        `json:"max_score"`
	GradeCounts    map[string]int `json:"grade_counts"`
	ActionCounts   map[string]int `json:"action_counts"`
	TopPerformers  []string       `json:"top_performers"`
	Insights       []string       `json:"insights"`
}

// ScreeningResult is the complete output of one screening run.
type ScreeningResult struct {
	Summary   ScreeningSummary         `json:"summary"`
	Companies []CompanyScreeningResult `json:"companies"`
}

// NormalizationScale maps each raw depth metric onto a [0,100] sub-score by
// dividing by a reference value and clamping. The reference values are not
// prescribed by any filing standard, so they stay configurable.
type NormalizationScale struct {
	LineItems          float64 `yaml:"line_items"`
	DisclosureSections float64 `yaml:"disclosure_sections"`
	SegmentDetails     float64 `yaml:"segment_details"`
	RiskFactors        float64 `yaml:"risk_factors"`
	MDAndAPages        float64 `yaml:"md_and_a_pages"`
}

// QualityWeights are the component weights of the overall quality score.
// They should sum to 1.0.
type QualityWeights struct {
	Predictability float64 `yaml:"predictability"`
	Depth          float64 `yaml:"depth"`
	ExpansionTrend float64 `yaml:"expansion_trend"`
	Growth         float64 `yaml:"growth"`
}

// Config holds all tunables of the fundamental track.
type Config struct {
	// Blend of quarterly vs annual consistency inside predictability.
	QoQWeight float64 `yaml:"qoq_weight"`
	QoYWeight float64 `yaml:"qoy_weight"`

	// Minimum absolute difference between half-series mean growth rates
	// before a trend is called improving or declining.
	TrendEpsilon float64 `yaml:"trend_epsilon"`

	Weights       QualityWeights     `yaml:"weights"`
	Normalization NormalizationScale `yaml:"normalization"`

	// Letter grade cutoffs. A+ >= GradeAPlus, A >= GradeA, and so on;
	// anything below GradeC is a D.
	GradeAPlus float64 `yaml:"grade_a_plus"`
	GradeA     float64 `yaml:"grade_a"`
	GradeB     float64 `yaml:"grade_b"`
	GradeC     float64 `yaml:"grade_c"`

	// Number of top performers listed in the summary.
	TopN int `yaml:"top_n"`
}

// DefaultConfig returns the documented default tunables.
func DefaultConfig() Config {
	return Config{
		QoQWeight:    0.4,
		QoYWeight:    0.6,
		TrendEpsilon: 2.0,
		Weights: QualityWeights{
			Predictability: 0.35,
			Depth:          0.25,
			ExpansionTrend: 0.20,
			Growth:         0.20,
		},
		Normalization: NormalizationScale{
			LineItems:          400,
			DisclosureSections: 30,
			SegmentDetails:     25,
			RiskFactors:        40,
			MDAndAPages:        60,
		},
		GradeAPlus: 90,
		GradeA:     80,
		GradeB:     70,
		GradeC:     50,
		TopN:       5,
	}
}
