package screening

import (
	"math"
	"testing"
)

func TestGrowthScoreNeutralAtZeroGrowth(t *testing.T) {
	if got := GrowthScore(annuals(100, 100)); got != 50 {
		t.Errorf("Expected score 50 for flat revenue, got %f", got)
	}
}

func TestGrowthScoreSparseAnnuals(t *testing.T) {
	if got := GrowthScore(annuals(100)); got != 0 {
		t.Errorf("Expected score 0 with a single annual, got %f", got)
	}
	if got := GrowthScore(quarters(100, 110, 120, 130)); got != 0 {
		t.Errorf("Expected score 0 with no annuals, got %f", got)
	}
}

func TestGrowthScoreSaturates(t *testing.T) {
	// 100% CAGR saturates well past the cap.
	if got := GrowthScore(annuals(100, 200)); got != 100 {
		t.Errorf("Expected score 100 for 100%% CAGR, got %f", got)
	}
	// Collapsing revenue bottoms out at 0.
	if got := GrowthScore(annuals(100, 10)); got != 0 {
		t.Errorf("Expected score 0 for collapsing revenue, got %f", got)
	}
}

func TestAggregateQualityWeighting(t *testing.T) {
	cfg := DefaultConfig()
	pred := PredictabilityResult{OverallScore: 80}
	depth := DepthResult{DepthScore: 60, ExpansionTrend: ExpansionStable}

	quality := AggregateQuality(cfg, pred, depth, 50)

	// 0.35*80 + 0.25*60 + 0.20*50 + 0.20*50 = 63
	if math.Abs(quality.OverallScore-63) > 1e-9 {
		t.Errorf("Expected overall 63, got %f", quality.OverallScore)
	}
	if quality.OverallGrade != LetterC {
		t.Errorf("Expected grade C, got %s", quality.OverallGrade)
	}
	if math.Abs(quality.Components["predictability"]-28) > 1e-9 {
		t.Errorf("Expected predictability points 28, got %f", quality.Components["predictability"])
	}
	if math.Abs(quality.Components["expansion_trend"]-10) > 1e-9 {
		t.Errorf("Expected expansion points 10, got %f", quality.Components["expansion_trend"])
	}
}

func TestAggregateQualityPerfectInputs(t *testing.T) {
	cfg := DefaultConfig()
	pred := PredictabilityResult{OverallScore: 100}
	depth := DepthResult{DepthScore: 100, ExpansionTrend: ExpansionExpanding}

	quality := AggregateQuality(cfg, pred, depth, 100)

	if math.Abs(quality.OverallScore-100) > 1e-9 {
		t.Errorf("Expected overall 100, got %f", quality.OverallScore)
	}
	if quality.OverallGrade != LetterAPlus {
		t.Errorf("Expected grade A+, got %s", quality.OverallGrade)
	}
}

func TestExpansionSubScores(t *testing.T) {
	cases := []struct {
		trend ExpansionTrend
		want  float64
	}{
		{ExpansionExpanding, 100},
		{ExpansionStablePositive, 75},
		{ExpansionStable, 50},
		{ExpansionContracting, 25},
	}
	for _, tc := range cases {
		if got := expansionScore(tc.trend); got != tc.want {
			t.Errorf("expansionScore(%s): expected %f, got %f", tc.trend, tc.want, got)
		}
	}
}

func TestLetterGradeCutoffs(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		score float64
		want  LetterGrade
	}{
		{95, LetterAPlus},
		{90, LetterAPlus},
		{89.9, LetterA},
		{80, LetterA},
		{78.5, LetterB},
		{70, LetterB},
		{69.9, LetterC},
		{50, LetterC},
		{49.9, LetterD},
		{0, LetterD},
	}
	for _, tc := range cases {
		if got := letterGradeFor(cfg, tc.score); got != tc.want {
			t.Errorf("letterGradeFor(%f): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}
