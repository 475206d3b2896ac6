package screening

import "testing"

func recommendFor(score float64, trend Trend, expansion ExpansionTrend) Recommendation {
	return Recommend(
		QualityScore{OverallScore: score, OverallGrade: letterGradeFor(DefaultConfig(), score)},
		PredictabilityResult{Trend: trend},
		DepthResult{ExpansionTrend: expansion, YoYChanges: map[string]float64{}},
	)
}

func TestStrongBuyRule(t *testing.T) {
	rec := recommendFor(85, TrendImproving, ExpansionExpanding)

	if rec.Action != ActionStrongBuy {
		t.Errorf("Expected STRONG_BUY, got %s", rec.Action)
	}
	if rec.Confidence != 95 {
		t.Errorf("Expected confidence 95, got %f", rec.Confidence)
	}
}

func TestBuyRule(t *testing.T) {
	rec := recommendFor(75, TrendImproving, ExpansionStable)
	if rec.Action != ActionBuy || rec.Confidence != 80 {
		t.Errorf("Expected BUY/80, got %s/%f", rec.Action, rec.Confidence)
	}

	// Stable trend also qualifies at >= 70.
	rec = recommendFor(70, TrendStable, ExpansionContracting)
	if rec.Action != ActionBuy {
		t.Errorf("Expected BUY for 70/stable, got %s", rec.Action)
	}
}

func TestHoldRule(t *testing.T) {
	rec := recommendFor(65, TrendStable, ExpansionStable)
	if rec.Action != ActionHold || rec.Confidence != 65 {
		t.Errorf("Expected HOLD/65, got %s/%f", rec.Action, rec.Confidence)
	}
}

func TestWatchRule(t *testing.T) {
	rec := recommendFor(55, TrendDeclining, ExpansionStable)
	if rec.Action != ActionWatch || rec.Confidence != 50 {
		t.Errorf("Expected WATCH/50, got %s/%f", rec.Action, rec.Confidence)
	}

	rec = recommendFor(60, TrendStable, ExpansionContracting)
	if rec.Action != ActionWatch {
		t.Errorf("Expected WATCH for contracting depth, got %s", rec.Action)
	}
}

func TestAvoidRule(t *testing.T) {
	rec := recommendFor(45, TrendImproving, ExpansionExpanding)
	if rec.Action != ActionAvoid || rec.Confidence != 30 {
		t.Errorf("Expected AVOID/30, got %s/%f", rec.Action, rec.Confidence)
	}
}

func TestMixedSignalsFallBackToHold(t *testing.T) {
	// 65 with an improving trend matches no explicit rule.
	rec := recommendFor(65, TrendImproving, ExpansionExpanding)
	if rec.Action != ActionHold || rec.Confidence != 55 {
		t.Errorf("Expected fallback HOLD/55, got %s/%f", rec.Action, rec.Confidence)
	}
}

func TestDecisionTableIsTotal(t *testing.T) {
	scores := []float64{0, 30, 49, 50, 55, 59, 60, 65, 69, 70, 79, 80, 90, 100}
	trends := []Trend{TrendImproving, TrendDeclining, TrendStable}
	expansions := []ExpansionTrend{
		ExpansionExpanding, ExpansionStablePositive, ExpansionStable, ExpansionContracting,
	}

	for _, score := range scores {
		for _, trend := range trends {
			for _, expansion := range expansions {
				rec := recommendFor(score, trend, expansion)
				if rec.Action == "" {
					t.Errorf("No action for score=%f trend=%s expansion=%s", score, trend, expansion)
				}
				if rec.Confidence <= 0 {
					t.Errorf("Non-positive confidence for score=%f trend=%s expansion=%s", score, trend, expansion)
				}
				if len(rec.Reasons) == 0 {
					t.Errorf("No reasons for score=%f trend=%s expansion=%s", score, trend, expansion)
				}
			}
		}
	}
}

func TestReasonsMentionDepthDirection(t *testing.T) {
	rec := Recommend(
		QualityScore{OverallScore: 85, OverallGrade: LetterA},
		PredictabilityResult{Trend: TrendImproving},
		DepthResult{
			ExpansionTrend: ExpansionExpanding,
			YoYChanges: map[string]float64{
				MetricLineItems:          5,
				MetricDisclosureSections: 1,
				MetricSegmentDetails:     2,
				MetricRiskFactors:        3,
				MetricMDAndAPages:        -1,
			},
		},
	)

	found := false
	for _, reason := range rec.Reasons {
		if reason == "10-K depth expanding by 4 metrics" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected expanding-depth reason, got %v", rec.Reasons)
	}
}
