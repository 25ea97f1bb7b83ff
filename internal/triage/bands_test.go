package triage

import (
	"fmt"
	"testing"

	"github.com/healthlinkai/healthlink/internal/model"
)

func TestBand_ConfiguredRanges(t *testing.T) {
	rs := testRuleSet()

	cases := []struct {
		score int
		want  string
	}{
		{0, "low"},
		{30, "low"},
		{31, "medium"},
		{60, "medium"},
		{61, "high"},
		{89, "high"},
		{90, "emergency"},
		{100, "emergency"},
	}

	for _, tc := range cases {
		if got := Band(rs, tc.score); got != tc.want {
			t.Errorf("Band(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestBand_FallbackThresholds(t *testing.T) {
	rs := &model.RuleSet{} // no bands configured

	cases := []struct {
		score int
		want  string
	}{
		{0, "low"},
		{30, "low"},
		{31, "medium"},
		{60, "medium"},
		{61, "high"},
		{89, "high"},
		{90, "emergency"},
		{100, "emergency"},
	}

	for _, tc := range cases {
		if got := Band(rs, tc.score); got != tc.want {
			t.Errorf("Band(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestBand_Total(t *testing.T) {
	rs := testRuleSet()

	// Every integer score resolves to exactly one configured band.
	for score := 0; score <= 100; score++ {
		band := Band(rs, score)
		if _, ok := rs.RiskBands[band]; !ok {
			t.Errorf("Band(%d) = %q, not a configured band", score, band)
		}
	}
}

func TestRiskScore_NoMatchGrowsWithSymptoms(t *testing.T) {
	for n := 1; n <= 10; n++ {
		symptoms := make([]string, n)
		for i := range symptoms {
			symptoms[i] = fmt.Sprintf("symptom%d", i)
		}

		score := riskScore(nil, symptoms)

		want := n * 10
		if want > 50 {
			want = 50
		}
		if score != want {
			t.Errorf("riskScore(nil, %d symptoms) = %d, want %d", n, score, want)
		}
	}
}

func TestRiskScore_Bounded(t *testing.T) {
	matched := []model.MatchedCondition{{Name: "X", Probability: 0.9, RiskScore: 95}}

	symptoms := make([]string, 20)
	for i := range symptoms {
		symptoms[i] = fmt.Sprintf("symptom%d", i)
	}

	if score := riskScore(matched, symptoms); score != 100 {
		t.Errorf("expected score capped at 100, got %d", score)
	}
}

func TestRiskScore_ZeroRiskDefaults(t *testing.T) {
	matched := []model.MatchedCondition{{Name: "X", Probability: 0.5}}

	if score := riskScore(matched, []string{"a"}); score != defaultConditionRisk {
		t.Errorf("expected default risk %d for unset risk_score, got %d", defaultConditionRisk, score)
	}
}

func TestComposeAdvice_ConditionAndSymptomAdvice(t *testing.T) {
	rs := testRuleSet()
	matched := []model.MatchedCondition{{Name: "Migraine", Probability: 0.7, RiskScore: 35}}

	advice := composeAdvice(rs, matched, "medium", []string{"headache", "chest pain", "fever"})

	wantItems := []string{
		"Medium risk",
		"Rest in a dark, quiet room",
		"Monitor temperature regularly",
		"Consider appropriate pain relief medication",
		safetyReminder,
	}
	for _, want := range wantItems {
		found := false
		for _, item := range advice {
			if item == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected advice to contain %q, got %v", want, advice)
		}
	}

	// No duplicates
	seen := make(map[string]bool)
	for _, item := range advice {
		if seen[item] {
			t.Errorf("duplicate advice item %q", item)
		}
		seen[item] = true
	}
}
