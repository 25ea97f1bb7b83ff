package triage

import (
	"errors"
	"reflect"
	"testing"

	"github.com/healthlinkai/healthlink/internal/model"
)

// staticRules satisfies RuleSource with a fixed rule set.
type staticRules struct {
	rs *model.RuleSet
}

func (s *staticRules) Current() *model.RuleSet {
	return s.rs
}

func testRuleSet() *model.RuleSet {
	return &model.RuleSet{
		KeywordMappings: map[string][]string{
			"fever":    {"fever", "high temperature", "burning up"},
			"cough":    {"cough", "coughing"},
			"headache": {"headache", "head hurts"},
			"nausea":   {"nausea", "feel sick"},
		},
		RedFlagTerms: []model.RedFlag{
			{
				Condition: "Severe Neurological Emergency",
				Terms:     []string{"severe headache", "seizure"},
				RiskScore: 95,
			},
			{
				Condition: "Possible Cardiac Emergency",
				Terms:     []string{"crushing chest pain"},
				RiskScore: 98,
			},
		},
		SymptomRules: []model.SymptomRule{
			{
				Symptoms: []string{"fever", "cough"},
				Conditions: []model.RuleCondition{
					{Name: "Influenza (Flu)", Probability: 0.8, RiskScore: 45},
					{Name: "Common Cold", Probability: 0.6, RiskScore: 20},
				},
			},
			{
				Symptoms: []string{"headache", "nausea"},
				Conditions: []model.RuleCondition{
					{Name: "Migraine", Probability: 0.7, RiskScore: 35},
				},
			},
		},
		RiskBands: map[string]model.RiskBand{
			"low":       {Range: [2]int{0, 30}, Message: "Low risk", Actions: []string{"Rest and monitor"}},
			"medium":    {Range: [2]int{31, 60}, Message: "Medium risk", Actions: []string{"See a doctor soon"}},
			"high":      {Range: [2]int{61, 89}, Message: "High risk", Actions: []string{"See a doctor within 24 hours"}},
			"emergency": {Range: [2]int{90, 100}, Message: "Emergency", Actions: []string{"Seek emergency care"}},
		},
		Disclaimers: []string{"Not a medical diagnosis"},
		CrisisTerms: []string{"end it all"},
	}
}

func newTestChecker() *Checker {
	return NewChecker(&staticRules{rs: testRuleSet()})
}

func TestChecker_Analyze_NoSymptoms(t *testing.T) {
	checker := newTestChecker()

	_, err := checker.Analyze("", nil)
	if !errors.Is(err, ErrNoSymptoms) {
		t.Errorf("expected ErrNoSymptoms, got %v", err)
	}

	// Selected symptoms alone are enough
	if _, err := checker.Analyze("", []string{"fever"}); err != nil {
		t.Errorf("unexpected error with selected symptoms: %v", err)
	}

	// Free text alone is enough
	if _, err := checker.Analyze("I have a fever", nil); err != nil {
		t.Errorf("unexpected error with free text: %v", err)
	}
}

func TestChecker_Analyze_RedFlag(t *testing.T) {
	checker := newTestChecker()

	a, err := checker.Analyze("I have a severe headache and can't stop vomiting", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.Emergency {
		t.Error("expected emergency assessment")
	}
	if a.RiskBand != "emergency" {
		t.Errorf("expected emergency band, got %q", a.RiskBand)
	}
	if a.RiskScore != 95 {
		t.Errorf("expected risk score 95 from red flag, got %d", a.RiskScore)
	}
	if len(a.Conditions) != 1 || a.Conditions[0].Name != "Severe Neurological Emergency" {
		t.Errorf("unexpected conditions: %+v", a.Conditions)
	}
	if !reflect.DeepEqual(a.SymptomsAnalyzed, []string{"severe headache"}) {
		t.Errorf("expected matched term only, got %v", a.SymptomsAnalyzed)
	}
	if len(a.Advice) == 0 || a.Advice[0] != "EMERGENCY: Seek immediate medical attention" {
		t.Errorf("expected fixed escalation advice, got %v", a.Advice)
	}
}

func TestChecker_Analyze_RedFlagOrder(t *testing.T) {
	checker := newTestChecker()

	// Both red flags match; the first configured entry must win.
	a, err := checker.Analyze("seizure after crushing chest pain", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Conditions[0].Name != "Severe Neurological Emergency" {
		t.Errorf("expected first configured red flag to win, got %q", a.Conditions[0].Name)
	}
}

func TestChecker_Analyze_CrisisTermEscalates(t *testing.T) {
	checker := newTestChecker()

	a, err := checker.Analyze("I have a fever and I want to end it all", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.Emergency {
		t.Error("expected crisis language to escalate a symptom report")
	}
	if a.Conditions[0].Name != "Mental Health Crisis" {
		t.Errorf("expected crisis condition, got %q", a.Conditions[0].Name)
	}
	if a.RiskScore != crisisRiskScore {
		t.Errorf("expected risk score %d, got %d", crisisRiskScore, a.RiskScore)
	}
}

func TestChecker_Analyze_RuleMatch(t *testing.T) {
	checker := newTestChecker()

	a, err := checker.Analyze("I've had a fever and a bad cough for two days", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Emergency {
		t.Error("did not expect emergency")
	}
	if len(a.Conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(a.Conditions))
	}
	if a.Conditions[0].Name != "Influenza (Flu)" {
		t.Errorf("expected flu ranked first, got %q", a.Conditions[0].Name)
	}
	if a.Conditions[0].Probability != "80%" {
		t.Errorf("expected full-match probability 80%%, got %q", a.Conditions[0].Probability)
	}

	// Max risk 45 scaled by 1.1 for the second symptom, rounded.
	if a.RiskScore != 50 {
		t.Errorf("expected risk score 50, got %d", a.RiskScore)
	}
	if a.RiskBand != "medium" {
		t.Errorf("expected medium band, got %q", a.RiskBand)
	}
	if !reflect.DeepEqual(a.Disclaimers, []string{"Not a medical diagnosis"}) {
		t.Errorf("expected rule base disclaimers, got %v", a.Disclaimers)
	}
}

func TestChecker_Analyze_PartialMatch(t *testing.T) {
	checker := newTestChecker()

	a, err := checker.Analyze("", []string{"fever"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One of two rule symptoms present halves the base probability.
	if a.Conditions[0].Probability != "40%" {
		t.Errorf("expected halved probability 40%%, got %q", a.Conditions[0].Probability)
	}
}

func TestChecker_Analyze_NoRuleMatch(t *testing.T) {
	checker := newTestChecker()

	a, err := checker.Analyze("", []string{"dizziness", "fatigue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.Conditions) != 0 {
		t.Errorf("expected no conditions, got %v", a.Conditions)
	}
	if a.RiskScore != 20 {
		t.Errorf("expected symptom-count score 20, got %d", a.RiskScore)
	}
	if a.RiskBand != "low" {
		t.Errorf("expected low band, got %q", a.RiskBand)
	}
}

func TestChecker_Analyze_Deterministic(t *testing.T) {
	checker := newTestChecker()

	first, err := checker.Analyze("fever cough headache nausea", []string{"Chills"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		next, err := checker.Analyze("fever cough headache nausea", []string{"Chills"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(next.SymptomsAnalyzed, first.SymptomsAnalyzed) {
			t.Fatalf("symptom order not deterministic: %v vs %v",
				next.SymptomsAnalyzed, first.SymptomsAnalyzed)
		}
		if !reflect.DeepEqual(next.Advice, first.Advice) {
			t.Fatalf("advice order not deterministic: %v vs %v", next.Advice, first.Advice)
		}
	}
}

func TestChecker_Analyze_AdviceContainsSafetyReminder(t *testing.T) {
	checker := newTestChecker()

	a, err := checker.Analyze("fever and cough", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, item := range a.Advice {
		if item == safetyReminder {
			found = true
		}
	}
	if !found {
		t.Errorf("expected safety reminder in advice, got %v", a.Advice)
	}
}

func TestNormalize(t *testing.T) {
	rs := testRuleSet()

	symptoms, err := Normalize(rs, "FEVER!!! and... head-hurts", []string{" Chills ", "chills", "FEVER"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Tags come first (lowercased, trimmed, deduplicated), then keyword hits
	// in sorted canonical-term order. "head-hurts" cleans to "head hurts".
	want := []string{"chills", "fever", "headache"}
	if !reflect.DeepEqual(symptoms, want) {
		t.Errorf("expected %v, got %v", want, symptoms)
	}
}

func TestNormalize_SubstringNotWordMatch(t *testing.T) {
	rs := testRuleSet()

	// "coughing up" contains the surface form "cough".
	symptoms, err := Normalize(rs, "coughing all night", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(symptoms, []string{"cough"}) {
		t.Errorf("expected [cough], got %v", symptoms)
	}
}
