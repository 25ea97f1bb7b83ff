package triage

import (
	"strings"

	"github.com/healthlinkai/healthlink/internal/model"
)

// safetyReminder closes every advice list.
const safetyReminder = "Seek immediate care if symptoms worsen or new concerning symptoms develop"

// conditionAdvice maps substrings of a condition name to static advice.
// Checked against the top-ranked condition only.
var conditionAdvice = []struct {
	substrings []string
	advice     []string
}{
	{
		substrings: []string{"infection", "malaria"},
		advice: []string{
			"Monitor temperature and stay well hydrated",
			"Avoid contact with others to prevent spread",
		},
	},
	{
		substrings: []string{"migraine", "headache"},
		advice: []string{
			"Rest in a dark, quiet room",
			"Apply cold or warm compress to head/neck",
		},
	},
	{
		substrings: []string{"pneumonia", "respiratory"},
		advice: []string{
			"Get plenty of rest and avoid strenuous activity",
			"Use a humidifier or breathe steam from hot shower",
		},
	},
	{
		substrings: []string{"gastroenteritis"},
		advice: []string{
			"Follow BRAT diet (bananas, rice, applesauce, toast)",
			"Replace lost fluids with oral rehydration solutions",
		},
	},
}

// composeAdvice assembles the advice list: band message and actions first,
// then condition-specific advice for the top condition, then
// symptom-triggered advice, then the fixed safety reminder. Duplicates are
// removed keeping the first occurrence so output order is deterministic.
func composeAdvice(rs *model.RuleSet, matched []model.MatchedCondition, band string, symptoms []string) []string {
	var advice []string

	if b, ok := rs.RiskBands[band]; ok {
		if b.Message != "" {
			advice = append(advice, b.Message)
		}
		advice = append(advice, b.Actions...)
	}

	if len(matched) > 0 {
		name := strings.ToLower(matched[0].Name)
		for _, ca := range conditionAdvice {
			for _, sub := range ca.substrings {
				if strings.Contains(name, sub) {
					advice = append(advice, ca.advice...)
					break
				}
			}
		}
	}

	if anyContains(symptoms, "fever") {
		advice = append(advice, "Monitor temperature regularly")
	}
	if anyContains(symptoms, "pain") {
		advice = append(advice, "Consider appropriate pain relief medication")
	}

	advice = append(advice, safetyReminder)
	return dedupe(advice)
}

// anyContains reports whether any term contains the substring.
func anyContains(terms []string, sub string) bool {
	for _, t := range terms {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// dedupe removes duplicate strings, keeping the first occurrence.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
