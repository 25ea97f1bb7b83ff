package triage

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/healthlinkai/healthlink/internal/model"
)

// defaultConditionRisk backstops rule conditions that omit risk_score.
const defaultConditionRisk = 30

// matchRules matches the normalized symptom set against every symptom rule
// and returns the candidate conditions, sorted by descending probability.
//
// A rule symptom counts as present when it is a substring of (or equal to)
// some normalized term, deliberately not the reverse direction. Rules with
// any match contribute all their conditions, with probability scaled by the
// fraction of rule symptoms found.
func matchRules(rs *model.RuleSet, symptoms []string) []model.MatchedCondition {
	var matched []model.MatchedCondition

	for _, rule := range rs.SymptomRules {
		matchCount := 0
		for _, ruleSymptom := range rule.Symptoms {
			for _, userSymptom := range symptoms {
				if strings.Contains(userSymptom, ruleSymptom) {
					matchCount++
					break
				}
			}
		}
		if matchCount == 0 {
			continue
		}

		ratio := float64(matchCount) / float64(len(rule.Symptoms))
		for _, cond := range rule.Conditions {
			matched = append(matched, model.MatchedCondition{
				Name:        cond.Name,
				Probability: cond.Probability * ratio,
				RiskScore:   cond.RiskScore,
				MatchRatio:  ratio,
			})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Probability > matched[j].Probability
	})
	return matched
}

// riskScore aggregates matched conditions into a single 0-100 score.
//
// With no matches the score grows with the number of reported symptoms,
// capped at 50. Otherwise the highest condition risk is scaled up 10% per
// additional symptom and capped at 100, rewarding both rule confidence and
// breadth of reported symptoms.
func riskScore(matched []model.MatchedCondition, symptoms []string) int {
	if len(matched) == 0 {
		score := len(symptoms) * 10
		if score > 50 {
			score = 50
		}
		return score
	}

	maxRisk := 0
	for _, m := range matched {
		risk := m.RiskScore
		if risk == 0 {
			risk = defaultConditionRisk
		}
		if risk > maxRisk {
			maxRisk = risk
		}
	}

	multiplier := 1 + 0.1*float64(len(symptoms)-1)
	score := int(math.Round(float64(maxRisk) * multiplier))
	if score > 100 {
		score = 100
	}
	return score
}

// topConditions renders the n highest-probability conditions for the
// assessment payload.
func topConditions(matched []model.MatchedCondition, n int) []model.Condition {
	if len(matched) < n {
		n = len(matched)
	}

	conditions := make([]model.Condition, 0, n)
	for _, m := range matched[:n] {
		conditions = append(conditions, model.Condition{
			Name:        m.Name,
			Probability: fmt.Sprintf("%d%%", int(m.Probability*100)),
			Description: "Based on symptom pattern analysis",
		})
	}
	return conditions
}
