package triage

import (
	"strings"

	"github.com/healthlinkai/healthlink/internal/model"
)

// emergencyAdvice is the fixed escalation list attached to every red-flag
// assessment. Rule-configured advice never replaces it.
var emergencyAdvice = []string{
	"EMERGENCY: Seek immediate medical attention",
	"Call emergency services (911) immediately",
	"Do not drive yourself to the hospital",
	"Stay calm and follow emergency dispatcher instructions",
}

// crisisRiskScore is applied when a shared crisis term fires on the symptom
// path, where no per-term risk is configured.
const crisisRiskScore = 95

// checkRedFlags scans the raw text plus selected tags against the red-flag
// entries, in configured order, then against the shared crisis term list.
// The first matching entry wins and produces a short-circuit emergency
// assessment; nil means no red flag fired.
func (c *Checker) checkRedFlags(rs *model.RuleSet, text string, selected []string) *model.Assessment {
	combined := strings.ToLower(text + " " + strings.Join(selected, " "))

	for _, rf := range rs.RedFlagTerms {
		for _, term := range rf.Terms {
			if strings.Contains(combined, strings.ToLower(term)) {
				return c.emergencyAssessment(rs, rf.Condition, term, rf.RiskScore)
			}
		}
	}

	// Both engines consult one safety-term list so self-harm language in a
	// symptom report escalates the same way it does in the wellness chat.
	for _, term := range rs.CrisisTerms {
		if strings.Contains(combined, strings.ToLower(term)) {
			return c.emergencyAssessment(rs, "Mental Health Crisis", term, crisisRiskScore)
		}
	}

	return nil
}

func (c *Checker) emergencyAssessment(rs *model.RuleSet, condition, term string, riskScore int) *model.Assessment {
	return &model.Assessment{
		Conditions: []model.Condition{{
			Name:        condition,
			Probability: "High concern",
			Description: "Emergency symptoms detected",
		}},
		Advice:           emergencyAdvice,
		RiskBand:         "emergency",
		RiskScore:        riskScore,
		SymptomsAnalyzed: []string{term},
		Emergency:        true,
		Disclaimers:      rs.Disclaimers,
		Timestamp:        c.now(),
	}
}
