package triage

import "github.com/healthlinkai/healthlink/internal/model"

// Band maps a 0-100 score to a band name. Configured bands are inclusive on
// both ends and expected to partition the range; when the rule base leaves a
// gap the fixed fallback thresholds apply, so every integer 0-100 always
// resolves to exactly one band.
func Band(rs *model.RuleSet, score int) string {
	for name, band := range rs.RiskBands {
		if band.Contains(score) {
			return name
		}
	}

	switch {
	case score >= 90:
		return "emergency"
	case score >= 61:
		return "high"
	case score >= 31:
		return "medium"
	default:
		return "low"
	}
}
