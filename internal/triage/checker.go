// Package triage implements the symptom-checking engine: input
// normalization, red-flag detection, rule matching, risk scoring, banding,
// and advice composition.
//
// A Checker is stateless apart from the rule store it reads; any number of
// Analyze calls may run concurrently.
package triage

import (
	"errors"
	"time"

	"github.com/healthlinkai/healthlink/internal/model"
)

// ErrNoSymptoms is returned when neither free text nor selected symptoms
// were provided. It is the only error Analyze surfaces to callers.
var ErrNoSymptoms = errors.New("No symptoms provided")

// RuleSource provides the current rule set. *rules.Store satisfies it.
type RuleSource interface {
	Current() *model.RuleSet
}

// Checker is the symptom analysis engine.
type Checker struct {
	rules RuleSource
	now   func() time.Time
}

// NewChecker creates a checker reading from the given rule source.
func NewChecker(rules RuleSource) *Checker {
	return &Checker{
		rules: rules,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Analyze runs the full triage pipeline over free text and pre-selected
// symptom tags and returns a complete assessment.
//
// Red flags are checked first and short-circuit everything else. Otherwise
// the normalized symptom set is matched against the rule base, scored,
// banded, and composed into ranked conditions plus advice.
func (c *Checker) Analyze(text string, selected []string) (*model.Assessment, error) {
	rs := c.rules.Current()

	symptoms, err := Normalize(rs, text, selected)
	if err != nil {
		return nil, err
	}

	if a := c.checkRedFlags(rs, text, selected); a != nil {
		return a, nil
	}

	matched := matchRules(rs, symptoms)
	score := riskScore(matched, symptoms)
	band := Band(rs, score)

	return &model.Assessment{
		Conditions:       topConditions(matched, 3),
		Advice:           composeAdvice(rs, matched, band, symptoms),
		RiskBand:         band,
		RiskScore:        score,
		SymptomsAnalyzed: symptoms,
		Emergency:        false,
		Disclaimers:      rs.Disclaimers,
		Timestamp:        c.now(),
	}, nil
}
