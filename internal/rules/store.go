// Package rules loads and serves the declarative rule base.
//
// The store reads the rule document once, validates it, and hands out an
// immutable *model.RuleSet. Reloads swap the whole pointer atomically so
// in-flight requests keep reading a consistent snapshot.
package rules

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/healthlinkai/healthlink/internal/model"
)

// Store holds the current rule set.
type Store struct {
	path    string
	current atomic.Pointer[model.RuleSet]
}

// NewStore loads the rule base from path. A missing or unparseable file is
// not fatal: the store falls back to the built-in defaults and the returned
// error describes what went wrong so callers can log it. The store is always
// usable after NewStore.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	err := s.Reload()
	return s, err
}

// Current returns the active rule set. Never nil.
func (s *Store) Current() *model.RuleSet {
	return s.current.Load()
}

// Reload re-reads the rule document and swaps it in atomically. On failure
// the previous rule set (or the defaults, on first load) stays active.
func (s *Store) Reload() error {
	rs, err := load(s.path)
	if err != nil {
		if s.current.Load() == nil {
			s.current.Store(model.DefaultRuleSet())
		}
		return err
	}
	s.current.Store(rs)
	return nil
}

// load reads and validates one rule document.
func load(path string) (*model.RuleSet, error) {
	if path == "" {
		return model.DefaultRuleSet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule base: %w", err)
	}

	rs := new(model.RuleSet)
	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("parse rule base: %w", err)
	}

	if err := validate(rs); err != nil {
		return nil, fmt.Errorf("validate rule base: %w", err)
	}

	normalize(rs)
	return rs, nil
}

// validate rejects rule documents the engine cannot score against. Band
// gaps are tolerated (the bander has a fixed fallback) but inverted ranges
// and out-of-domain probabilities are not.
func validate(rs *model.RuleSet) error {
	for name, band := range rs.RiskBands {
		if band.Range[0] > band.Range[1] {
			return fmt.Errorf("band %q: inverted range [%d, %d]", name, band.Range[0], band.Range[1])
		}
		if band.Range[0] < 0 || band.Range[1] > 100 {
			return fmt.Errorf("band %q: range [%d, %d] outside 0-100", name, band.Range[0], band.Range[1])
		}
	}

	for i, rule := range rs.SymptomRules {
		if len(rule.Symptoms) == 0 {
			return fmt.Errorf("symptom rule %d: no symptoms", i)
		}
		for _, c := range rule.Conditions {
			if c.Probability < 0 || c.Probability > 1 {
				return fmt.Errorf("condition %q: probability %.2f outside 0-1", c.Name, c.Probability)
			}
		}
	}

	for i, rf := range rs.RedFlagTerms {
		if rf.Condition == "" || len(rf.Terms) == 0 {
			return fmt.Errorf("red flag %d: missing condition name or terms", i)
		}
	}

	return nil
}

// normalize fills gaps a valid document may legitimately leave: a nil band
// map falls back to the default banding and an absent crisis list keeps the
// built-in safety terms.
func normalize(rs *model.RuleSet) {
	def := model.DefaultRuleSet()
	if len(rs.RiskBands) == 0 {
		rs.RiskBands = def.RiskBands
	}
	if len(rs.CrisisTerms) == 0 {
		rs.CrisisTerms = def.CrisisTerms
	}
	if rs.KeywordMappings == nil {
		rs.KeywordMappings = map[string][]string{}
	}
}
