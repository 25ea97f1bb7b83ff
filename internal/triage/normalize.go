package triage

import (
	"sort"
	"strings"
	"unicode"

	"github.com/healthlinkai/healthlink/internal/model"
)

// Normalize merges free text and selected symptom tags into a deduplicated
// list of canonical terms.
//
// Selected tags are taken verbatim (lowercased, trimmed). Free text is
// lowercased, punctuation-stripped, and scanned for every surface form in
// the rule base's keyword mappings; a substring hit adds the canonical term.
// The result preserves first-occurrence order so identical input always
// yields an identical assessment.
func Normalize(rs *model.RuleSet, text string, selected []string) ([]string, error) {
	if text == "" && len(selected) == 0 {
		return nil, ErrNoSymptoms
	}

	var symptoms []string
	seen := make(map[string]bool)
	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		symptoms = append(symptoms, term)
	}

	for _, tag := range selected {
		add(strings.ToLower(strings.TrimSpace(tag)))
	}

	if text != "" {
		cleaned := cleanText(text)
		for _, term := range sortedTerms(rs.KeywordMappings) {
			for _, keyword := range rs.KeywordMappings[term] {
				if strings.Contains(cleaned, keyword) {
					add(term)
					break
				}
			}
		}
	}

	return symptoms, nil
}

// cleanText lowercases text and replaces every character that is not a
// letter, digit, or whitespace with a single space.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// sortedTerms returns the mapping's canonical terms in a stable order.
// Map iteration order would make the symptom list nondeterministic.
func sortedTerms(mappings map[string][]string) []string {
	terms := make([]string, 0, len(mappings))
	for term := range mappings {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
