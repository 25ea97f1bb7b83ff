// Package wellness implements the mental-wellness chat engine: crisis
// detection, keyword intent matching, sentiment-conditioned empathetic
// responses, and exercise/resource suggestion.
//
// Every turn is processed independently; the responder keeps no conversation
// state and is safe for concurrent use.
package wellness

import (
	"strings"
	"time"

	"github.com/healthlinkai/healthlink/internal/model"
	"github.com/healthlinkai/healthlink/internal/sentiment"
)

const generalResourceTag = "mental_health_basics"

const (
	maxExercises = 3
	maxResources = 4
)

// RuleSource provides the current rule set (for the shared crisis terms).
type RuleSource interface {
	Current() *model.RuleSet
}

// Responder is the wellness chat engine.
type Responder struct {
	rules    RuleSource
	analyzer sentiment.Analyzer
	now      func() time.Time
}

// NewResponder creates a responder. A nil analyzer degrades to neutral
// sentiment rather than failing turns: crisis detection and intent matching
// work without the lexicon.
func NewResponder(rules RuleSource, analyzer sentiment.Analyzer) *Responder {
	if analyzer == nil {
		analyzer = sentiment.Neutral{}
	}
	return &Responder{
		rules:    rules,
		analyzer: analyzer,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Reply analyzes one user message and composes the full conversation turn.
// Crisis terms short-circuit everything else. Reply never errors; rejecting
// empty messages is the caller's contract.
func (r *Responder) Reply(text string) *model.ConversationTurn {
	rs := r.rules.Current()
	lower := strings.ToLower(text)
	scores := r.analyzer.Scores(text)

	if detectCrisis(rs, lower) {
		return crisisTurn(scores, r.now())
	}

	intents := detectIntents(lower)

	return &model.ConversationTurn{
		Response:        composeResponse(intents[0], scores),
		Sentiment:       scores,
		IntentsDetected: intents,
		GuidedExercises: suggestExercises(intents, scores),
		Resources:       suggestResources(intents),
		AlertFlag:       shouldFlag(lower, scores, intents),
		CrisisDetected:  false,
		Timestamp:       r.now(),
	}
}

// composeResponse picks the canned opener for the primary intent and appends
// a sentiment-conditioned suffix.
func composeResponse(primary string, s model.Sentiment) string {
	responses := generalResponses
	if in, ok := lookupIntent(primary); ok {
		responses = in.responses
	}
	// First response is used for consistency across turns.
	response := responses[0]

	switch {
	case s.Compound <= -0.5:
		response += " I can hear how much pain you're in right now."
	case s.Compound <= -0.1:
		response += " These feelings are completely valid."
	case s.Compound >= 0.1:
		response += " I'm glad you felt comfortable sharing this with me."
	}
	return response
}

// suggestExercises picks up to two mapped exercises per detected intent, in
// intent order, deduplicated by key. When nothing matched, sentiment chooses
// a single fallback. The final list is capped at three.
func suggestExercises(intents []string, s model.Sentiment) []model.Exercise {
	var suggested []model.Exercise
	seen := make(map[string]bool)

	for _, name := range intents {
		in, ok := lookupIntent(name)
		if !ok {
			continue
		}
		for i, key := range in.exercises {
			if i >= 2 {
				break
			}
			if ex, ok := exerciseCatalog[key]; ok && !seen[key] {
				seen[key] = true
				suggested = append(suggested, ex)
			}
		}
	}

	if len(suggested) == 0 {
		key := "gratitude_practice"
		if s.Compound <= -0.3 {
			key = "box_breathing"
		}
		suggested = append(suggested, exerciseCatalog[key])
	}

	if len(suggested) > maxExercises {
		suggested = suggested[:maxExercises]
	}
	return suggested
}

// suggestResources unions the mapped resource tags for all detected intents,
// always appends the general tag, deduplicates keeping first occurrence, and
// caps the list at four.
func suggestResources(intents []string) []string {
	var resources []string
	for _, name := range intents {
		if in, ok := lookupIntent(name); ok {
			resources = append(resources, in.resources...)
		}
	}
	resources = append(resources, generalResourceTag)

	seen := make(map[string]bool, len(resources))
	out := resources[:0]
	for _, tag := range resources {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	if len(out) > maxResources {
		out = out[:maxResources]
	}
	return out
}

// shouldFlag marks a turn for human review: very negative sentiment, a
// concerning intent, or a concerning (sub-crisis) keyword.
func shouldFlag(lower string, s model.Sentiment, intents []string) bool {
	if s.Compound <= -0.7 {
		return true
	}
	for _, in := range intents {
		if concerningIntents[in] {
			return true
		}
	}
	for _, kw := range concerningKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
