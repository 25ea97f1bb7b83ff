// Package sentiment wraps the lexicon-based sentiment collaborator. The
// wellness engine consumes the four polarity numbers and nothing else; the
// lexicon itself lives in the govader dependency.
package sentiment

import (
	govader "github.com/jonreiter/govader"

	"github.com/healthlinkai/healthlink/internal/model"
)

// Analyzer scores the emotional valence of text.
type Analyzer interface {
	// Scores returns compound/positive/neutral/negative polarity for text.
	Scores(text string) model.Sentiment
}

// VADER scores text with the VADER lexicon.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER creates a lexicon-backed analyzer.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Scores implements Analyzer.
func (v *VADER) Scores(text string) model.Sentiment {
	s := v.analyzer.PolarityScores(text)
	return model.Sentiment{
		Compound: s.Compound,
		Positive: s.Positive,
		Neutral:  s.Neutral,
		Negative: s.Negative,
	}
}

// Neutral is the degraded analyzer used when the lexicon collaborator is
// unavailable: every text scores compound 0 so crisis detection and intent
// matching still work while sentiment-conditioned output stays neutral.
type Neutral struct{}

// Scores implements Analyzer.
func (Neutral) Scores(string) model.Sentiment {
	return model.Sentiment{Neutral: 1}
}
