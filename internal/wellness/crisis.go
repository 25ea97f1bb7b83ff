package wellness

import (
	"strings"
	"time"

	"github.com/healthlinkai/healthlink/internal/model"
)

// crisisMessage is the fixed safety response returned whenever a crisis term
// is detected. No other analysis runs in that case.
const crisisMessage = "I'm really concerned about what you're sharing with me. Your safety and wellbeing are the most important things right now.\n\n" +
	"Please reach out to someone who can help immediately:\n\n" +
	"Crisis Helplines:\n" +
	"- National Suicide Prevention Lifeline: 988\n" +
	"- Crisis Text Line: Text HOME to 741741\n" +
	"- International Association for Suicide Prevention: https://www.iasp.info/resources/Crisis_Centres/\n\n" +
	"Trusted Adults:\n" +
	"- A parent, guardian, or family member\n" +
	"- School counselor or teacher\n" +
	"- Healthcare provider\n" +
	"- Religious or community leader\n\n" +
	"You don't have to go through this alone. There are people who care about you and want to help. " +
	"These feelings can change, and support is available."

// detectCrisis reports whether lowercased text contains any configured
// crisis term.
func detectCrisis(rs *model.RuleSet, lower string) bool {
	for _, term := range rs.CrisisTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// crisisTurn is the short-circuit payload for a detected crisis: the
// templated safety message, no exercises, and the helpline resource tag.
func crisisTurn(s model.Sentiment, now time.Time) *model.ConversationTurn {
	return &model.ConversationTurn{
		Response:        crisisMessage,
		Sentiment:       s,
		IntentsDetected: []string{"crisis"},
		GuidedExercises: []model.Exercise{},
		Resources:       []string{"crisis_helplines"},
		AlertFlag:       true,
		CrisisDetected:  true,
		Timestamp:       now,
	}
}
