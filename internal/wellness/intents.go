package wellness

import "strings"

// intent is one entry in the ordered intent table. Intents are evaluated in
// table order so primary-intent selection is deterministic.
type intent struct {
	name      string
	keywords  []string
	exercises []string // exercise keys, first two are used
	resources []string
	responses []string // canned empathetic openers, first is used
}

// intentTable is the configured intent vocabulary. Order matters.
var intentTable = []intent{
	{
		name:      "stress",
		keywords:  []string{"stressed", "pressure", "overwhelmed", "burden", "too much", "can't handle", "breaking point"},
		exercises: []string{"box_breathing", "progressive_relaxation"},
		resources: []string{"stress_management_tips", "time_management_resources"},
		responses: []string{
			"It sounds like you're carrying a lot right now. That feeling of being overwhelmed is really tough.",
			"Stress can feel so heavy sometimes. You're not alone in feeling this way.",
			"I hear that you're under a lot of pressure. It makes sense that you'd feel stressed.",
		},
	},
	{
		name:      "anxiety",
		keywords:  []string{"anxious", "worried", "nervous", "panic", "fear", "scared", "terrified", "dread"},
		exercises: []string{"grounding_5432", "box_breathing"},
		resources: []string{"anxiety_coping_strategies", "relaxation_techniques"},
		responses: []string{
			"Anxiety can feel so overwhelming and scary. Thank you for sharing this with me.",
			"Those anxious feelings are really difficult to deal with. You're being so brave by reaching out.",
			"I can sense how worried you're feeling. Anxiety can make everything feel so much bigger.",
		},
	},
	{
		name:      "sleep",
		keywords:  []string{"can't sleep", "insomnia", "tired", "exhausted", "sleepless", "restless", "nightmares"},
		exercises: []string{"progressive_relaxation", "mindful_walking"},
		resources: []string{"sleep_hygiene_guide", "bedtime_routine_tips"},
		responses: []string{
			"Sleep troubles can make everything feel so much harder. I'm sorry you're going through this.",
			"Not being able to sleep is exhausting in so many ways. Your tiredness is completely understandable.",
			"Sleep issues can really affect how we feel during the day. You're not alone in struggling with this.",
		},
	},
	{
		name:      "exam_pressure",
		keywords:  []string{"exam", "test", "studying", "grades", "academic", "school stress", "performance"},
		exercises: []string{"worry_time", "box_breathing"},
		resources: []string{"study_techniques", "test_anxiety_help"},
		responses: []string{
			"Academic pressure can feel intense and overwhelming. It's completely normal to feel stressed about this.",
			"School stress is so real and valid. You're dealing with a lot of expectations right now.",
			"Exam anxiety affects so many people. You're not alone in feeling this pressure.",
		},
	},
	{
		name:      "bullying",
		keywords:  []string{"bullied", "picked on", "harassment", "mean", "excluded", "teased", "targeted"},
		exercises: []string{"positive_affirmations", "journaling_prompt"},
		resources: []string{"bullying_support_resources", "building_confidence_tips"},
		responses: []string{
			"I'm really sorry you're experiencing this. Being treated badly by others is never okay.",
			"What you're going through sounds really difficult and hurtful. You don't deserve to be treated this way.",
			"Bullying can be so isolating and painful. Thank you for trusting me with this.",
		},
	},
	{
		name:      "loneliness",
		keywords:  []string{"lonely", "alone", "isolated", "no friends", "nobody", "disconnected", "empty"},
		exercises: []string{"gratitude_practice", "journaling_prompt"},
		resources: []string{"social_connection_ideas", "community_resources"},
		responses: []string{
			"Feeling lonely can be one of the most painful experiences. I'm glad you reached out.",
			"Loneliness can feel so heavy and overwhelming. You're taking a brave step by connecting here.",
			"Feeling disconnected from others is really hard. You matter, and your feelings are valid.",
		},
	},
}

// generalResponses back the "general" intent when no keyword matched.
var generalResponses = []string{
	"Thank you for sharing what's on your mind. I'm here to listen and support you.",
	"It takes courage to reach out when you're struggling. I'm glad you're here.",
	"Whatever you're going through, you don't have to face it alone. I'm here with you.",
}

// concerningIntents always raise the alert flag regardless of sentiment.
var concerningIntents = map[string]bool{
	"bullying":   true,
	"loneliness": true,
}

// concerningKeywords raise the alert flag below crisis level.
var concerningKeywords = []string{"hopeless", "worthless", "can't cope", "giving up"}

// detectIntents scans lowercased text against the intent table, in order.
// Each intent is added at most once; a text matching nothing yields
// ["general"].
func detectIntents(lower string) []string {
	var detected []string
	for _, in := range intentTable {
		for _, kw := range in.keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, in.name)
				break
			}
		}
	}
	if len(detected) == 0 {
		return []string{"general"}
	}
	return detected
}

// lookupIntent finds a table entry by name; ok is false for "general" and
// unknown names.
func lookupIntent(name string) (intent, bool) {
	for _, in := range intentTable {
		if in.name == name {
			return in, true
		}
	}
	return intent{}, false
}
