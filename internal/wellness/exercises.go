package wellness

import "github.com/healthlinkai/healthlink/internal/model"

// exerciseCatalog is the fixed set of guided exercises, keyed by a stable
// identifier used in the intent mapping.
var exerciseCatalog = map[string]model.Exercise{
	"box_breathing": {
		Key:         "box_breathing",
		Name:        "Box Breathing",
		Description: "A calming breathing technique to reduce anxiety and stress",
		Steps: []string{
			"Find a comfortable position and close your eyes",
			"Breathe in slowly through your nose for 4 counts",
			"Hold your breath for 4 counts",
			"Exhale slowly through your mouth for 4 counts",
			"Hold empty for 4 counts",
			"Repeat this cycle 4-6 times",
		},
		Duration: "2-3 minutes",
	},
	"grounding_5432": {
		Key:         "grounding_5432",
		Name:        "5-4-3-2-1 Grounding",
		Description: "A sensory grounding technique to manage anxiety and panic",
		Steps: []string{
			"Look around and name 5 things you can see",
			"Notice 4 things you can touch or feel",
			"Listen for 3 things you can hear",
			"Identify 2 things you can smell",
			"Think of 1 thing you can taste",
			"Take a deep breath and notice how you feel now",
		},
		Duration: "3-5 minutes",
	},
	"journaling_prompt": {
		Key:         "journaling_prompt",
		Name:        "Mindful Journaling",
		Description: "Writing exercise to process emotions and thoughts",
		Steps: []string{
			"Find a quiet space with paper or your phone",
			"Write about how you're feeling right now",
			"Describe what triggered these feelings",
			"Write down 3 things you're grateful for today",
			"Note one small positive action you can take",
			"End with a kind message to yourself",
		},
		Duration: "5-10 minutes",
	},
	"progressive_relaxation": {
		Key:         "progressive_relaxation",
		Name:        "Progressive Muscle Relaxation",
		Description: "Tension release technique for stress and anxiety",
		Steps: []string{
			"Lie down or sit comfortably",
			"Tense your toes for 5 seconds, then relax",
			"Move up to your calves, tense and relax",
			"Continue with thighs, abdomen, hands, arms",
			"Tense your shoulders, then your face",
			"Finally, tense your whole body, then completely relax",
		},
		Duration: "10-15 minutes",
	},
	"mindful_walking": {
		Key:         "mindful_walking",
		Name:        "Mindful Walking",
		Description: "Moving meditation to clear your mind and reduce stress",
		Steps: []string{
			"Find a quiet path or space to walk slowly",
			"Focus on the sensation of your feet touching the ground",
			"Notice your breathing as you walk",
			"Observe your surroundings without judgment",
			"If your mind wanders, gently return focus to walking",
			"Walk for as long as feels comfortable",
		},
		Duration: "5-20 minutes",
	},
	"positive_affirmations": {
		Key:         "positive_affirmations",
		Name:        "Positive Affirmations",
		Description: "Self-compassion practice to build confidence and self-worth",
		Steps: []string{
			"Find a quiet moment and take three deep breaths",
			"Say aloud: 'I am worthy of love and respect'",
			"Continue: 'I am doing my best with what I have'",
			"Add: 'My feelings are valid and temporary'",
			"Finish: 'I have the strength to get through this'",
			"Repeat any that resonate with you",
		},
		Duration: "2-5 minutes",
	},
	"worry_time": {
		Key:         "worry_time",
		Name:        "Scheduled Worry Time",
		Description: "Technique to contain anxious thoughts to a specific time",
		Steps: []string{
			"Set aside 15 minutes as your 'worry time'",
			"Write down all your worries during this time",
			"For each worry, ask: 'Can I do something about this?'",
			"If yes, write one small action step",
			"If no, practice letting it go for now",
			"Outside worry time, remind yourself to wait until tomorrow",
		},
		Duration: "15 minutes daily",
	},
	"gratitude_practice": {
		Key:         "gratitude_practice",
		Name:        "Gratitude Practice",
		Description: "Daily practice to shift focus toward positive aspects of life",
		Steps: []string{
			"Think of three things that went well today",
			"They can be small (good coffee) or big (friend's support)",
			"For each, reflect on why it was meaningful",
			"Notice how focusing on good things makes you feel",
			"Consider sharing your gratitude with someone",
			"Make this a daily habit before bed",
		},
		Duration: "3-5 minutes",
	},
}
