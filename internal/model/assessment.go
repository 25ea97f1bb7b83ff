package model

import "time"

// Assessment is the symptom engine's output for a single request. The engine
// never persists it; callers own storage and audit.
type Assessment struct {
	Conditions       []Condition `json:"conditions"`        // top 3, ranked
	Advice           []string    `json:"advice"`            // deduplicated, first occurrence wins
	RiskBand         string      `json:"risk_band"`         // low, medium, high, emergency
	RiskScore        int         `json:"risk_score"`        // 0-100
	SymptomsAnalyzed []string    `json:"symptoms_analyzed"` // canonical terms the matcher saw
	Emergency        bool        `json:"emergency"`
	Disclaimers      []string    `json:"disclaimers"`
	Timestamp        time.Time   `json:"timestamp"`
}

// Condition is a ranked candidate condition in an assessment.
type Condition struct {
	Name        string `json:"name"`
	Probability string `json:"probability"` // rendered as integer percent, e.g. "72%"
	Description string `json:"description"`
}

// MatchedCondition is the matcher's working form of a condition before the
// composer renders it. Ephemeral, per request.
type MatchedCondition struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"` // base probability scaled by match ratio
	RiskScore   int     `json:"risk_score"`
	MatchRatio  float64 `json:"match_ratio"` // matched rule symptoms / total rule symptoms
}

// ConversationTurn is the wellness engine's output for one user message.
// Turns are stateless: nothing carries over between them.
type ConversationTurn struct {
	Response        string     `json:"response"`
	Sentiment       Sentiment  `json:"sentiment"`
	IntentsDetected []string   `json:"intents_detected"` // never empty, ["general"] if nothing matched
	GuidedExercises []Exercise `json:"guided_exercises"` // at most 3
	Resources       []string   `json:"resources"`        // at most 4, deduplicated
	AlertFlag       bool       `json:"alert_flag"`
	CrisisDetected  bool       `json:"crisis_detected"`
	Timestamp       time.Time  `json:"timestamp"`
}

// Sentiment carries the four scores produced by the external lexicon
// analyzer. The engine consumes these numbers and nothing else.
type Sentiment struct {
	Compound float64 `json:"compound"` // -1..1 overall valence
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Exercise is a guided mental-health exercise from the fixed catalog.
type Exercise struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Duration    string   `json:"duration"`
}
