package model

// RuleSet is the declarative rule base the triage engine runs against.
// It is loaded once at startup, shared read-only between requests, and only
// ever replaced wholesale (never mutated in place).
type RuleSet struct {
	// KeywordMappings maps a canonical symptom term to the surface forms
	// that indicate it in free text (substring match).
	KeywordMappings map[string][]string `yaml:"keyword_mappings" json:"keyword_mappings"`

	// RedFlagTerms are emergency indicators checked before any scoring.
	// Order matters: the first matching entry wins.
	RedFlagTerms []RedFlag `yaml:"red_flag_terms" json:"red_flag_terms"`

	// SymptomRules map symptom combinations to candidate conditions.
	SymptomRules []SymptomRule `yaml:"symptom_rules" json:"symptom_rules"`

	// RiskBands maps a band name to its inclusive score range and advice.
	// Ranges are expected to partition 0-100; gaps fall back to fixed
	// thresholds at banding time.
	RiskBands map[string]RiskBand `yaml:"risk_bands" json:"risk_bands"`

	// Disclaimers are attached verbatim to every assessment.
	Disclaimers []string `yaml:"disclaimers" json:"disclaimers"`

	// CrisisTerms is the shared safety-term list consulted by the wellness
	// crisis detector. Kept in the rule base so both engines version one
	// list instead of diverging.
	CrisisTerms []string `yaml:"crisis_terms" json:"crisis_terms"`
}

// RedFlag is a single emergency rule: any of its terms appearing in the raw
// input short-circuits the whole analysis.
type RedFlag struct {
	Condition string   `yaml:"condition" json:"condition"`
	Terms     []string `yaml:"terms" json:"terms"`
	RiskScore int      `yaml:"risk_score" json:"risk_score"`
}

// SymptomRule links a set of canonical symptoms to candidate conditions.
type SymptomRule struct {
	Symptoms   []string        `yaml:"symptoms" json:"symptoms"`
	Conditions []RuleCondition `yaml:"conditions" json:"conditions"`
}

// RuleCondition is one candidate condition inside a symptom rule.
type RuleCondition struct {
	Name        string  `yaml:"name" json:"name"`
	Probability float64 `yaml:"probability" json:"probability"` // base probability, 0..1
	RiskScore   int     `yaml:"risk_score" json:"risk_score"`
}

// RiskBand is a named severity tier with an inclusive score range.
type RiskBand struct {
	Range   [2]int   `yaml:"range" json:"range"` // [low, high], both inclusive
	Message string   `yaml:"message" json:"message"`
	Actions []string `yaml:"actions" json:"actions"`
}

// Contains reports whether score falls inside the band's inclusive range.
func (b RiskBand) Contains(score int) bool {
	return score >= b.Range[0] && score <= b.Range[1]
}

// DefaultRuleSet returns the minimal safe rule base used when the configured
// rule source is missing or unparseable: empty rule lists and the four
// standard bands spanning 0-100. The engine still produces well-formed
// output against it.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		KeywordMappings: map[string][]string{},
		RedFlagTerms:    []RedFlag{},
		SymptomRules:    []SymptomRule{},
		RiskBands: map[string]RiskBand{
			"low":       {Range: [2]int{0, 30}, Message: "Low risk"},
			"medium":    {Range: [2]int{31, 60}, Message: "Medium risk"},
			"high":      {Range: [2]int{61, 89}, Message: "High risk"},
			"emergency": {Range: [2]int{90, 100}, Message: "Emergency"},
		},
		Disclaimers: []string{},
		CrisisTerms: defaultCrisisTerms(),
	}
}

// defaultCrisisTerms is the built-in safety list. A configured rule base may
// extend it but a broken one must never leave crisis detection empty.
func defaultCrisisTerms() []string {
	return []string{
		"want to end it", "end it all", "kill myself", "suicide", "want to die",
		"better off dead", "not worth living", "hurt myself", "self harm",
		"cutting", "overdose", "can't go on", "give up completely",
		"no point in living", "everyone would be better", "permanent solution",
	}
}
