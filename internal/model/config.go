package model

import "time"

// Config is the full runtime configuration. Values come from defaults,
// overridden by the config file and HEALTHLINK_* environment variables.
type Config struct {
	Rules     RulesConfig     `yaml:"rules" mapstructure:"rules"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Usage     UsageConfig     `yaml:"usage" mapstructure:"usage"`
	Mongo     MongoConfig     `yaml:"mongo" mapstructure:"mongo"`
	Alerts    AlertsConfig    `yaml:"alerts" mapstructure:"alerts"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Sentiment SentimentConfig `yaml:"sentiment" mapstructure:"sentiment"`
}

// RulesConfig locates the rule base document.
type RulesConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // YAML rule base; empty means built-in defaults
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	AllowOrigin     string        `yaml:"allow_origin" mapstructure:"allow_origin"`
	RatePerSecond   float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"` // per client IP
	RateBurst       int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// UsageConfig configures daily metering.
type UsageConfig struct {
	Enabled      bool           `yaml:"enabled" mapstructure:"enabled"`
	FreeLimits   map[string]int `yaml:"free_limits" mapstructure:"free_limits"` // feature -> per-day cap
	PremiumUsers []string       `yaml:"premium_users" mapstructure:"premium_users"`
}

// MongoConfig configures the audit store. Disabled when URI is empty.
type MongoConfig struct {
	URI      string `yaml:"uri" mapstructure:"uri"`
	Database string `yaml:"database" mapstructure:"database"`
}

// AlertsConfig configures the RabbitMQ alert publisher. Disabled when URL is
// empty.
type AlertsConfig struct {
	URL      string `yaml:"url" mapstructure:"url"`
	Exchange string `yaml:"exchange" mapstructure:"exchange"`
}

// OutputConfig controls CLI verbosity.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// SentimentConfig controls the lexicon analyzer collaborator.
type SentimentConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			Path: "configs/rules.yaml",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AllowOrigin:     "*",
			RatePerSecond:   5,
			RateBurst:       10,
			ShutdownTimeout: 10 * time.Second,
		},
		Usage: UsageConfig{
			Enabled: true,
			FreeLimits: map[string]int{
				FeatureSymptomCheck:   5,
				FeatureMindwellChat:   10,
				FeatureProviderLookup: 3,
			},
		},
		Mongo: MongoConfig{
			Database: "healthlink",
		},
		Alerts: AlertsConfig{
			Exchange: "healthlink.alerts",
		},
		Sentiment: SentimentConfig{
			Enabled: true,
		},
	}
}

// Metered feature names, shared by the usage meter and the API layer.
const (
	FeatureSymptomCheck   = "symptom_check"
	FeatureMindwellChat   = "mindwell_chat"
	FeatureProviderLookup = "provider_lookup"
)
