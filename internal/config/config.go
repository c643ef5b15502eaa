// Package config provides YAML-based configuration loading for Callwright.
// Credentials never live in the file; they resolve from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Callwright configuration, loaded from
// callwright.yaml.
type Config struct {
	TargetNumber   string `yaml:"target_number"`
	FromNumber     string `yaml:"from_number"`
	TranscriptsDir string `yaml:"transcripts_dir"`
	ReportPath     string `yaml:"report_path"`

	Provider      ProviderConfig      `yaml:"provider"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Timing        TimingConfig        `yaml:"timing"`
	Notify        NotifyConfig        `yaml:"notify"`
	Dashboard     DashboardConfig     `yaml:"dashboard"`
}

// ProviderConfig holds telephony provider settings beyond credentials.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url"` // empty means the production API
}

// TranscriptionConfig holds speech-to-text settings beyond credentials.
type TranscriptionConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// TimingConfig holds the fixed pipeline timings, in seconds.
type TimingConfig struct {
	PollIntervalSeconds   int `yaml:"poll_interval_seconds"`
	PollBudgetSeconds     int `yaml:"poll_budget_seconds"`
	RecordingGraceSeconds int `yaml:"recording_grace_seconds"`
	InterCallDelaySeconds int `yaml:"inter_call_delay_seconds"`
}

// PollInterval returns the poll interval as a duration.
func (t TimingConfig) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalSeconds) * time.Second
}

// PollBudget returns the polling wall-clock budget as a duration.
func (t TimingConfig) PollBudget() time.Duration {
	return time.Duration(t.PollBudgetSeconds) * time.Second
}

// RecordingGrace returns the post-call recording grace delay as a duration.
func (t TimingConfig) RecordingGrace() time.Duration {
	return time.Duration(t.RecordingGraceSeconds) * time.Second
}

// InterCallDelay returns the delay between batch calls as a duration.
func (t TimingConfig) InterCallDelay() time.Duration {
	return time.Duration(t.InterCallDelaySeconds) * time.Second
}

// NotifyConfig selects where finding notifications go. A channel left empty
// disables that platform.
type NotifyConfig struct {
	SlackChannel     string `yaml:"slack_channel"`
	DiscordChannelID string `yaml:"discord_channel_id"`
}

// DashboardConfig holds web dashboard settings.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file yields defaults-plus-environment rather than an error, so
// a credentials-only setup works without any file on disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in environment fallbacks and default values.
func (c *Config) applyDefaults() {
	if c.TargetNumber == "" {
		c.TargetNumber = os.Getenv("TARGET_PHONE_NUMBER")
	}
	if c.FromNumber == "" {
		c.FromNumber = os.Getenv("TWILIO_PHONE_NUMBER")
	}
	if c.TranscriptsDir == "" {
		c.TranscriptsDir = "transcripts"
	}
	if c.ReportPath == "" {
		c.ReportPath = "BUG_REPORT.md"
	}
	if c.Timing.PollIntervalSeconds == 0 {
		c.Timing.PollIntervalSeconds = 2
	}
	if c.Timing.PollBudgetSeconds == 0 {
		c.Timing.PollBudgetSeconds = 180
	}
	if c.Timing.RecordingGraceSeconds == 0 {
		c.Timing.RecordingGraceSeconds = 5
	}
	if c.Timing.InterCallDelaySeconds == 0 {
		c.Timing.InterCallDelaySeconds = 15
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.TargetNumber == "" {
		errs = append(errs, "target_number is required (or TARGET_PHONE_NUMBER)")
	}
	if c.FromNumber == "" {
		errs = append(errs, "from_number is required (or TWILIO_PHONE_NUMBER)")
	}
	if c.Timing.PollIntervalSeconds < 0 || c.Timing.PollBudgetSeconds < 0 {
		errs = append(errs, "timing values must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Credentials are the secrets for the external collaborators, resolved from
// the environment only.
type Credentials struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	GroqAPIKey       string
	SlackBotToken    string
	DiscordBotToken  string
}

// CredentialsFromEnv reads all known credential variables. Missing values
// stay empty; each consumer decides which ones it requires.
func CredentialsFromEnv() Credentials {
	return Credentials{
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		SlackBotToken:    os.Getenv("SLACK_BOT_TOKEN"),
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
	}
}
