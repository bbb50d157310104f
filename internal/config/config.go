// Package config loads and validates the nightwatch configuration.
//
// Precedence for every value: CLI flag > environment variable > config file
// > built-in default. The config file is optional; a missing file yields the
// defaults, which watch the Cardano token registry.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config represents the complete nightwatch configuration
type Config struct {
	// LookbackHours is how far back each run looks for commits
	LookbackHours int `json:"lookbackHours" mapstructure:"lookbackHours"`

	// PageSize caps the number of commits fetched per run
	PageSize int `json:"pageSize" mapstructure:"pageSize"`

	// APIBaseURL is the code-hosting API root
	APIBaseURL string `json:"apiBaseUrl" mapstructure:"apiBaseUrl"`

	// Token is the optional bearer credential for commit listing/detail calls.
	// Taken from GITHUB_TOKEN; never written to the config file.
	Token string `json:"-" mapstructure:"-"`

	// FetchTimeoutSeconds bounds each metadata content fetch
	FetchTimeoutSeconds int `json:"fetchTimeoutSeconds" mapstructure:"fetchTimeoutSeconds"`

	// RulesPath points at an optional RULES.toml scoring override
	RulesPath string `json:"rulesPath" mapstructure:"rulesPath"`

	// WatchlistPath points at an optional watchlist.yaml of registries
	WatchlistPath string `json:"watchlistPath" mapstructure:"watchlistPath"`

	Webhook WebhookConfig `json:"webhook" mapstructure:"webhook"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// WebhookConfig contains the optional run-summary webhook settings
type WebhookConfig struct {
	URL            string `json:"url" mapstructure:"url"`
	Secret         string `json:"secret" mapstructure:"secret"`
	TimeoutSeconds int    `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LookbackHours:       24,
		PageSize:            50,
		APIBaseURL:          "https://api.github.com",
		FetchTimeoutSeconds: 10,
		Webhook: WebhookConfig{
			TimeoutSeconds: 10,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <dir>/.nightwatch/config.json and
// applies environment overrides. A missing config file is not an error.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("lookbackHours", defaults.LookbackHours)
	v.SetDefault("pageSize", defaults.PageSize)
	v.SetDefault("apiBaseUrl", defaults.APIBaseURL)
	v.SetDefault("fetchTimeoutSeconds", defaults.FetchTimeoutSeconds)
	v.SetDefault("webhook.timeoutSeconds", defaults.Webhook.TimeoutSeconds)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(dir, ".nightwatch"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv overlays the environment values the original deployment used.
func applyEnv(cfg *Config) {
	if raw := os.Getenv("LOOKBACK_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil {
			cfg.LookbackHours = hours
		}
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.Token = token
	}
	if level := os.Getenv("NIGHTWATCH_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.LookbackHours <= 0 {
		return &ConfigError{Field: "lookbackHours", Message: "must be a positive number of hours"}
	}
	if c.PageSize <= 0 || c.PageSize > 100 {
		return &ConfigError{Field: "pageSize", Message: "must be between 1 and 100"}
	}
	if c.APIBaseURL == "" {
		return &ConfigError{Field: "apiBaseUrl", Message: "must not be empty"}
	}
	if c.FetchTimeoutSeconds <= 0 {
		return &ConfigError{Field: "fetchTimeoutSeconds", Message: "must be a positive number of seconds"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
