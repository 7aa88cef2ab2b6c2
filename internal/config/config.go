// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the matching field is unset.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvAPIKey      = "GEMINI_API_KEY"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Engine
	Subject     string `json:"subject,omitempty" yaml:"subject,omitempty"`           // Catalog scope for topic resolution ("all" pools every subject)
	Budget      int    `json:"budget,omitempty" yaml:"budget,omitempty"`             // Practice units per band
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"` // Curriculum catalog JSON or YAML; empty uses the embedded default

	// Collaborators
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`           // Gemini API key

	// Requests per minute to the question service
	RequestsPerMinute int `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty"`

	// Behavior
	LogMode string `json:"log_mode,omitempty" yaml:"log_mode,omitempty"` // dev or prod
	Verbose bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`   // Print boxed summaries
	Workers int    `json:"workers,omitempty" yaml:"workers,omitempty"`   // Concurrent per-student diagnostics
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Subject: "all",
		Budget:  5,
		LogMode: "dev",
		Workers: 4,

		RequestsPerMinute: 60,
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the
// extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Zero values are allowed since they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Budget < 0 {
		return fmt.Errorf("config error: 'budget' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("config error: 'requests_per_minute' must be non-negative")
	}

	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("config error: unknown 'log_mode' %q", c.LogMode)
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Subject == "" {
		result.Subject = defaults.Subject
	}
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}

	if result.Budget == 0 {
		result.Budget = defaults.Budget
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.RequestsPerMinute == 0 {
		result.RequestsPerMinute = defaults.RequestsPerMinute
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the database URL and API key from the environment when
// they are unset.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
}
