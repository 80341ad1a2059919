// Package config provides configuration loading for the CLI and server.
// Values come from a JSON file, environment variables, and built-in
// defaults, in that order of precedence bottom-up: env beats file, file
// beats defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds every tunable of the tailoring service.
type Config struct {
	// APIKey authenticates against the generative-text dependency.
	APIKey string `json:"api_key,omitempty"`

	// Profile is the path to the candidate profile JSON file.
	Profile string `json:"profile,omitempty"`

	// Job is the path to a job posting text file; JobURL fetches one
	// instead. The two are mutually exclusive.
	Job    string `json:"job,omitempty"`
	JobURL string `json:"job_url,omitempty"`

	// UseBrowser enables the headless-browser fallback for SPA job boards.
	UseBrowser bool `json:"use_browser,omitempty"`

	// Template names the document template; Output is the artifact
	// directory.
	Template string `json:"template,omitempty"`
	Output   string `json:"output,omitempty"`

	// ListenAddr is the server bind address.
	ListenAddr string `json:"listen_addr,omitempty"`

	// DatabaseURL enables the shared Postgres rate-limit store; empty
	// keeps limiting in process memory.
	DatabaseURL string `json:"database_url,omitempty"`

	// RateLimit is requests per client per RateLimitWindow.
	RateLimit       int           `json:"rate_limit,omitempty"`
	RateLimitWindow time.Duration `json:"-"`

	// TargetScore is the relevance score the optimize pass aims for.
	TargetScore int `json:"target_score,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Template:        "modern",
		Output:          "out",
		ListenAddr:      ":8080",
		RateLimit:       60,
		RateLimitWindow: time.Minute,
		TargetScore:     70,
	}
}

// Load reads the optional JSON config file, applies environment overrides,
// and fills remaining gaps from Defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = merge(*fileCfg, cfg)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string) (*Config, error) {
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// applyEnv overrides config fields from CVTAILOR_* environment variables.
// GEMINI_API_KEY is also honored for the key, matching the SDK convention.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CVTAILOR_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CVTAILOR_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CVTAILOR_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("CVTAILOR_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("CVTAILOR_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimit = n
		}
	}
	if v := os.Getenv("CVTAILOR_TARGET_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TargetScore = n
		}
	}
}

// merge fills empty fields of cfg from fallback.
func merge(cfg, fallback Config) Config {
	if cfg.APIKey == "" {
		cfg.APIKey = fallback.APIKey
	}
	if cfg.Profile == "" {
		cfg.Profile = fallback.Profile
	}
	if cfg.Job == "" {
		cfg.Job = fallback.Job
	}
	if cfg.JobURL == "" {
		cfg.JobURL = fallback.JobURL
	}
	if cfg.Template == "" {
		cfg.Template = fallback.Template
	}
	if cfg.Output == "" {
		cfg.Output = fallback.Output
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fallback.ListenAddr
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fallback.DatabaseURL
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = fallback.RateLimit
	}
	if cfg.RateLimitWindow == 0 {
		cfg.RateLimitWindow = fallback.RateLimitWindow
	}
	if cfg.TargetScore == 0 {
		cfg.TargetScore = fallback.TargetScore
	}
	return cfg
}

// Validate checks cross-field constraints and numeric ranges.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit' must be non-negative")
	}
	if c.TargetScore < 0 || c.TargetScore > 100 {
		return fmt.Errorf("config error: 'target_score' must be between 0 and 100")
	}
	return nil
}
