// Package config provides configuration loading for the chat backend.
// Tunables (keyword tables, result caps, persona prefix, timeouts) live in
// an optional YAML file; credentials come from the environment only.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig  `yaml:"server"`
	Gemini     GeminiConfig  `yaml:"gemini"`
	Search     SearchConfig  `yaml:"search"`
	Persona    PersonaConfig `yaml:"persona"`
	Routing    RoutingConfig `yaml:"routing"`
	MaxHistory int           `yaml:"max_history"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	AllowedOrigin   string `yaml:"allowed_origin"`
	ImageProxyLimit int64  `yaml:"image_proxy_limit_bytes"`
}

// GeminiConfig holds settings for the generative endpoint. APIKey is only
// ever populated from the environment; timeouts are code defaults.
type GeminiConfig struct {
	APIKey          string        `yaml:"-"`
	Endpoint        string        `yaml:"endpoint"`
	Model           string        `yaml:"model"`
	Temperature     float64       `yaml:"temperature"`
	TopK            int           `yaml:"top_k"`
	TopP            float64       `yaml:"top_p"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"-"`
}

// SearchConfig holds settings for the Google Custom Search gateway.
// WebLimit and ImageLimit shape the payload existing clients expect;
// change them only together with the frontend.
type SearchConfig struct {
	APIKey       string        `yaml:"-"`
	EngineID     string        `yaml:"-"`
	Endpoint     string        `yaml:"endpoint"`
	WebLimit     int           `yaml:"web_limit"`
	ImageLimit   int           `yaml:"image_limit"`
	QualityTerms string        `yaml:"quality_terms"`
	Timeout      time.Duration `yaml:"-"`
}

// PersonaConfig holds the presentation-layer contract: the response prefix
// every assistant turn carries, and the canned texts for terminal outcomes.
type PersonaConfig struct {
	Prefix          string `yaml:"prefix"`
	PolicyMessage   string `yaml:"policy_message"`
	NoImagesMessage string `yaml:"no_images_message"`
	FailureMessage  string `yaml:"failure_message"`
}

// RoutingConfig centralizes the keyword tables consumed by the classifier
// and the policy filter, so tuning touches one place.
type RoutingConfig struct {
	BlockedTerms   []string `yaml:"blocked_terms"`
	SearchTerms    []string `yaml:"search_terms"`
	ImageTerms     []string `yaml:"image_terms"`
	ReferenceTerms []string `yaml:"reference_terms"`
}

// Load reads the YAML config at path when it exists, applies defaults, and
// pulls credentials from the environment. A missing file is not an error;
// the defaults plus env are a complete configuration.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	ApplyDefaults(&cfg)

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Search.APIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	cfg.Search.EngineID = os.Getenv("GOOGLE_SEARCH_ENGINE_ID")
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	return &cfg, nil
}

// Validate checks the settings the gateways cannot run without. Credential
// checks for the generative endpoint are deliberately not here: main falls
// back to the mock provider when GEMINI_API_KEY is absent.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Search.WebLimit < 1 {
		return fmt.Errorf("search web_limit must be at least 1")
	}
	if c.Search.ImageLimit < 1 {
		return fmt.Errorf("search image_limit must be at least 1")
	}
	if c.MaxHistory < 1 {
		return fmt.Errorf("max_history must be at least 1")
	}
	if c.Persona.Prefix == "" {
		return fmt.Errorf("persona prefix cannot be empty")
	}
	return nil
}

// SearchEnabled reports whether search credentials are present. Without
// them the router degrades every request to pure generation.
func (c *Config) SearchEnabled() bool {
	return c.Search.APIKey != "" && c.Search.EngineID != ""
}
