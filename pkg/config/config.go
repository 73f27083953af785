package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultKnowledgePath is used when no knowledge file argument is given.
const DefaultKnowledgePath = "knowledge.txt"

// Environment variable names read by FromEnv.
const (
	EnvVerbose = "KBCHAT_VERBOSE"
	EnvSeed    = "KBCHAT_SEED"
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvBaseURL = "OPENAI_BASE_URL"
	EnvModel   = "OPENAI_MODEL"
)

// Config holds all runtime configuration for the chatbot.
type Config struct {
	KnowledgePath string
	Verbose       bool
	// Seed fixes the response picker; 0 seeds from the wall clock.
	Seed uint64

	APIKey  string
	BaseURL string
	Model   string
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		KnowledgePath: DefaultKnowledgePath,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.KnowledgePath = strings.TrimSpace(cfg.KnowledgePath)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)

	if cfg.KnowledgePath == "" {
		cfg.KnowledgePath = DefaultKnowledgePath
	}
	return cfg
}

// FromEnv overlays environment values onto cfg. Values that fail to parse
// leave the corresponding field untouched and are reported in the returned error.
func FromEnv(cfg Config, getenv func(string) string) (Config, error) {
	if getenv == nil {
		return cfg, nil
	}

	var errs []error
	if v := strings.TrimSpace(getenv(EnvVerbose)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvVerbose, err))
		} else {
			cfg.Verbose = b
		}
	}
	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			cfg.Seed = n
		}
	}
	if v := getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	return Normalize(cfg), errors.Join(errs...)
}

// FallbackEnabled reports whether a generative fallback model is configured.
func (c Config) FallbackEnabled() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.Model) != ""
}
