// Package config loads runtime settings from the environment.
//
// Every knob has a default that works for local development; production
// deployments override via environment variables. Load never reads files —
// secret material arrives through the process environment only.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries every runtime setting for the honeypot service.
type Config struct {
	// APIKey authenticates inbound platform calls (X-API-Key header).
	APIKey string

	// GeminiAPIKey enables LLM reply generation. Empty means template-only mode.
	GeminiAPIKey string

	// CallbackURL receives the intelligence dossier when an engagement ends.
	// Empty disables dispatch.
	CallbackURL string

	RedisURL string
	UseRedis bool

	LogLevel string

	SessionTimeoutSeconds int
	MaxEngagementTurns    int
	ScamThreshold         float64

	// ResponseDelayMin/Max bound the simulated typing pace (seconds) applied
	// to engaged replies. Zero on both disables pacing.
	ResponseDelayMin float64
	ResponseDelayMax float64

	EnableTamperProtection bool
	MaxConcurrentSessions  int
	RateLimitPerMinute     int

	DebugMode bool
	Port      int

	// LexiconConfigDir points at an optional directory holding lexicon.yaml
	// keyword overrides. Empty means built-in tables only.
	LexiconConfigDir string
}

// NewDefaultConfig returns the settings used when no environment is present.
func NewDefaultConfig() *Config {
	return &Config{
		APIKey:                 "default_api_key",
		GeminiAPIKey:           "",
		CallbackURL:            "",
		RedisURL:               "redis://localhost:6379",
		UseRedis:               false,
		LogLevel:               "info",
		SessionTimeoutSeconds:  3600,
		MaxEngagementTurns:     15,
		ScamThreshold:          0.7,
		ResponseDelayMin:       0.5,
		ResponseDelayMax:       2.5,
		EnableTamperProtection: true,
		MaxConcurrentSessions:  1000,
		RateLimitPerMinute:     60,
		DebugMode:              false,
		Port:                   8000,
		LexiconConfigDir:       "",
	}
}

// Load builds a Config from defaults plus environment overrides.
func Load() (*Config, error) {
	cfg := NewDefaultConfig()

	cfg.APIKey = GetEnv("API_KEY", cfg.APIKey)
	cfg.GeminiAPIKey = GetEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.CallbackURL = GetEnv("GUVI_CALLBACK_URL", cfg.CallbackURL)
	cfg.RedisURL = GetEnv("REDIS_URL", cfg.RedisURL)
	cfg.UseRedis = GetEnvBool("USE_REDIS", cfg.UseRedis)
	cfg.LogLevel = strings.ToLower(GetEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.SessionTimeoutSeconds = GetEnvInt("SESSION_TIMEOUT_SECONDS", cfg.SessionTimeoutSeconds)
	cfg.MaxEngagementTurns = GetEnvInt("MAX_ENGAGEMENT_TURNS", cfg.MaxEngagementTurns)
	cfg.ScamThreshold = GetEnvFloat("SCAM_THRESHOLD", cfg.ScamThreshold)
	cfg.ResponseDelayMin = GetEnvFloat("RESPONSE_DELAY_MIN", cfg.ResponseDelayMin)
	cfg.ResponseDelayMax = GetEnvFloat("RESPONSE_DELAY_MAX", cfg.ResponseDelayMax)
	cfg.EnableTamperProtection = GetEnvBool("ENABLE_TAMPER_PROTECTION", cfg.EnableTamperProtection)
	cfg.MaxConcurrentSessions = GetEnvInt("MAX_CONCURRENT_SESSIONS", cfg.MaxConcurrentSessions)
	cfg.RateLimitPerMinute = GetEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.DebugMode = GetEnvBool("DEBUG_MODE", cfg.DebugMode)
	cfg.Port = GetEnvInt("PORT", cfg.Port)
	cfg.LexiconConfigDir = GetEnv("LEXICON_CONFIG_DIR", cfg.LexiconConfigDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would wedge the service at runtime.
func (c *Config) Validate() error {
	if c.SessionTimeoutSeconds <= 0 {
		return fmt.Errorf("config: SESSION_TIMEOUT_SECONDS must be positive, got %d", c.SessionTimeoutSeconds)
	}
	if c.MaxEngagementTurns <= 0 {
		return fmt.Errorf("config: MAX_ENGAGEMENT_TURNS must be positive, got %d", c.MaxEngagementTurns)
	}
	if c.ScamThreshold <= 0 || c.ScamThreshold > 1 {
		return fmt.Errorf("config: SCAM_THRESHOLD must be in (0, 1], got %v", c.ScamThreshold)
	}
	if c.ResponseDelayMin < 0 || c.ResponseDelayMax < c.ResponseDelayMin {
		return fmt.Errorf("config: response delay range [%v, %v] is invalid", c.ResponseDelayMin, c.ResponseDelayMax)
	}
	if c.MaxConcurrentSessions <= 0 {
		return fmt.Errorf("config: MAX_CONCURRENT_SESSIONS must be positive, got %d", c.MaxConcurrentSessions)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: PORT must be in [1, 65535], got %d", c.Port)
	}
	return nil
}

// IsProduction reports whether the service should behave as a hardened
// deployment: tamper protection on and debug off.
func (c *Config) IsProduction() bool {
	return !c.DebugMode && c.EnableTamperProtection
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// === env helpers ===

// GetEnv returns the trimmed value of key, or fallback when unset/blank.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return fallback
}

// GetEnvInt parses key as an integer, returning fallback on absence or junk.
func GetEnvInt(key string, fallback int) int {
	v := GetEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvFloat parses key as a float, returning fallback on absence or junk.
func GetEnvFloat(key string, fallback float64) float64 {
	v := GetEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetEnvBool parses key as a boolean. Accepted truthy spellings are
// "true", "1", and "yes" (case-insensitive); "false", "0", and "no" are
// falsy. Anything else keeps the fallback.
func GetEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(GetEnv(key, ""))
	switch v {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}
