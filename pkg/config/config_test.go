package config

import (
	"os"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg == nil {
		t.Fatal("NewDefaultConfig returned nil")
	}

	// Verify some defaults
	if cfg.ScamThreshold <= 0 || cfg.ScamThreshold > 1 {
		t.Errorf("ScamThreshold should be between 0 and 1, got %f", cfg.ScamThreshold)
	}

	if cfg.APIKey != "default_api_key" {
		t.Errorf("Expected placeholder API key, got %q", cfg.APIKey)
	}

	if cfg.MaxEngagementTurns != 15 {
		t.Errorf("Expected 15 engagement turns, got %d", cfg.MaxEngagementTurns)
	}

	if cfg.UseRedis {
		t.Error("Redis should be off by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	_ = os.Setenv("API_KEY", "secret-key-123")
	_ = os.Setenv("USE_REDIS", "true")
	_ = os.Setenv("SCAM_THRESHOLD", "0.55")
	_ = os.Setenv("MAX_ENGAGEMENT_TURNS", "7")
	_ = os.Setenv("PORT", "9000")
	defer func() {
		for _, k := range []string{"API_KEY", "USE_REDIS", "SCAM_THRESHOLD", "MAX_ENGAGEMENT_TURNS", "PORT"} {
			_ = os.Unsetenv(k)
		}
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIKey != "secret-key-123" {
		t.Errorf("Expected API key from env, got %q", cfg.APIKey)
	}
	if !cfg.UseRedis {
		t.Error("USE_REDIS=true should enable Redis")
	}
	if cfg.ScamThreshold != 0.55 {
		t.Errorf("Expected threshold 0.55, got %f", cfg.ScamThreshold)
	}
	if cfg.MaxEngagementTurns != 7 {
		t.Errorf("Expected 7 turns, got %d", cfg.MaxEngagementTurns)
	}
	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
}

func TestLoad_InvalidThreshold(t *testing.T) {
	_ = os.Setenv("SCAM_THRESHOLD", "1.5")
	defer func() { _ = os.Unsetenv("SCAM_THRESHOLD") }()

	if _, err := Load(); err == nil {
		t.Error("Expected validation error for threshold > 1")
	}
}

func TestLoad_InvalidDelayRange(t *testing.T) {
	_ = os.Setenv("RESPONSE_DELAY_MIN", "3.0")
	_ = os.Setenv("RESPONSE_DELAY_MAX", "1.0")
	defer func() {
		_ = os.Unsetenv("RESPONSE_DELAY_MIN")
		_ = os.Unsetenv("RESPONSE_DELAY_MAX")
	}()

	if _, err := Load(); err == nil {
		t.Error("Expected validation error for inverted delay range")
	}
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		debug, tamper, expected bool
	}{
		{false, true, true},   // hardened
		{true, true, false},   // debug on
		{false, false, false}, // tamper off
		{true, false, false},
	}

	for _, tt := range tests {
		cfg := NewDefaultConfig()
		cfg.DebugMode = tt.debug
		cfg.EnableTamperProtection = tt.tamper
		if got := cfg.IsProduction(); got != tt.expected {
			t.Errorf("IsProduction(debug=%v, tamper=%v) = %v, want %v",
				tt.debug, tt.tamper, got, tt.expected)
		}
	}
}

func TestGetEnvInt(t *testing.T) {
	// Test with existing env var
	_ = os.Setenv("TEST_INT_VAR", "42")
	defer func() { _ = os.Unsetenv("TEST_INT_VAR") }()

	result := GetEnvInt("TEST_INT_VAR", 10)
	if result != 42 {
		t.Errorf("Expected 42, got %d", result)
	}

	// Test with non-existent var (should return default)
	result = GetEnvInt("NON_EXISTENT_VAR_XYZ", 100)
	if result != 100 {
		t.Errorf("Expected default 100, got %d", result)
	}

	// Test with invalid int
	_ = os.Setenv("INVALID_INT_VAR", "not-a-number")
	defer func() { _ = os.Unsetenv("INVALID_INT_VAR") }()

	result = GetEnvInt("INVALID_INT_VAR", 50)
	if result != 50 {
		t.Errorf("Expected default 50 for invalid int, got %d", result)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		raw      string
		fallback bool
		expected bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"garbage", true, true},  // keeps fallback
		{"garbage", false, false},
	}

	for _, tt := range tests {
		_ = os.Setenv("TEST_BOOL_VAR", tt.raw)
		if got := GetEnvBool("TEST_BOOL_VAR", tt.fallback); got != tt.expected {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", tt.raw, tt.fallback, got, tt.expected)
		}
	}
	_ = os.Unsetenv("TEST_BOOL_VAR")

	if got := GetEnvBool("NON_EXISTENT_BOOL_XYZ", true); !got {
		t.Error("Unset var should keep fallback true")
	}
}

func TestAddr(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Port = 8080
	if got := cfg.Addr(); got != ":8080" {
		t.Errorf("Addr() = %q, want :8080", got)
	}
}
