// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Origins      []string // CORS allow-list.

	// Grammar engine settings.
	LanguageToolURL     string
	LanguageToolTimeout time.Duration

	// Coherence (Gemini) settings.
	GeminiAPIKey     string // Empty disables the coherence analyzer.
	GeminiModel      string
	CoherenceTimeout time.Duration

	// Rate limiting.
	RateLimitEnabled bool
	EvaluationLimit  int // Evaluation requests per minute per client.
	HealthLimit      int // Health requests per minute per client.

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string

	// Operational settings.
	LogLevel            string
	MaxRequestBodyBytes int64 // Maximum request body size in bytes.
}

// Load reads configuration from environment variables with sensible defaults.
// Invalid values are collected so a single run reports every bad variable.
func Load() (Config, error) {
	var errs []error
	collectInt := func(key string, def int) int {
		v, err := envInt(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	collectBool := func(key string, def bool) bool {
		v, err := envBool(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	collectDuration := func(key string, def time.Duration) time.Duration {
		v, err := envDuration(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := Config{
		Port:                collectInt("PORT", 8000),
		ReadTimeout:         collectDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:        collectDuration("WRITE_TIMEOUT", 60*time.Second),
		Origins:             splitOrigins(envStr("ORIGINS", "http://localhost:4200")),
		LanguageToolURL:     envStr("LANGUAGETOOL_URL", "http://localhost:8010"),
		LanguageToolTimeout: collectDuration("LANGUAGETOOL_TIMEOUT", 10*time.Second),
		GeminiAPIKey:        envStr("GEMINI_API_KEY", ""),
		GeminiModel:         envStr("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		CoherenceTimeout:    collectDuration("COHERENCE_TIMEOUT", 30*time.Second),
		RateLimitEnabled:    collectBool("RATE_LIMIT_ENABLED", true),
		EvaluationLimit:     collectInt("EVALUATION_LIMIT", 5),
		HealthLimit:         collectInt("HEALTH_LIMIT", 100),
		OTELEndpoint:        envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:        collectBool("OTEL_INSECURE", false),
		ServiceName:         envStr("OTEL_SERVICE_NAME", "refinescore"),
		LogLevel:            envStr("LOG_LEVEL", "info"),
		MaxRequestBodyBytes: int64(collectInt("MAX_REQUEST_BODY_BYTES", 1*1024*1024)),
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and coherent.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.LanguageToolURL == "" {
		return fmt.Errorf("config: LANGUAGETOOL_URL is required")
	}
	if c.LanguageToolTimeout <= 0 {
		return fmt.Errorf("config: LANGUAGETOOL_TIMEOUT must be positive")
	}
	if c.CoherenceTimeout <= 0 {
		return fmt.Errorf("config: COHERENCE_TIMEOUT must be positive")
	}
	if c.EvaluationLimit <= 0 {
		return fmt.Errorf("config: EVALUATION_LIMIT must be positive")
	}
	if c.HealthLimit <= 0 {
		return fmt.Errorf("config: HEALTH_LIMIT must be positive")
	}
	if c.MaxRequestBodyBytes <= 0 {
		return fmt.Errorf("config: MAX_REQUEST_BODY_BYTES must be positive")
	}
	return nil
}

// splitOrigins parses a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal, fmt.Errorf("%s=%q is not a valid integer", key, v)
	}
	return n, nil
}

func envBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal, fmt.Errorf("%s=%q is not a valid boolean", key, v)
	}
	return b, nil
}

func envDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal, fmt.Errorf("%s=%q is not a valid duration", key, v)
	}
	return d, nil
}
