package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported model backends.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config aggregates process configuration. It is built once at startup
// and read-only afterwards.
type Config struct {
	Server ServerConfig
	LLM    LLMConfig

	// LogLevel controls zerolog verbosity (trace..panic).
	LogLevel string
}

// ServerConfig governs HTTP server behaviour.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LLMConfig describes the external model backend. One backend is chosen
// at startup; all requests use the same model, token bound and
// temperature, which keeps the reply format consistent.
type LLMConfig struct {
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	MaxTokens       int
	Temperature     float64
	Timeout         time.Duration
}

const (
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 30 * time.Second

	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultMaxTokens      = 1024
	// Lower temperature favors format-consistent replies.
	defaultTemperature = 0.3
	defaultLLMTimeout  = 30 * time.Second
)

// Load reads configuration from the environment, consulting a local .env
// file when present. A missing model credential is not an error here: per
// the health contract it is surfaced through /health, never by refusing
// to start.
func Load() (*Config, error) {
	// .env is a local-development convenience; in deployment the
	// environment comes from the platform.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", defaultPort),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		LLM: LLMConfig{
			Provider:        getEnvOrDefault("LLM_PROVIDER", ProviderAnthropic),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  getEnvOrDefault("ANTHROPIC_MODEL", defaultAnthropicModel),
			GeminiAPIKey:    getEnvOrDefault("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")),
			GeminiModel:     getEnvOrDefault("GEMINI_MODEL", defaultGeminiModel),
			MaxTokens:       defaultMaxTokens,
			Temperature:     defaultTemperature,
			Timeout:         defaultLLMTimeout,
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
	}

	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid LLM_MAX_TOKENS value %q", v)
		}
		cfg.LLM.MaxTokens = n
	}

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return nil, fmt.Errorf("invalid LLM_TEMPERATURE value %q (want 0..1)", v)
		}
		cfg.LLM.Temperature = f
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
		}
		cfg.LLM.Timeout = d
	}

	switch cfg.LLM.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q (got %q)",
			ProviderAnthropic, ProviderGemini, cfg.LLM.Provider)
	}

	return cfg, nil
}

// CredentialConfigured reports whether the credential for the selected
// backend is present. Its absence only degrades /health.
func (c *Config) CredentialConfigured() bool {
	switch c.LLM.Provider {
	case ProviderGemini:
		return c.LLM.GeminiAPIKey != ""
	default:
		return c.LLM.AnthropicAPIKey != ""
	}
}

// CredentialName returns the environment variable holding the selected
// backend's credential, for health reporting.
func (c *Config) CredentialName() string {
	if c.LLM.Provider == ProviderGemini {
		return "GOOGLE_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
