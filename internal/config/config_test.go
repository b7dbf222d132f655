package config

import (
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
		"GOOGLE_API_KEY", "GEMINI_API_KEY", "GEMINI_MODEL",
		"LLM_MAX_TOKENS", "LLM_TEMPERATURE", "LLM_TIMEOUT",
		"PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != defaultPort {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, defaultPort)
	}
	if cfg.LLM.Provider != ProviderAnthropic {
		t.Errorf("Provider = %q, want %q", cfg.LLM.Provider, ProviderAnthropic)
	}
	if cfg.LLM.AnthropicModel != defaultAnthropicModel {
		t.Errorf("AnthropicModel = %q, want %q", cfg.LLM.AnthropicModel, defaultAnthropicModel)
	}
	if cfg.LLM.MaxTokens != defaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.LLM.MaxTokens, defaultMaxTokens)
	}
	if cfg.LLM.Temperature != defaultTemperature {
		t.Errorf("Temperature = %v, want %v", cfg.LLM.Temperature, defaultTemperature)
	}
}

func TestLoad_MissingCredentialIsNotAnError(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing credential must not fail startup: %v", err)
	}
	if cfg.CredentialConfigured() {
		t.Error("CredentialConfigured = true with no key in the environment")
	}
	if cfg.CredentialName() != "ANTHROPIC_API_KEY" {
		t.Errorf("CredentialName = %q, want ANTHROPIC_API_KEY", cfg.CredentialName())
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LLM_PROVIDER", ProviderGemini)
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("LLM_MAX_TOKENS", "512")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LLM.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want %q", cfg.LLM.Provider, ProviderGemini)
	}
	if !cfg.CredentialConfigured() {
		t.Error("gemini credential should be reported as configured")
	}
	if cfg.CredentialName() != "GOOGLE_API_KEY" {
		t.Errorf("CredentialName = %q, want GOOGLE_API_KEY", cfg.CredentialName())
	}
	if cfg.LLM.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.LLM.Temperature)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.LLM.Timeout)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown provider", "LLM_PROVIDER", "openai"},
		{"non-numeric max tokens", "LLM_MAX_TOKENS", "lots"},
		{"negative max tokens", "LLM_MAX_TOKENS", "-1"},
		{"temperature out of range", "LLM_TEMPERATURE", "2.5"},
		{"bad timeout", "LLM_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLLMEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}
