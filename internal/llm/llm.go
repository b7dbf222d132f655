// Package llm provides the model clients behind the analysis pipeline:
// one implementation per supported backend, all satisfying
// analysis.ModelClient.
package llm

import (
	"context"
	"fmt"

	"github.com/dvloznov/fraud-detection-api/internal/analysis"
	"github.com/dvloznov/fraud-detection-api/internal/config"
)

// NewFromConfig constructs the model client selected by cfg.
func NewFromConfig(ctx context.Context, cfg *config.Config) (analysis.ModelClient, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.LLM.GeminiModel, int32(cfg.LLM.MaxTokens), float32(cfg.LLM.Temperature))
		if err != nil {
			return nil, fmt.Errorf("llm: %w", err)
		}
		return client, nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.LLM.AnthropicAPIKey, cfg.LLM.AnthropicModel, int64(cfg.LLM.MaxTokens), cfg.LLM.Temperature), nil
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.LLM.Provider)
	}
}
