package llm

import (
	"context"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient calls the Anthropic Messages API. This is the default
// backend; the model, token bound and temperature are fixed at
// construction so every request gets the same generation settings.
type AnthropicClient struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropicClient builds a client for the given model. An empty apiKey
// is allowed at construction time - the service still starts and reports
// the missing credential through /health; calls will fail until it is set.
func NewAnthropicClient(apiKey, model string, maxTokens int64, temperature float64) *AnthropicClient {
	return &AnthropicClient{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Complete sends one user message and returns the text of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("anthropic api call: empty response from model %s", c.model)
	}

	return msg.Content[0].Text, nil
}
