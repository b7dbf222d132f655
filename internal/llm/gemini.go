package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient is the alternative backend, using the GenAI SDK. The SDK
// picks up GOOGLE_API_KEY / GEMINI_API_KEY from the environment.
type GeminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

// NewGeminiClient builds a client for the given model.
func NewGeminiClient(ctx context.Context, model string, maxTokens int32, temperature float32) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Complete sends one user message and returns the text of the reply.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini api call: empty response from model %s", c.model)
	}

	return text, nil
}
