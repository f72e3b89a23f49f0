package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Provider is a single LLM completion backend. The formatter walks an
// ordered chain of these, skipping unconfigured ones.
type Provider interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

type geminiProvider struct {
	client    *genai.Client
	modelName string
}

// NewGeminiProvider builds the Gemini backend. An empty API key yields
// an unconfigured provider that the chain skips.
func NewGeminiProvider(apiKey string) (Provider, error) {
	p := &geminiProvider{modelName: "gemini-2.5-flash"}
	if apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

func (g *geminiProvider) Name() string {
	return "gemini"
}

func (g *geminiProvider) Configured() bool {
	return g.client != nil
}

// Complete implements Provider.
func (g *geminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", wrapGeminiError(err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrEmptyProviderResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyProviderResponse
	}

	return text, nil
}

// wrapGeminiError surfaces the API status code so the retry loop can
// classify the failure.
func wrapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: "gemini", StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
