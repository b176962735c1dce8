package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds a Gemini-based TextGenerator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// GenerateText implements TextGenerator using Gemini with a JSON response MIME type.
func (g *GeminiGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(DefaultTemperature)),
		ResponseMIMEType: "application/json",
	}
	if strings.TrimSpace(systemPrompt) != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if result == nil {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
