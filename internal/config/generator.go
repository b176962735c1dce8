package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/generator"
)

// GeneratorConfig selects the LLM provider for question generation
type GeneratorConfig struct {
	Provider      string // openai, gemini or empty to pick by available key
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	Timeout       time.Duration
}

// ResolvedProvider returns the provider that will be used, or "" when no key is set.
func (c *GeneratorConfig) ResolvedProvider() string {
	switch c.Provider {
	case "openai":
		if c.OpenAIAPIKey != "" {
			return "openai"
		}
		return ""
	case "gemini":
		if c.GeminiAPIKey != "" {
			return "gemini"
		}
		return ""
	case "none":
		return ""
	}
	if c.OpenAIAPIKey != "" {
		return "openai"
	}
	if c.GeminiAPIKey != "" {
		return "gemini"
	}
	return ""
}

// CreateTextGenerator returns nil when no provider is configured, in which
// case question generation uses the fallback bank only.
func (c *GeneratorConfig) CreateTextGenerator(ctx context.Context, logger *slog.Logger) (generator.TextGenerator, error) {
	switch c.ResolvedProvider() {
	case "openai":
		logger.Info("Using OpenAI-compatible question generator", "base_url", c.OpenAIBaseURL, "model", c.OpenAIModel)
		return generator.NewOpenAIGenerator(generator.OpenAIConfig{
			BaseURL: c.OpenAIBaseURL,
			APIKey:  c.OpenAIAPIKey,
			Model:   c.OpenAIModel,
			Timeout: c.Timeout,
		}), nil
	case "gemini":
		logger.Info("Using Gemini question generator", "model", c.GeminiModel)
		return generator.NewGeminiGenerator(ctx, c.GeminiAPIKey, c.GeminiModel)
	default:
		logger.Info("No question generator configured, using fallback questions")
		return nil, nil
	}
}
