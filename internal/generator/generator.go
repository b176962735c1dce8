// Package generator holds the LLM providers used for interview question generation.
package generator

import (
	"context"
	"errors"
)

// TextGenerator generates text from a system prompt and user prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Name identifies the provider in logs.
	Name() string
}

var ErrEmptyResponse = errors.New("empty response from text generator")

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGeminiModel   = "gemini-2.5-flash"

	// DefaultTemperature keeps question sets varied across interviews.
	DefaultTemperature = 0.8
)
