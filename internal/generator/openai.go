package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenAIGenerator calls an OpenAI-compatible /chat/completions endpoint.
type OpenAIGenerator struct {
	client      *resty.Client
	model       string
	temperature float64
}

type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewOpenAIGenerator builds an OpenAI-compatible TextGenerator.
// BaseURL should include the /v1 prefix.
func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		client.SetAuthToken(key)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &OpenAIGenerator{
		client:      client,
		model:       model,
		temperature: DefaultTemperature,
	}
}

func (g *OpenAIGenerator) Name() string {
	return "openai"
}

// GenerateText implements TextGenerator using the chat completions API in JSON mode.
func (g *OpenAIGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": userPrompt})

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"model":           g.model,
			"messages":        messages,
			"temperature":     g.temperature,
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		if msg := gjson.Get(body, "error.message").String(); msg != "" {
			return "", fmt.Errorf("openai api error: %s", msg)
		}
		return "", fmt.Errorf("openai api error: %s", resp.Status())
	}

	text := strings.TrimSpace(gjson.Get(body, "choices.0.message.content").String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
