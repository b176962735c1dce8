package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGeneratorSendsChatRequest(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"questions\":[]}"}}]}`))
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{BaseURL: server.URL + "/v1/", APIKey: "test-key"})
	text, err := gen.GenerateText(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, `{"questions":[]}`, text)
	assert.Equal(t, DefaultOpenAIModel, captured["model"])
	assert.Equal(t, 0.8, captured["temperature"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, captured["response_format"])

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "user prompt", messages[1].(map[string]interface{})["content"])
}

func TestOpenAIGeneratorErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "api error message", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantErr: "openai api error: bad key"},
		{name: "api error without body", status: http.StatusBadGateway, body: ``, wantErr: "openai api error"},
		{name: "empty content", status: http.StatusOK, body: `{"choices":[]}`, wantErr: ErrEmptyResponse.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gen := NewOpenAIGenerator(OpenAIConfig{BaseURL: server.URL, APIKey: "k"})
			_, err := gen.GenerateText(context.Background(), "", "prompt")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAIGeneratorTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{BaseURL: server.URL, APIKey: "k", Timeout: 20 * time.Millisecond})
	_, err := gen.GenerateText(context.Background(), "", "prompt")
	assert.Error(t, err)
}
