package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.ErrorIs(t, err, domain.ErrAINotConfigured)

	s, err := NewLLMService(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.NoError(t, s.Close())
}

func TestGenerate(t *testing.T) {
	var got messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"content": [
			{"type": "text", "text": "Part III "},
			{"type": "tool_use", "text": "ignored"},
			{"type": "text", "text": "covers rights."}
		]}`))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := s.Generate(context.Background(), "prompt", driven.GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Part III covers rights.", text)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	assert.Equal(t, []message{{Role: "user", Content: "prompt"}}, got.Messages)
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "overloaded", status: 529, body: `{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`},
		{name: "bad status", status: http.StatusInternalServerError, body: `{}`},
		{name: "not json", status: http.StatusBadGateway, body: `upstream`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			s, err := NewLLMService(Config{APIKey: "key", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = s.Generate(context.Background(), "q", driven.GenerateOptions{})

			assert.ErrorIs(t, err, domain.ErrGenerationService)
		})
	}
}

func TestPing_Unauthorised(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrGenerationService)
}
