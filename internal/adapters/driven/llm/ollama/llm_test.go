package ollama

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

func TestNewLLMService_Defaults(t *testing.T) {
	s := NewLLMService(LLMConfig{})

	assert.Equal(t, DefaultLLMModel, s.ModelName())
	assert.Equal(t, DefaultBaseURL, s.baseURL)
}

func TestGenerate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response": "Seventh Schedule.", "done": true}`))
	}))
	defer server.Close()

	text, err := NewLLMService(LLMConfig{BaseURL: server.URL}).Generate(context.Background(), "prompt",
		driven.GenerateOptions{MaxTokens: 64, StopWords: []string{"\n\n"}})

	require.NoError(t, err)
	assert.Equal(t, "Seventh Schedule.", text)
	assert.False(t, got.Stream)
	require.NotNil(t, got.Options)
	assert.Equal(t, 64, got.Options.NumPredict)
	assert.Equal(t, []string{"\n\n"}, got.Options.Stop)
}

func TestGenerate_NoOptions(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response": "ok"}`))
	}))
	defer server.Close()

	_, err := NewLLMService(LLMConfig{BaseURL: server.URL}).Generate(context.Background(), "p", driven.GenerateOptions{})

	require.NoError(t, err)
	assert.Nil(t, got.Options)
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "model missing", status: http.StatusNotFound, body: `{"error": "model not found"}`},
		{name: "bad status", status: http.StatusInternalServerError, body: `{}`},
		{name: "garbage", status: http.StatusOK, body: `garbage`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewLLMService(LLMConfig{BaseURL: server.URL}).Generate(context.Background(), "q", driven.GenerateOptions{})

			assert.ErrorIs(t, err, domain.ErrGenerationService)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewLLMService(LLMConfig{BaseURL: "http://127.0.0.1:1"}).Generate(context.Background(), "q", driven.GenerateOptions{})
		assert.ErrorIs(t, err, domain.ErrGenerationService)
	})
}
