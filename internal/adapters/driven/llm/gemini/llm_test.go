package gemini

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

func newServer(t *testing.T, status int, body string, got *map[string]any) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func newService(t *testing.T, url string) *LLMService {
	t.Helper()
	s, err := NewLLMService(context.Background(), Config{APIKey: "test-key", BaseURL: url})
	require.NoError(t, err)
	return s
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrAINotConfigured)

	s, err := NewLLMService(context.Background(), Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "models/gemini-1.5-flash", s.ModelName())
	assert.NoError(t, s.Close())
}

func TestGenerate(t *testing.T) {
	var got map[string]any
	url := newServer(t, http.StatusOK, `{"candidates": [{"content": {"role": "model", "parts": [
		{"text": "Article 21 protects "}, {"text": "life and liberty."}
	]}}]}`, &got)

	text, err := newService(t, url).Generate(context.Background(), "What is Article 21?",
		driven.GenerateOptions{MaxTokens: 256, StopWords: []string{"END"}})

	require.NoError(t, err)
	assert.Equal(t, "Article 21 protects life and liberty.", text)

	contents := got["contents"].([]any)
	part := contents[0].(map[string]any)["parts"].([]any)[0].(map[string]any)
	assert.Equal(t, "What is Article 21?", part["text"])
	config := got["generationConfig"].(map[string]any)
	assert.EqualValues(t, 256, config["maxOutputTokens"])
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "invalid request", status: http.StatusBadRequest, body: `{"error": {"code": 400, "message": "invalid argument", "status": "INVALID_ARGUMENT"}}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates": []}`},
		{name: "blocked", status: http.StatusOK, body: `{"promptFeedback": {"blockReason": "SAFETY"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := newServer(t, tt.status, tt.body, nil)

			_, err := newService(t, url).Generate(context.Background(), "q", driven.GenerateOptions{})

			assert.ErrorIs(t, err, domain.ErrGenerationService)
		})
	}
}
