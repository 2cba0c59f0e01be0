package googleai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

func TestNewClient(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewClient(context.Background(), Config{})
		assert.ErrorIs(t, err, domain.ErrAINotConfigured)
	})

	t.Run("with custom endpoint", func(t *testing.T) {
		client, err := NewClient(context.Background(), Config{APIKey: "key", BaseURL: "http://localhost:9999"})
		require.NoError(t, err)
		assert.NotNil(t, client.Models)
	})
}

func TestModelPath(t *testing.T) {
	assert.Equal(t, "models/gemini-1.5-flash", ModelPath("gemini-1.5-flash"))
	assert.Equal(t, "models/embedding-001", ModelPath("models/embedding-001"))
	assert.Equal(t, "tunedModels/mine", ModelPath("tunedModels/mine"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unauthorised", err: genai.APIError{Code: http.StatusUnauthorized}, want: ErrUnauthorized},
		{name: "forbidden", err: genai.APIError{Code: http.StatusForbidden}, want: ErrUnauthorized},
		{name: "bad api key", err: genai.APIError{Code: http.StatusBadRequest, Message: "API key not valid"}, want: ErrUnauthorized},
		{name: "rate limited", err: genai.APIError{Code: http.StatusTooManyRequests}, want: ErrRateLimited},
		{name: "resource exhausted", err: genai.APIError{Status: "RESOURCE_EXHAUSTED"}, want: ErrRateLimited},
		{name: "rate limited pointer", err: &genai.APIError{Code: http.StatusTooManyRequests}, want: ErrRateLimited},
		{name: "wrapped", err: fmt.Errorf("call: %w", genai.APIError{Code: http.StatusTooManyRequests}), want: ErrRateLimited},
		{name: "unknown model", err: genai.APIError{Code: http.StatusNotFound}, want: ErrModelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Classify(tt.err), tt.want)
		})
	}

	t.Run("other errors unchanged", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, Classify(plain))

		server := genai.APIError{Code: http.StatusInternalServerError}
		assert.Equal(t, error(server), Classify(server))
	})
}
