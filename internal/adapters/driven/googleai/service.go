// Package googleai builds clients for the Gemini API, shared by the
// Gemini embedding and generation adapters.
package googleai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// Config holds connection settings for the Gemini API.
type Config struct {
	// APIKey is the Google AI Studio key (required).
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for a proxy.
	BaseURL string
}

// Common Gemini API errors.
var (
	// ErrUnauthorized indicates an invalid or revoked API key.
	ErrUnauthorized = errors.New("gemini: unauthorised (invalid API key)")

	// ErrRateLimited indicates the request quota was exceeded.
	ErrRateLimited = errors.New("gemini: rate limit exceeded")

	// ErrModelNotFound indicates the model name is unknown.
	ErrModelNotFound = errors.New("gemini: model not found")
)

// NewClient creates a Gemini API client authenticated with an API key.
func NewClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", domain.ErrAINotConfigured)
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/"
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

// ModelPath returns the resource name for model, adding the "models/"
// prefix when missing.
func ModelPath(model string) string {
	if strings.HasPrefix(model, "models/") || strings.HasPrefix(model, "tunedModels/") {
		return model
	}
	return "models/" + model
}

// Classify maps an API error onto a sentinel where one applies.
// Other errors are returned unchanged.
func Classify(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err
	}

	switch {
	case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden,
		apiErr.Status == "UNAUTHENTICATED", apiErr.Status == "PERMISSION_DENIED":
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key"):
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	case apiErr.Code == http.StatusTooManyRequests, apiErr.Status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	case apiErr.Code == http.StatusNotFound, apiErr.Status == "NOT_FOUND":
		return fmt.Errorf("%w: %s", ErrModelNotFound, apiErr.Message)
	}
	return err
}

// asAPIError accepts the API error by value or by pointer.
func asAPIError(err error) (genai.APIError, bool) {
	var byValue genai.APIError
	if errors.As(err, &byValue) {
		return byValue, true
	}
	var byPointer *genai.APIError
	if errors.As(err, &byPointer) && byPointer != nil {
		return *byPointer, true
	}
	return genai.APIError{}, false
}
