package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/googleai"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure ThrottledEmbedding implements the interface.
var _ driven.EmbeddingService = (*ThrottledEmbedding)(nil)

// Throttle defaults.
const (
	// DefaultRateLimitBackoff is how long to pause after a 429 response.
	DefaultRateLimitBackoff = 60 * time.Second

	// DefaultRateLimitRetries is how many times a rate-limited batch is retried.
	DefaultRateLimitRetries = 3
)

// ThrottledEmbedding splits large batches and spaces batch requests with a
// token bucket. A rate-limited batch pauses the whole client, then retries.
type ThrottledEmbedding struct {
	driven.EmbeddingService

	batchSize int
	limiter   *rate.Limiter
	backoff   time.Duration
	retries   int

	mu      sync.Mutex
	retryAt time.Time
}

// ThrottleOption configures a ThrottledEmbedding.
type ThrottleOption func(*ThrottledEmbedding)

// WithBackoff sets the pause after a rate-limit response.
func WithBackoff(d time.Duration) ThrottleOption {
	return func(t *ThrottledEmbedding) {
		if d >= 0 {
			t.backoff = d
		}
	}
}

// WithRetries sets how many times a rate-limited batch is retried.
func WithRetries(n int) ThrottleOption {
	return func(t *ThrottledEmbedding) {
		if n >= 0 {
			t.retries = n
		}
	}
}

// NewThrottledEmbedding wraps svc. batchSize ≤ 0 sends each EmbedBatch
// call as one request; rps ≤ 0 disables spacing.
func NewThrottledEmbedding(svc driven.EmbeddingService, batchSize int, rps float64, opts ...ThrottleOption) *ThrottledEmbedding {
	t := &ThrottledEmbedding{
		EmbeddingService: svc,
		batchSize:        batchSize,
		backoff:          DefaultRateLimitBackoff,
		retries:          DefaultRateLimitRetries,
	}
	if rps > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// EmbedBatch embeds texts in sub-batches of at most batchSize, preserving order.
func (t *ThrottledEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	size := t.batchSize
	if size <= 0 || size > len(texts) {
		size = len(texts)
	}
	if size == 0 {
		return [][]float32{}, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))

		vectors, err := t.embedWithRetry(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("%w: batch %d-%d returned %d vectors",
				domain.ErrEmbeddingService, start, end, len(vectors))
		}
		out = append(out, vectors...)
		logger.Debug("embedded %d/%d chunks", end, len(texts))
	}
	return out, nil
}

func (t *ThrottledEmbedding) embedWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	for attempt := 0; ; attempt++ {
		if err := t.wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
		}

		vectors, err := t.EmbeddingService.EmbedBatch(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		if !errors.Is(err, googleai.ErrRateLimited) || attempt >= t.retries {
			return nil, err
		}

		logger.Warn("embedding rate limited, pausing %s (retry %d/%d)", t.backoff, attempt+1, t.retries)
		t.recordRateLimit()
	}
}

// wait honours any rate-limit pause, then takes a token.
func (t *ThrottledEmbedding) wait(ctx context.Context) error {
	t.mu.Lock()
	retryAt := t.retryAt
	t.mu.Unlock()

	if delay := time.Until(retryAt); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if t.limiter == nil {
		return ctx.Err()
	}
	return t.limiter.Wait(ctx)
}

func (t *ThrottledEmbedding) recordRateLimit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.retryAt = time.Now().Add(t.backoff)
}
