package services

import (
	"context"
	"time"

	"studentpipeline/ai-validator/internal/models"
)

// retryingOracle wraps a GeminiService so generation calls go through
// the bounded retry path. The async worker uses it: a queued job has no
// client waiting on the response, so a transient model error should
// cost a retry, not the whole job.
type retryingOracle struct {
	inner        GeminiService
	maxAttempts  int
	initialDelay time.Duration
}

func NewRetryingOracle(inner GeminiService, maxAttempts int, initialDelay time.Duration) GeminiService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &retryingOracle{
		inner:        inner,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
	}
}

// GenerateEmbedding implements GeminiService. Embeddings feed the
// best-effort guideline retrieval, which already degrades on failure,
// so they pass through unretried.
func (r *retryingOracle) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return r.inner.GenerateEmbedding(ctx, text)
}

// GenerateText implements GeminiService.
func (r *retryingOracle) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return r.inner.GenerateTextWithRetry(ctx, prompt, temperature, r.maxAttempts)
}

// GenerateWithPayloads implements GeminiService.
func (r *retryingOracle) GenerateWithPayloads(ctx context.Context, prompt string, payloads []models.Payload, temperature float32) (string, error) {
	return generateWithBackoff(ctx, r.maxAttempts, r.initialDelay, func() (string, error) {
		return r.inner.GenerateWithPayloads(ctx, prompt, payloads, temperature)
	})
}

// GenerateTextWithRetry implements GeminiService.
func (r *retryingOracle) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return r.inner.GenerateTextWithRetry(ctx, prompt, temperature, maxRetries)
}
