package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentpipeline/ai-validator/internal/models"
)

// flakyOracle fails a scripted number of times before succeeding, and
// records how many attempts each entry point received.
type flakyOracle struct {
	failuresLeft     int
	textCalls        int
	payloadCalls     int
	retryMaxSeen     int
	retryInvocations int
}

func (f *flakyOracle) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1}, nil
}

func (f *flakyOracle) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.textCalls++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return "", errors.New("model overloaded")
	}
	return "ok", nil
}

func (f *flakyOracle) GenerateWithPayloads(ctx context.Context, prompt string, payloads []models.Payload, temperature float32) (string, error) {
	f.payloadCalls++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return "", errors.New("model overloaded")
	}
	return "ok", nil
}

func (f *flakyOracle) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	f.retryInvocations++
	f.retryMaxSeen = maxRetries
	return generateWithBackoff(ctx, maxRetries, 0, func() (string, error) {
		return f.GenerateText(ctx, prompt, temperature)
	})
}

func TestGenerateWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		result, err := generateWithBackoff(ctx, 3, 0, func() (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("model overloaded")
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		calls := 0
		_, err := generateWithBackoff(ctx, 3, 0, func() (string, error) {
			calls++
			return "", errors.New("model overloaded")
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed after 3 attempts")
		assert.Equal(t, 3, calls)
	})

	t.Run("first success needs no retry", func(t *testing.T) {
		calls := 0
		result, err := generateWithBackoff(ctx, 3, 0, func() (string, error) {
			calls++
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	})

	t.Run("attempt budget below one still tries once", func(t *testing.T) {
		calls := 0
		_, err := generateWithBackoff(ctx, 0, 0, func() (string, error) {
			calls++
			return "", errors.New("model overloaded")
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		_, err := generateWithBackoff(cancelled, 3, 0, func() (string, error) {
			calls++
			return "", errors.New("model overloaded")
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "context cancelled")
		assert.Equal(t, 1, calls)
	})
}

func TestRetryingOracle(t *testing.T) {
	ctx := context.Background()

	t.Run("text generation routes through the bounded retry", func(t *testing.T) {
		inner := &flakyOracle{failuresLeft: 1}
		oracle := NewRetryingOracle(inner, 4, 0)

		result, err := oracle.GenerateText(ctx, "prompt", 0.2)

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, inner.retryInvocations)
		assert.Equal(t, 4, inner.retryMaxSeen)
		assert.Equal(t, 2, inner.textCalls)
	})

	t.Run("payload generation retries transient failures", func(t *testing.T) {
		inner := &flakyOracle{failuresLeft: 2}
		oracle := NewRetryingOracle(inner, 3, 0)

		result, err := oracle.GenerateWithPayloads(ctx, "prompt", []models.Payload{{MIMEType: "application/pdf"}}, 0.2)

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, inner.payloadCalls)
	})

	t.Run("payload generation gives up after the attempt budget", func(t *testing.T) {
		inner := &flakyOracle{failuresLeft: 10}
		oracle := NewRetryingOracle(inner, 2, 0)

		_, err := oracle.GenerateWithPayloads(ctx, "prompt", []models.Payload{{MIMEType: "application/pdf"}}, 0.2)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed after 2 attempts")
		assert.Equal(t, 2, inner.payloadCalls)
	})

	t.Run("embeddings pass through unretried", func(t *testing.T) {
		inner := &flakyOracle{}
		oracle := NewRetryingOracle(inner, 3, 0)

		embedding, err := oracle.GenerateEmbedding(ctx, "query")

		require.NoError(t, err)
		assert.Equal(t, []float32{0.1}, embedding)
	})

	t.Run("attempt budget below one is clamped", func(t *testing.T) {
		inner := &flakyOracle{}
		oracle := NewRetryingOracle(inner, 0, 0)

		result, err := oracle.GenerateText(ctx, "prompt", 0.2)

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, inner.retryMaxSeen)
	})
}
