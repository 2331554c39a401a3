package services

import (
	"context"
	"errors"
	"time"

	"studentpipeline/ai-validator/internal/models"
)

// fakeOracle scripts the model replies for deterministic validator tests.
type fakeOracle struct {
	reply func(prompt string) (string, error)
}

func (f *fakeOracle) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embeddings not available in tests")
}

func (f *fakeOracle) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return f.reply(prompt)
}

func (f *fakeOracle) GenerateWithPayloads(ctx context.Context, prompt string, payloads []models.Payload, temperature float32) (string, error) {
	return f.reply(prompt)
}

func (f *fakeOracle) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return f.reply(prompt)
}

func staticOracle(response string) *fakeOracle {
	return &fakeOracle{reply: func(string) (string, error) {
		return response, nil
	}}
}

func failingOracle(err error) *fakeOracle {
	return &fakeOracle{reply: func(string) (string, error) {
		return "", err
	}}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
