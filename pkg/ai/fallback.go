package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// CompleteWithFallback tries each model identifier in order and returns the
// first successful completion. The returned error wraps the last failure once
// the chain is exhausted.
func CompleteWithFallback(ctx context.Context, client Client, models []string, messages []Message, jsonObject bool, logger zerolog.Logger) (string, error) {
	if len(models) == 0 {
		return "", fmt.Errorf("no models in fallback chain")
	}

	var lastErr error
	for _, model := range models {
		content, err := client.Complete(ctx, model, messages, jsonObject)
		if err == nil {
			return content, nil
		}
		logger.Warn().Err(err).Str("model", model).Msg("model failed, trying next in chain")
		lastErr = err
	}

	return "", fmt.Errorf("all models in chain failed: %w", lastErr)
}
