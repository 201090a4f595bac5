package i18nmark

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryConfig holds configuration for retrying suggestion batches.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries, zero for no cap
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// delay returns the wait before the next attempt. A longer wait requested
// by the backend replaces the exponential backoff; MaxDelay caps both.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	d := c.BaseDelay * time.Duration(1<<attempt)

	var providerErr *ProviderError
	if errors.As(err, &providerErr) && providerErr.RetryAfter > d {
		d = providerErr.RetryAfter
	}
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// IsRetryable reports whether a suggestion batch that failed with err may be sent again.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Retryable
}

// RetryableSuggester wraps a Suggester with retry logic.
type RetryableSuggester struct {
	next   Suggester
	config RetryConfig
}

// NewRetryableSuggester creates a suggester that retries transient failures.
func NewRetryableSuggester(next Suggester, cfg RetryConfig) *RetryableSuggester {
	return &RetryableSuggester{
		next:   next,
		config: cfg,
	}
}

// Suggest sends the batch, retrying transient provider failures with backoff
// until the attempts run out or ctx ends.
func (s *RetryableSuggester) Suggest(ctx context.Context, req SuggestRequest) ([]string, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := s.next.Suggest(ctx, req)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil || !IsRetryable(err) || attempt >= s.config.MaxRetries {
			return nil, err
		}

		delay := s.config.delay(attempt, err)
		log.Debug().
			Err(err).
			Str("lang", req.TargetLang).
			Int("batch", len(req.Texts)).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("retrying suggestion batch")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
