package i18nmark

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures the rate limiter. Zero values fall back to
// 60 requests per minute with a burst of one minute's worth.
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// NewRateLimiter creates a token bucket limiter refilled at the configured
// requests per minute.
func NewRateLimiter(cfg RateLimitConfig) *rate.Limiter {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rpm
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// RateLimitedSuggester wraps a Suggester with rate limiting.
type RateLimitedSuggester struct {
	next    Suggester
	limiter *rate.Limiter
}

// NewRateLimitedSuggester returns a Suggester that waits for a token before every batch.
func NewRateLimitedSuggester(next Suggester, cfg RateLimitConfig) *RateLimitedSuggester {
	return &RateLimitedSuggester{
		next:    next,
		limiter: NewRateLimiter(cfg),
	}
}

// Suggest waits for a token, then forwards the batch.
func (s *RateLimitedSuggester) Suggest(ctx context.Context, req SuggestRequest) ([]string, error) {
	if s.limiter.Tokens() < 1 {
		log.Debug().
			Str("lang", req.TargetLang).
			Int("batch", len(req.Texts)).
			Msg("waiting for suggestion rate limit")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{
			Message:   "rate limit wait cancelled",
			Cause:     err,
			Retryable: false,
		}
	}

	return s.next.Suggest(ctx, req)
}
