package i18nmark

import (
	"context"

	"github.com/rs/zerolog/log"
)

// DefaultSuggestBatchSize is the number of strings sent per suggestion request.
const DefaultSuggestBatchSize = 40

// Suggester proposes translations for reference strings.
// Implementations return exactly one suggestion per input text, in order.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestRequest) ([]string, error)
}

// SuggestRequest is one batch of reference strings to translate.
type SuggestRequest struct {
	Keys       []string          // Translation keys, parallel to Texts
	Texts      []string          // Reference strings
	SourceLang string            // Reference language code
	TargetLang string            // Target language code
	Context    string            // Short product description for the model
	Glossary   map[string]string // Established translations, reference text → target text
}

// SuggestOptions configures CollectSuggestions.
type SuggestOptions struct {
	Cache     AnnotationCache // Optional; suggestions are cached per text and language
	BatchSize int             // Defaults to DefaultSuggestBatchSize
}

// CollectSuggestions asks s for translations of the given keys and returns them
// keyed by translation key. Cached suggestions are reused and only the
// remaining texts are sent, in batches.
func CollectSuggestions(ctx context.Context, s Suggester, req SuggestRequest, opts SuggestOptions) (map[string]string, error) {
	out := make(map[string]string, len(req.Keys))
	if len(req.Keys) == 0 {
		return out, nil
	}
	if len(req.Keys) != len(req.Texts) {
		return nil, &CountMismatchError{Expected: len(req.Keys), Got: len(req.Texts)}
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultSuggestBatchSize
	}

	var pendingKeys, pendingTexts []string
	for i, key := range req.Keys {
		text := req.Texts[i]
		if opts.Cache != nil {
			if cached, ok := opts.Cache.Get(SuggestionCacheKey(HashText(text), req.TargetLang)); ok {
				out[key] = cached
				continue
			}
		}
		pendingKeys = append(pendingKeys, key)
		pendingTexts = append(pendingTexts, text)
	}

	log.Debug().
		Str("lang", req.TargetLang).
		Int("cached", len(out)).
		Int("pending", len(pendingKeys)).
		Msg("collecting suggestions")

	for start := 0; start < len(pendingKeys); start += batchSize {
		end := min(start+batchSize, len(pendingKeys))

		batch := req
		batch.Keys = pendingKeys[start:end]
		batch.Texts = pendingTexts[start:end]

		suggestions, err := s.Suggest(ctx, batch)
		if err != nil {
			return out, err
		}
		if len(suggestions) != len(batch.Texts) {
			return out, &CountMismatchError{Expected: len(batch.Texts), Got: len(suggestions)}
		}

		for i, suggestion := range suggestions {
			out[batch.Keys[i]] = suggestion
			if opts.Cache != nil {
				_ = opts.Cache.Set(SuggestionCacheKey(HashText(batch.Texts[i]), req.TargetLang), suggestion)
			}
		}
	}

	return out, nil
}
