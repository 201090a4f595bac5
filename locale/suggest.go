package locale

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ZaguanLabs/i18nmark"
)

// maxGlossary bounds the established translations sent with each request.
const maxGlossary = 60

// SuggestOptions configures Suggest.
type SuggestOptions struct {
	i18nmark.SuggestOptions
	Context string // Product description passed to the suggester
}

// Suggest records suggested translations for the untranslated keys of every
// language in report. The built tables are only read: untranslated keys keep
// the reference fallback until a translator accepts a suggestion.
// Failures are per language; the joined error lists every language that failed.
func Suggest(ctx context.Context, s i18nmark.Suggester, reference *Table, tables map[string]*Table, report *BuildReport, opts SuggestOptions) error {
	var errs []error

	for _, lr := range report.Languages {
		if lr.Lang == report.Reference || len(lr.Untranslated) == 0 {
			continue
		}

		texts := make([]string, len(lr.Untranslated))
		for i, key := range lr.Untranslated {
			texts[i], _ = reference.Get(key)
		}

		req := i18nmark.SuggestRequest{
			Keys:       lr.Untranslated,
			Texts:      texts,
			SourceLang: report.Reference,
			TargetLang: lr.Lang,
			Context:    opts.Context,
			Glossary:   glossary(reference, tables[lr.Lang]),
		}

		suggestions, err := i18nmark.CollectSuggestions(ctx, s, req, opts.SuggestOptions)
		if len(suggestions) > 0 {
			lr.Suggestions = suggestions
		}
		if err != nil {
			log.Warn().Err(err).Str("lang", lr.Lang).Msg("suggestions failed")
			errs = append(errs, fmt.Errorf("suggest %s: %w", lr.Lang, err))
			continue
		}

		log.Info().
			Str("lang", lr.Lang).
			Int("suggested", len(suggestions)).
			Msg("collected suggestions")
	}

	return errors.Join(errs...)
}

// glossary maps reference strings to their established translation in t.
// Keys still holding the reference string are skipped.
func glossary(reference, t *Table) map[string]string {
	out := map[string]string{}
	if t == nil {
		return out
	}
	for _, key := range reference.Keys() {
		if len(out) >= maxGlossary {
			break
		}
		src, _ := reference.Get(key)
		dst, ok := t.Get(key)
		if !ok || dst == "" || dst == src {
			continue
		}
		out[src] = dst
	}
	return out
}
