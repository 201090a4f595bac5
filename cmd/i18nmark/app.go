package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/ZaguanLabs/i18nmark/cache"
	"github.com/ZaguanLabs/i18nmark/catalog"
	"github.com/ZaguanLabs/i18nmark/config"
	"github.com/ZaguanLabs/i18nmark/locale"
	"github.com/ZaguanLabs/i18nmark/processor"
	"github.com/ZaguanLabs/i18nmark/provider"
	"github.com/ZaguanLabs/i18nmark/report"
	"github.com/ZaguanLabs/i18nmark/shell"
)

// app wires the configured components for one command invocation.
type app struct {
	cfg       *config.Config
	entries   []i18nmark.Entry
	annotator *i18nmark.Annotator
	cache     cache.Enumerable
	stats     func() cache.Stats
	close     func() error
}

func newApp(cfg *config.Config) (*app, error) {
	entries, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		entries: entries,
		close:   func() error { return nil },
	}

	switch {
	case cfg.Cache.RedisURL != "":
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: cfg.Cache.RedisURL, TTL: cfg.Cache.TTL})
		if err != nil {
			return nil, err
		}
		a.cache, a.stats, a.close = rc, rc.Stats, rc.Close
	case cfg.Cache.TTL > 0:
		mc := cache.NewInMemoryCache(cfg.Cache.TTL)
		a.cache, a.stats = mc, mc.Stats
	}

	opts := []i18nmark.AnnotatorOption{
		i18nmark.WithProcessor(processor.NewHTMLProcessor()),
		i18nmark.WithProductName(cfg.ProductName),
		i18nmark.WithLanguages(cfg.ReferenceLang, cfg.AllLanguages()),
	}
	if a.cache != nil {
		opts = append(opts, i18nmark.WithCache(a.cache))
	}
	if cfg.RenderShell {
		renderer, err := shell.New()
		if err != nil {
			return nil, err
		}
		opts = append(opts, i18nmark.WithRenderer(renderer))
	}
	a.annotator = i18nmark.NewAnnotator(entries, opts...)

	a.loadCacheFile()
	return a, nil
}

func loadCatalog(path string) ([]i18nmark.Entry, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	entries, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return entries, nil
}

// loadCacheFile seeds the cache from the snapshot file, if any.
func (a *app) loadCacheFile() {
	if a.cache == nil || a.cfg.Cache.File == "" {
		return
	}

	fingerprint := i18nmark.CatalogFingerprint(a.entries)
	res, err := cache.NewImporter(a.cache, cache.WithFingerprint(fingerprint)).ImportFromFile(a.cfg.Cache.File)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("path", a.cfg.Cache.File).Msg("cache snapshot not loaded")
		return
	}

	log.Debug().
		Str("path", a.cfg.Cache.File).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("loaded cache snapshot")
}

// saveCacheFile writes the cache snapshot, if configured.
func (a *app) saveCacheFile() {
	if a.cache == nil || a.cfg.Cache.File == "" {
		return
	}

	meta := map[string]string{
		"tool":    i18nmark.Name,
		"version": i18nmark.Version,
		"catalog": i18nmark.CatalogFingerprint(a.entries),
	}
	if err := cache.NewExporter(a.cache).ExportToFile(a.cfg.Cache.File, meta); err != nil {
		log.Warn().Err(err).Str("path", a.cfg.Cache.File).Msg("cache snapshot not saved")
	}
}

func (a *app) finish(rep *report.Report, start time.Time) {
	a.saveCacheFile()
	if a.stats != nil {
		stats := a.stats()
		rep.Cache = &stats
	}
	rep.SetElapsed(time.Since(start))
	if err := a.close(); err != nil {
		log.Warn().Err(err).Msg("closing cache")
	}
}

// pages resolves the page list from arguments or configuration.
func (a *app) pages(args []string) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = a.cfg.Pages
	}
	pages, err := config.ExpandPages(patterns)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages match %s", strings.Join(patterns, ", "))
	}
	return pages, nil
}

// localeOptions controls buildLocales.
type localeOptions struct {
	inventory map[string]string // Keys seen on pages; nil skips the reference update
	prefixes  []string          // Page prefixes of annotated pages
	write     bool
}

// buildLocales builds every language table and returns the page translations.
func (a *app) buildLocales(ctx context.Context, rep *report.Report, opts localeOptions) (i18nmark.Translations, error) {
	dir := a.cfg.LocalesDir
	refLang := a.cfg.ReferenceLang

	ref, status, err := locale.LoadReference(dir, refLang)
	if err != nil {
		return nil, err
	}
	rep.RefStatus = status

	if opts.inventory != nil {
		var update *locale.ReferenceUpdate
		ref, update = locale.UpdateReference(ref, opts.inventory)
		rep.Reference = update
	}

	prefixes := mergeSorted(opts.prefixes, pagePrefixes(a.entries, ref.Keys()))

	sources, err := locale.ReadSources(dir, a.cfg.TargetLanguages())
	if err != nil {
		return nil, err
	}

	tables, build := locale.Build(ref, sources,
		locale.WithReferenceLang(refLang),
		locale.WithKnownTranslations(func(lang string) map[string]string {
			return catalog.KnownTranslations(a.entries, lang, prefixes...)
		}),
	)
	rep.Locales = build

	if a.cfg.Suggest.Enabled {
		err := locale.Suggest(ctx, a.suggester(), ref, tables, build, locale.SuggestOptions{
			SuggestOptions: i18nmark.SuggestOptions{Cache: a.cache, BatchSize: a.cfg.Suggest.BatchSize},
			Context:        a.cfg.Suggest.Context,
		})
		if err != nil {
			rep.SuggestError = err.Error()
		}
	}

	if opts.write {
		if err := locale.WriteFile(locale.Path(dir, refLang), ref); err != nil {
			return nil, err
		}
		if err := locale.WriteDir(dir, tables); err != nil {
			return nil, err
		}
		log.Info().Str("dir", dir).Int("languages", len(tables)+1).Msg("locale tables written")
	}

	translations := i18nmark.Translations{refLang: ref.Map()}
	for lang, t := range tables {
		translations[lang] = t.Map()
	}
	return translations, nil
}

func (a *app) suggester() i18nmark.Suggester {
	s := provider.NewOpenAISuggester(provider.OpenAIConfig{
		APIKey:  a.cfg.SuggestAPIKey(),
		Model:   a.cfg.Suggest.Model,
		BaseURL: a.cfg.Suggest.BaseURL,
	})
	limited := i18nmark.NewRateLimitedSuggester(s, i18nmark.RateLimitConfig{
		RequestsPerMinute: a.cfg.Suggest.RequestsPerMinute,
	})
	retry := i18nmark.DefaultRetryConfig()
	retry.MaxRetries = a.cfg.Suggest.MaxRetries
	return i18nmark.NewRetryableSuggester(limited, retry)
}

// pagePrefixes recovers page prefixes from keys of the form <prefix>_<key>
// where <key> belongs to a page-scoped catalog entry.
func pagePrefixes(entries []i18nmark.Entry, keys []string) []string {
	set := map[string]bool{}
	for _, e := range entries {
		if !e.PageScoped {
			continue
		}
		for _, k := range keys {
			if prefix, ok := strings.CutSuffix(k, "_"+e.Key); ok && prefix != "" {
				set[prefix] = true
			}
		}
	}

	return sortedSet(set)
}

// annotatedPrefixes returns the page prefixes of all annotated pages.
func annotatedPrefixes(results []*i18nmark.FileResult) []string {
	set := map[string]bool{}
	for _, r := range results {
		if r.Page != nil && r.Page.Prefix != "" {
			set[r.Page.Prefix] = true
		}
	}
	return sortedSet(set)
}

func mergeSorted(a, b []string) []string {
	set := map[string]bool{}
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		set[s] = true
	}
	return sortedSet(set)
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
