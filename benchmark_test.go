package i18nmark_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/ZaguanLabs/i18nmark/cache"
	"github.com/ZaguanLabs/i18nmark/catalog"
	"github.com/ZaguanLabs/i18nmark/locale"
	"github.com/ZaguanLabs/i18nmark/processor"
	"github.com/ZaguanLabs/i18nmark/provider"
)

// Benchmarks for performance validation

func BenchmarkHashContent(b *testing.B) {
	content := strings.Repeat(`<nav><a href="#">Dashboard</a></nav>`, 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		i18nmark.HashContent(content)
	}
}

func BenchmarkCatalogFingerprint(b *testing.B) {
	entries := catalog.Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		i18nmark.CatalogFingerprint(entries)
	}
}

func BenchmarkInMemoryCache_Get(b *testing.B) {
	c := cache.NewInMemoryCache(3600)
	c.Set("test-key", "test-value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("test-key")
	}
}

func BenchmarkHTMLProcessor_Annotate_Small(b *testing.B) {
	proc := processor.NewHTMLProcessor()
	entries := catalog.Default()
	html := `<nav><a href="#">Dashboard</a><a href="#">Stations</a></nav>`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		proc.Annotate(html, entries, "")
	}
}

func BenchmarkAnnotator_ProcessPage(b *testing.B) {
	a := i18nmark.NewAnnotator(catalog.Default(), i18nmark.WithProcessor(processor.NewHTMLProcessor()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.ProcessPage(sessionsPage)
	}
}

func BenchmarkAnnotator_ProcessPage_Cached(b *testing.B) {
	a := i18nmark.NewAnnotator(catalog.Default(),
		i18nmark.WithProcessor(processor.NewHTMLProcessor()),
		i18nmark.WithCache(cache.NewInMemoryCache(3600)),
	)

	// Prime the cache
	a.ProcessPage(sessionsPage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.ProcessPage(sessionsPage)
	}
}

func BenchmarkLocaleRepair(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString(`{"dashboard":"داشبورد","stations":"ایستگاه‌ها","save":"ذخیره"}`)
	}
	data := []byte(sb.String())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		locale.Repair(data)
	}
}

func BenchmarkLocaleBuild(b *testing.B) {
	entries := catalog.Default()
	ref := locale.FromMap(catalog.Inventory(entries))
	sources := map[string]locale.Source{"ar": {}, "fa": {}}
	known := func(lang string) map[string]string {
		return catalog.KnownTranslations(entries, lang)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		locale.Build(ref, sources, locale.WithKnownTranslations(known))
	}
}

func BenchmarkCollectSuggestions_Cached(b *testing.B) {
	s := provider.NewMockSuggester()
	opts := i18nmark.SuggestOptions{Cache: cache.NewInMemoryCache(3600)}
	req := i18nmark.SuggestRequest{
		Keys:       []string{"save", "cancel"},
		Texts:      []string{"Save", "Cancel"},
		SourceLang: "en",
		TargetLang: "fa",
	}

	// Prime the cache
	i18nmark.CollectSuggestions(context.Background(), s, req, opts)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		i18nmark.CollectSuggestions(context.Background(), s, req, opts)
	}
}

func BenchmarkGetDirection(b *testing.B) {
	langs := []string{"en", "ar", "fa", "ar_SA", "fa-IR"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		i18nmark.GetDirection(langs[i%len(langs)])
	}
}
