// Package i18nmark attaches translation keys to static HTML admin pages and
// keeps their per-language locale tables complete.
//
// The Annotator walks the body of a page, finds literal UI strings from a
// catalog (navigation labels, buttons, table headers, status badges, card
// titles, placeholders, pagination text) and marks each one with a
// data-i18n attribute without touching the visible text. The locale package
// then builds one table per language from the English reference table,
// repairing files that earlier merges left as concatenated JSON objects.
//
// Basic usage:
//
//	import (
//	    "github.com/ZaguanLabs/i18nmark"
//	    "github.com/ZaguanLabs/i18nmark/cache"
//	    "github.com/ZaguanLabs/i18nmark/catalog"
//	    "github.com/ZaguanLabs/i18nmark/processor"
//	)
//
//	func main() {
//	    a := i18nmark.NewAnnotator(catalog.Default(),
//	        i18nmark.WithCache(cache.NewInMemoryCache(3600)),
//	        i18nmark.WithProcessor(processor.NewHTMLProcessor()),
//	    )
//
//	    result, err := a.Annotate(`<span id="nav-dashboard">Dashboard</span>`, "dashboard")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Content) // <span id="nav-dashboard" data-i18n="dashboard">Dashboard</span>
//	}
package i18nmark
