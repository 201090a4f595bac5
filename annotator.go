package i18nmark

import (
	"encoding/json"
	"strings"
	"unicode"
)

// DefaultProductName is the product prefix stripped from page titles.
const DefaultProductName = "EV Charging Platform"

// DefaultPageName is used when a page has no recognizable <title>.
const DefaultPageName = "Admin Dashboard"

// Annotator is the main annotation engine.
type Annotator struct {
	entries     []Entry
	fingerprint string
	processor   MarkupProcessor
	renderer    PageRenderer
	cache       AnnotationCache
	productName string
	refLang     string
	languages   []string
}

// MarkupProcessor parses markup and applies catalog entries to it.
type MarkupProcessor interface {
	// Annotate attaches keys from entries to a body fragment.
	Annotate(fragment string, entries []Entry, pagePrefix string) (*AnnotateResult, error)
	// ExtractDocument locates the <title> and <body> of a full document.
	ExtractDocument(document string) (*Document, error)
	ContentType() string
}

// PageRenderer renders a complete page around an annotated body.
type PageRenderer interface {
	Render(page PageData) (string, error)
}

// AnnotationCache is the interface for annotation caching.
type AnnotationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Document is a full HTML page split around its body content.
type Document struct {
	Title string // Text of the <title> element, trimmed
	Head  string // Everything up to and including the <body ...> start tag
	Body  string // Content between the body tags
	Tail  string // Everything from the </body> end tag on
}

// Splice returns the document with its body content replaced.
func (d *Document) Splice(body string) string {
	return d.Head + body + d.Tail
}

// Translations maps language code to key to localized string.
type Translations map[string]map[string]string

// WithPageTitle returns a copy where every language maps PageTitleKey to name.
// The page title is deliberately the same literal string in all languages.
func (t Translations) WithPageTitle(name string) Translations {
	out := make(Translations, len(t))
	for lang, table := range t {
		cp := make(map[string]string, len(table)+1)
		for k, v := range table {
			cp[k] = v
		}
		cp[PageTitleKey] = name
		out[lang] = cp
	}
	return out
}

// PageData is the input of a PageRenderer.
type PageData struct {
	Title        string // Full <title> text
	PageName     string
	Body         string
	Lang         string // Initial document language
	Dir          Direction
	Languages    []Language
	Translations Translations
}

// AnnotatorOption is a functional option for configuring the Annotator.
type AnnotatorOption func(*Annotator)

// WithProcessor sets the markup processor.
func WithProcessor(processor MarkupProcessor) AnnotatorOption {
	return func(a *Annotator) {
		a.processor = processor
	}
}

// WithRenderer sets the page shell renderer. Without one, processed pages
// keep their original markup outside the body.
func WithRenderer(renderer PageRenderer) AnnotatorOption {
	return func(a *Annotator) {
		a.renderer = renderer
	}
}

// WithCache sets the annotation cache.
func WithCache(cache AnnotationCache) AnnotatorOption {
	return func(a *Annotator) {
		a.cache = cache
	}
}

// WithProductName sets the product name stripped from "<Product> - <Page>" titles.
func WithProductName(name string) AnnotatorOption {
	return func(a *Annotator) {
		a.productName = name
	}
}

// WithLanguages sets the reference language and the full list of page languages.
func WithLanguages(reference string, languages []string) AnnotatorOption {
	return func(a *Annotator) {
		a.refLang = reference
		a.languages = languages
	}
}

// NewAnnotator creates a new Annotator over the given catalog entries.
func NewAnnotator(entries []Entry, opts ...AnnotatorOption) *Annotator {
	a := &Annotator{
		entries:     entries,
		fingerprint: CatalogFingerprint(entries),
		productName: DefaultProductName,
		refLang:     "en",
		languages:   []string{"en", "ar", "fa"},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Annotate attaches translation keys to a body fragment.
// Running it on its own output returns that output unchanged.
func (a *Annotator) Annotate(markup, pagePrefix string) (*AnnotateResult, error) {
	if a.processor == nil {
		return nil, &ProcessorError{
			Message:     "no processor registered",
			ContentType: "html",
		}
	}

	cacheKey := AnnotationCacheKey(HashContent(markup), a.fingerprint, pagePrefix)
	if a.cache != nil {
		if cached, ok := a.cache.Get(cacheKey); ok {
			var result AnnotateResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				result.Cached = true
				return &result, nil
			}
		}
	}

	result, err := a.processor.Annotate(markup, a.entries, pagePrefix)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = a.cache.Set(cacheKey, string(data)) // Ignore cache set errors
		}
	}

	return result, nil
}

// ProcessPage annotates the body of a full HTML document.
// The returned result is not rendered yet; see Render.
func (a *Annotator) ProcessPage(document string) (*PageResult, error) {
	if a.processor == nil {
		return nil, &ProcessorError{
			Message:     "no processor registered",
			ContentType: "html",
		}
	}

	doc, err := a.processor.ExtractDocument(document)
	if err != nil {
		return nil, err
	}

	pageName := a.PageName(doc.Title)
	prefix := PagePrefix(pageName)

	annotation, err := a.Annotate(doc.Body, prefix)
	if err != nil {
		return nil, err
	}

	return &PageResult{
		PageName:   pageName,
		Prefix:     prefix,
		Annotation: annotation,
		Document:   doc,
	}, nil
}

// Render produces the final document for a processed page. With a renderer
// the page is rebuilt from the shared shell; otherwise the annotated body is
// spliced back into the original markup.
func (a *Annotator) Render(page *PageResult, translations Translations) (string, error) {
	if a.renderer == nil {
		page.Content = page.Document.Splice(page.Annotation.Content)
		return page.Content, nil
	}

	title := page.PageName
	if a.productName != "" {
		title = a.productName + " - " + page.PageName
	}

	content, err := a.renderer.Render(PageData{
		Title:        title,
		PageName:     page.PageName,
		Body:         page.Annotation.Content,
		Lang:         a.refLang,
		Dir:          GetDirection(a.refLang),
		Languages:    DescribeLanguages(a.languages),
		Translations: translations.WithPageTitle(page.PageName),
	})
	if err != nil {
		return "", err
	}

	page.Content = content
	return content, nil
}

// PageName strips the "<Product> - " prefix from a page title.
func (a *Annotator) PageName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultPageName
	}
	if a.productName != "" {
		if rest, ok := strings.CutPrefix(title, a.productName+" - "); ok {
			title = strings.TrimSpace(rest)
		}
	}
	if title == "" {
		return DefaultPageName
	}
	return title
}

// Entries returns the catalog entries used by the annotator.
func (a *Annotator) Entries() []Entry {
	return a.entries
}

// ReferenceLang returns the reference language.
func (a *Annotator) ReferenceLang() string {
	return a.refLang
}

// Languages returns the page languages.
func (a *Annotator) Languages() []string {
	return a.languages
}

// PagePrefix derives the snake_case page prefix from a page name
// (e.g., "Charging Sessions" → "charging_sessions").
func PagePrefix(pageName string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(pageName) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
