// Package shell renders annotated page bodies inside the shared admin page shell.
package shell

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"github.com/ZaguanLabs/i18nmark"
)

// DefaultStorageKey is the localStorage key holding the selected language.
const DefaultStorageKey = "ev-admin-language"

//go:embed page.html.tmpl
var defaultTemplate string

// Renderer implements i18nmark.PageRenderer with an html/template page shell.
type Renderer struct {
	tmpl       *template.Template
	storageKey string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStorageKey sets the localStorage key used by the language switcher.
func WithStorageKey(key string) Option {
	return func(r *Renderer) {
		r.storageKey = key
	}
}

// New returns a renderer for the built-in shell.
func New(opts ...Option) (*Renderer, error) {
	return Parse(defaultTemplate, opts...)
}

// Parse returns a renderer for a custom shell template.
func Parse(text string, opts ...Option) (*Renderer, error) {
	tmpl, err := template.New("page").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse page shell: %w", err)
	}

	r := &Renderer{tmpl: tmpl, storageKey: DefaultStorageKey}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ParseFile returns a renderer for the shell template stored at path.
func ParseFile(path string, opts ...Option) (*Renderer, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified template
	if err != nil {
		return nil, fmt.Errorf("read page shell: %w", err)
	}
	return Parse(string(data), opts...)
}

type pageView struct {
	Title        string
	Lang         string
	Dir          i18nmark.Direction
	Body         template.HTML
	Languages    []i18nmark.Language
	Translations i18nmark.Translations
	StorageKey   string
}

// Render produces the full document for one page.
// The body is inserted verbatim between the body delimiter comments.
func (r *Renderer) Render(page i18nmark.PageData) (string, error) {
	translations := page.Translations
	if translations == nil {
		translations = i18nmark.Translations{}
	}
	languages := page.Languages
	if languages == nil {
		languages = []i18nmark.Language{}
	}
	dir := page.Dir
	if dir == "" {
		dir = i18nmark.GetDirection(page.Lang)
	}

	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, pageView{
		Title:        page.Title,
		Lang:         page.Lang,
		Dir:          dir,
		Body:         template.HTML(i18nmark.WrapBody(page.Body)), // #nosec G203 -- annotated page markup
		Languages:    languages,
		Translations: translations,
		StorageKey:   r.storageKey,
	})
	if err != nil {
		return "", fmt.Errorf("render page shell: %w", err)
	}
	return buf.String(), nil
}

var _ i18nmark.PageRenderer = (*Renderer)(nil)
