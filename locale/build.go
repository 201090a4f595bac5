package locale

import (
	"bytes"
	"errors"
	"sort"

	"github.com/ZaguanLabs/i18nmark"
)

// Source is the stored state of one language table. Table is used when the
// caller already holds a parsed table; otherwise Raw is parsed or repaired.
// A zero Source means the language has no stored table yet.
type Source struct {
	Table *Table
	Raw   []byte
}

// Status describes how a language's base table was obtained.
type Status string

const (
	// StatusParsed means the stored table was valid JSON.
	StatusParsed Status = "parsed"
	// StatusRepaired means the stored blob was malformed and at least one fragment was recovered.
	StatusRepaired Status = "repaired"
	// StatusMissing means there was no stored table.
	StatusMissing Status = "missing"
	// StatusUnrecoverable means nothing could be recovered from the stored blob.
	StatusUnrecoverable Status = "unrecoverable"
)

// LanguageReport summarizes the build of one language table.
type LanguageReport struct {
	Lang               string            `json:"lang"`
	Status             Status            `json:"status"`
	ParseError         string            `json:"parse_error,omitempty"`
	FragmentsRecovered int               `json:"fragments_recovered"`
	FragmentsDropped   int               `json:"fragments_dropped"`
	Missing            []string          `json:"missing"`      // Reference keys absent from the base table
	Seeded             []string          `json:"seeded"`       // Missing keys filled from known translations
	Untranslated       []string          `json:"untranslated"` // Missing keys filled with the reference string
	Extra              []string          `json:"extra"`        // Keys not in the reference, preserved
	Suggestions        map[string]string `json:"suggestions,omitempty"`
}

// BuildReport summarizes a build across languages.
type BuildReport struct {
	Reference string            `json:"reference"`
	Languages []*LanguageReport `json:"languages"`
}

// Language returns the report for lang, or nil.
func (r *BuildReport) Language(lang string) *LanguageReport {
	for _, l := range r.Languages {
		if l.Lang == lang {
			return l
		}
	}
	return nil
}

// KnownFunc returns known translations for a language, keyed by translation key.
type KnownFunc func(lang string) map[string]string

// BuildOption is a functional option for Build.
type BuildOption func(*builder)

type builder struct {
	refLang string
	known   KnownFunc
}

// WithReferenceLang sets the reference language recorded in the report.
func WithReferenceLang(lang string) BuildOption {
	return func(b *builder) {
		b.refLang = lang
	}
}

// WithKnownTranslations seeds missing keys from known translations before
// falling back to the reference string.
func WithKnownTranslations(known KnownFunc) BuildOption {
	return func(b *builder) {
		b.known = known
	}
}

// Build produces a complete table for every language in existing. Each
// output table holds every reference key (reference order) followed by the
// extra keys of the stored table (stored order). Build never fails: a
// malformed stored table is repaired, and in the worst case the output
// equals the reference table.
func Build(reference *Table, existing map[string]Source, opts ...BuildOption) (map[string]*Table, *BuildReport) {
	b := &builder{refLang: "en"}
	for _, opt := range opts {
		opt(b)
	}

	langs := make([]string, 0, len(existing))
	for lang := range existing {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	tables := make(map[string]*Table, len(langs))
	report := &BuildReport{Reference: b.refLang, Languages: make([]*LanguageReport, 0, len(langs))}

	for _, lang := range langs {
		table, lr := b.buildOne(reference, lang, existing[lang])
		tables[lang] = table
		report.Languages = append(report.Languages, lr)
	}

	return tables, report
}

func (b *builder) buildOne(reference *Table, lang string, src Source) (*Table, *LanguageReport) {
	lr := &LanguageReport{
		Lang:         lang,
		Missing:      []string{},
		Seeded:       []string{},
		Untranslated: []string{},
		Extra:        []string{},
	}

	base := loadBase(src, lr)

	var known map[string]string
	if b.known != nil {
		known = b.known(lang)
	}

	out := NewTable()
	out.nested = base.nested || reference.nested

	for _, key := range reference.keys {
		if base.Has(key) {
			out.copyFrom(base, key)
			continue
		}
		lr.Missing = append(lr.Missing, key)
		if v, ok := known[key]; ok && v != "" {
			out.Set(key, v)
			lr.Seeded = append(lr.Seeded, key)
			continue
		}
		out.copyFrom(reference, key)
		lr.Untranslated = append(lr.Untranslated, key)
	}

	for _, key := range base.keys {
		if reference.Has(key) {
			continue
		}
		out.copyFrom(base, key)
		lr.Extra = append(lr.Extra, key)
	}

	return out, lr
}

// loadBase resolves a Source to a table, recording how it was obtained.
func loadBase(src Source, lr *LanguageReport) *Table {
	if src.Table != nil {
		lr.Status = StatusParsed
		return src.Table
	}
	if len(bytes.TrimSpace(src.Raw)) == 0 {
		lr.Status = StatusMissing
		return NewTable()
	}

	t, err := Parse(src.Raw)
	if err == nil {
		lr.Status = StatusParsed
		return t
	}

	var pe *i18nmark.ParseError
	if errors.As(err, &pe) {
		pe.Lang = lr.Lang
	}
	lr.ParseError = err.Error()

	repaired := Repair(src.Raw)
	lr.FragmentsRecovered = repaired.Recovered
	lr.FragmentsDropped = repaired.Dropped
	if repaired.Recovered == 0 {
		lr.Status = StatusUnrecoverable
	} else {
		lr.Status = StatusRepaired
	}
	return repaired.Table
}

// ReferenceUpdate describes how page inventories changed the reference table.
type ReferenceUpdate struct {
	Added     []string               `json:"added"`
	Conflicts []i18nmark.ModifiedKey `json:"conflicts"` // Key kept its reference text; pages show another
	Diff      i18nmark.DiffStats     `json:"diff"`
}

// UpdateReference merges the keys seen on pages (key → canonical text) into
// the reference table. Missing keys are appended in sorted order; existing
// keys keep their value and differing page texts are reported as conflicts.
// Keys are never removed. The reserved page-title key is not stored.
func UpdateReference(reference *Table, seen map[string]string) (*Table, *ReferenceUpdate) {
	inventory := make(map[string]string, len(seen))
	for k, v := range seen {
		if k != i18nmark.PageTitleKey {
			inventory[k] = v
		}
	}

	refMap := reference.Map()
	diff := i18nmark.DiffKeys(refMap, inventory)

	out := reference.Clone()
	for _, key := range diff.Added {
		out.Set(key, inventory[key])
	}

	update := &ReferenceUpdate{
		Added:     diff.Added,
		Conflicts: diff.Modified,
		Diff:      diff.Stats(),
	}
	if update.Added == nil {
		update.Added = []string{}
	}
	if update.Conflicts == nil {
		update.Conflicts = []i18nmark.ModifiedKey{}
	}
	return out, update
}
