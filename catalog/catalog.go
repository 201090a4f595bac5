// Package catalog loads and validates annotation catalogs.
//
// A catalog is a YAML document listing the strings the annotator may key:
//
//	entries:
//	  - role: action
//	    key: add_station
//	    text: Add Station
//	    translations:
//	      ar: إضافة محطة
//	      fa: افزودن ایستگاه
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/goccy/go-yaml"
)

//go:embed default.yaml
var defaultCatalog []byte

// Entry is an alias to the main package type.
type Entry = i18nmark.Entry

// File is the on-disk shape of a catalog.
type File struct {
	Entries []Entry `yaml:"entries"`
}

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z0-9_]+)*$`)

// Default returns the embedded catalog.
func Default() []Entry {
	entries, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return entries
}

// Load reads and validates a catalog file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &i18nmark.CatalogError{
			Message: "failed to read " + path,
			Index:   -1,
			Cause:   err,
		}
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML. Unknown fields are rejected.
func Parse(data []byte) ([]Entry, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, &i18nmark.CatalogError{
			Message: "invalid YAML",
			Index:   -1,
			Cause:   err,
		}
	}

	for i := range f.Entries {
		f.Entries[i].Text = collapse(f.Entries[i].Text)
	}

	if err := Validate(f.Entries); err != nil {
		return nil, err
	}
	return f.Entries, nil
}

// Validate checks that every entry is well formed and that keys and texts
// form a one-to-one mapping across the whole catalog. The same key/text pair
// may be listed under more than one role.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return &i18nmark.CatalogError{Message: "no entries", Index: -1}
	}

	textByKey := make(map[string]string, len(entries))
	keyByText := make(map[string]string, len(entries))

	for i, e := range entries {
		switch {
		case !e.Role.Valid():
			return &i18nmark.CatalogError{Message: fmt.Sprintf("unknown role %q", e.Role), Index: i, Key: e.Key}
		case e.Role == i18nmark.RolePageTitle || e.Key == i18nmark.PageTitleKey:
			return &i18nmark.CatalogError{Message: "the page title key is reserved", Index: i, Key: e.Key}
		case e.Key == "":
			return &i18nmark.CatalogError{Message: "empty key", Index: i}
		case !keyPattern.MatchString(e.Key):
			return &i18nmark.CatalogError{Message: "key must be snake_case", Index: i, Key: e.Key}
		case collapse(e.Text) == "":
			return &i18nmark.CatalogError{Message: "empty text", Index: i, Key: e.Key}
		}

		text := collapse(e.Text)
		if prev, ok := textByKey[e.Key]; ok && prev != text {
			return &i18nmark.CatalogError{
				Message: fmt.Sprintf("key already maps to %q, not %q", prev, text),
				Index:   i,
				Key:     e.Key,
			}
		}
		if prev, ok := keyByText[text]; ok && prev != e.Key {
			return &i18nmark.CatalogError{
				Message: fmt.Sprintf("text %q is already keyed as %q", text, prev),
				Index:   i,
				Key:     e.Key,
			}
		}
		textByKey[e.Key] = text
		keyByText[text] = e.Key
	}
	return nil
}

// Inventory maps every non page-scoped key to its canonical English text.
func Inventory(entries []Entry) map[string]string {
	inv := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.PageScoped {
			inv[e.Key] = collapse(e.Text)
		}
	}
	return inv
}

// Keys returns the distinct keys of the catalog in catalog order.
func Keys(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !seen[e.Key] {
			seen[e.Key] = true
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// KnownTranslations returns the catalog's translations for lang, keyed by
// translation key. Page-scoped entries contribute under their resolved keys
// for every prefix in prefixes.
func KnownTranslations(entries []Entry, lang string, prefixes ...string) map[string]string {
	known := make(map[string]string)
	for _, e := range entries {
		value, ok := e.Translations[lang]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if !e.PageScoped {
			known[e.Key] = value
			continue
		}
		for _, prefix := range prefixes {
			known[e.ResolvedKey(prefix)] = value
		}
	}
	return known
}

// Languages returns the sorted set of languages with at least one known translation.
func Languages(entries []Entry) []string {
	set := make(map[string]bool)
	for _, e := range entries {
		for lang := range e.Translations {
			set[lang] = true
		}
	}
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ByRole groups entries by role, preserving catalog order within a role.
func ByRole(entries []Entry) map[i18nmark.Role][]Entry {
	groups := make(map[i18nmark.Role][]Entry)
	for _, e := range entries {
		groups[e.Role] = append(groups[e.Role], e)
	}
	return groups
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
