package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	entries := Default()
	require.NotEmpty(t, entries)
	assert.GreaterOrEqual(t, len(Keys(entries)), 100)
	require.NoError(t, Validate(entries))

	inv := Inventory(entries)
	assert.Equal(t, "Dashboard", inv["dashboard"])
	assert.Equal(t, "stations", inv["unit_stations"])
	assert.Equal(t, "Stations", inv["stations"])

	fa := KnownTranslations(entries, "fa")
	assert.Equal(t, "پنل کنترل", fa["dashboard"])
	assert.Equal(t, "ذخیره", fa["save"])

	ar := KnownTranslations(entries, "ar")
	assert.Equal(t, "حفظ", ar["save"])

	assert.Equal(t, []string{"ar", "fa"}, Languages(entries))
}

func TestDefault_EveryEntryTranslated(t *testing.T) {
	for _, e := range Default() {
		for _, lang := range []string{"ar", "fa"} {
			assert.NotEmpty(t, e.Translations[lang], "%s has no %s translation", e.Key, lang)
		}
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
entries:
  - role: action
    key: add_station
    text: "  Add
      Station "
    translations:
      fa: افزودن ایستگاه
  - role: card_title
    key: total
    text: Total
    page_scoped: true
`)

	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, i18nmark.RoleAction, entries[0].Role)
	assert.Equal(t, "Add Station", entries[0].Text)
	assert.True(t, entries[1].PageScoped)

	known := KnownTranslations(entries, "fa", "stations")
	assert.Equal(t, map[string]string{"add_station": "افزودن ایستگاه"}, known)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("entries:\n  - role: action\n    key: save\n    text: Save\n    colour: red\n"))

	var catErr *i18nmark.CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "invalid YAML", catErr.Message)
	assert.NotNil(t, catErr.Unwrap())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name:    "empty catalog",
			entries: nil,
			wantErr: "catalog error: no entries",
		},
		{
			name:    "unknown role",
			entries: []Entry{{Role: "footer", Key: "save", Text: "Save"}},
			wantErr: `catalog error: entry 0 (save): unknown role "footer"`,
		},
		{
			name:    "reserved key",
			entries: []Entry{{Role: i18nmark.RoleBranding, Key: "page-title", Text: "Stations"}},
			wantErr: "catalog error: entry 0 (page-title): the page title key is reserved",
		},
		{
			name:    "empty key",
			entries: []Entry{{Role: i18nmark.RoleAction, Text: "Save"}},
			wantErr: "catalog error: entry 0 (): empty key",
		},
		{
			name:    "bad key",
			entries: []Entry{{Role: i18nmark.RoleAction, Key: "Save Now", Text: "Save"}},
			wantErr: "catalog error: entry 0 (Save Now): key must be snake_case",
		},
		{
			name:    "empty text",
			entries: []Entry{{Role: i18nmark.RoleAction, Key: "save", Text: "   "}},
			wantErr: "catalog error: entry 0 (save): empty text",
		},
		{
			name: "key with two texts",
			entries: []Entry{
				{Role: i18nmark.RoleNavigation, Key: "stations", Text: "Stations"},
				{Role: i18nmark.RolePagination, Key: "stations", Text: "stations"},
			},
			wantErr: `catalog error: entry 1 (stations): key already maps to "Stations", not "stations"`,
		},
		{
			name: "text with two keys",
			entries: []Entry{
				{Role: i18nmark.RoleStatus, Key: "maintenance", Text: "Maintenance"},
				{Role: i18nmark.RoleCardTitle, Key: "maintenance_title", Text: "Maintenance"},
			},
			wantErr: `catalog error: entry 1 (maintenance_title): text "Maintenance" is already keyed as "maintenance"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidate_SharedPairAcrossRoles(t *testing.T) {
	err := Validate([]Entry{
		{Role: i18nmark.RoleStatus, Key: "maintenance", Text: "Maintenance"},
		{Role: i18nmark.RoleCardTitle, Key: "maintenance", Text: "Maintenance"},
	})
	assert.NoError(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - role: status\n    key: online\n    text: Online\n"), 0o644))

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"online"}, Keys(entries))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var catErr *i18nmark.CatalogError
	assert.True(t, errors.As(err, &catErr))
}

func TestByRole(t *testing.T) {
	groups := ByRole(Default())
	assert.Len(t, groups[i18nmark.RoleNavigation], 10)
	assert.Equal(t, "dashboard", groups[i18nmark.RoleNavigation][0].Key)
	assert.Len(t, groups[i18nmark.RolePlaceholder], 6)
}
