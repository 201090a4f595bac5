package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "EV Charging Platform", cfg.ProductName)
	assert.Equal(t, "en", cfg.ReferenceLang)
	assert.Equal(t, []string{"en", "ar", "fa"}, cfg.Languages)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 3600, cfg.Cache.TTL)
	assert.True(t, cfg.RenderShell)
	assert.False(t, cfg.Suggest.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i18nmark.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
product_name: Charge Hub
pages:
  - "site/*.html"
locales_dir: site/locales
languages: [en, fa]
workers: 4
cache:
  ttl: 0
  file: .i18nmark-cache.json
log:
  level: debug
  format: json
suggest:
  enabled: true
  api_key: sk-test
  requests_per_minute: 10
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Charge Hub", cfg.ProductName)
	assert.Equal(t, []string{"site/*.html"}, cfg.Pages)
	assert.Equal(t, "site/locales", cfg.LocalesDir)
	assert.Equal(t, []string{"en", "fa"}, cfg.Languages)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 0, cfg.Cache.TTL)
	assert.Equal(t, ".i18nmark-cache.json", cfg.Cache.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Suggest.Enabled)
	assert.Equal(t, 10, cfg.Suggest.RequestsPerMinute)

	// Untouched values keep their defaults.
	assert.Equal(t, "en", cfg.ReferenceLang)
	assert.Equal(t, "gpt-4o-mini", cfg.Suggest.Model)
	require.NoError(t, cfg.Validate())
}

func TestLoad_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i18nmark.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale_dir: typo\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty locales dir", func(c *Config) { c.LocalesDir = "" }, errEmptyLocalesDir},
		{"empty reference", func(c *Config) { c.ReferenceLang = "" }, errEmptyReferenceLang},
		{"zero workers", func(c *Config) { c.Workers = 0 }, errInvalidWorkers},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -1 }, errInvalidTTL},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, errInvalidLogLevel},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, errInvalidLogFormat},
		{"empty language", func(c *Config) { c.Languages = []string{"en", ""} }, errEmptyLanguage},
		{"duplicate language", func(c *Config) { c.Languages = []string{"en", "fa", "fa"} }, errDuplicateLanguage},
		{"suggest without key", func(c *Config) { c.Suggest.Enabled = true }, errMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestSuggestAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg := Default()
	assert.Equal(t, "from-env", cfg.SuggestAPIKey())

	cfg.Suggest.APIKey = "from-file"
	assert.Equal(t, "from-file", cfg.SuggestAPIKey())
}

func TestLanguages(t *testing.T) {
	cfg := Default()
	cfg.Languages = []string{"ar", "en", "fa"}

	assert.Equal(t, []string{"ar", "fa"}, cfg.TargetLanguages())
	assert.Equal(t, []string{"en", "ar", "fa"}, cfg.AllLanguages())
}

func TestExpandPages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users.html", "index.html", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	pages, err := ExpandPages([]string{
		filepath.Join(dir, "*.html"),
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "missing.html"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "missing.html"),
		filepath.Join(dir, "users.html"),
	}, pages)

	_, err = ExpandPages([]string{"[bad"})
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()

	prevLevel, prevLogger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})

	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"
	cfg.SetupLogging(f)

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.NotNil(t, ConsoleWriter(f))
	assert.False(t, isTerminal(f))
}
