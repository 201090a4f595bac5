// Package config loads the i18nmark run configuration and sets up logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// DefaultPath is the configuration file read when no --config flag is given.
const DefaultPath = "i18nmark.yaml"

// Config holds the run configuration.
type Config struct {
	ProductName   string   `yaml:"product_name"`
	Pages         []string `yaml:"pages"`       // Page files or glob patterns
	LocalesDir    string   `yaml:"locales_dir"` // Directory holding <lang>.json tables
	ReferenceLang string   `yaml:"reference_lang"`
	Languages     []string `yaml:"languages"` // All page languages, reference included
	Catalog       string   `yaml:"catalog"`   // Catalog file; empty uses the embedded catalog
	Workers       int      `yaml:"workers"`
	RenderShell   bool     `yaml:"render_shell"` // Re-render pages from the shared shell

	Cache struct {
		TTL      int    `yaml:"ttl"`       // Seconds; 0 disables the in-memory cache
		RedisURL string `yaml:"redis_url"` // Uses Redis instead of memory when set
		File     string `yaml:"file"`      // Cache snapshot loaded before and saved after a run
	} `yaml:"cache"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // "console" or "json"
	} `yaml:"log"`

	Suggest struct {
		Enabled           bool   `yaml:"enabled"`
		Model             string `yaml:"model"`
		APIKey            string `yaml:"api_key"` // Falls back to OPENAI_API_KEY
		BaseURL           string `yaml:"base_url"`
		Context           string `yaml:"context"`
		BatchSize         int    `yaml:"batch_size"`
		RequestsPerMinute int    `yaml:"requests_per_minute"`
		MaxRetries        int    `yaml:"max_retries"`
	} `yaml:"suggest"`
}

// Load returns the defaults overlaid with the YAML file at path.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.readYAML(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) readYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- Only loading a config file
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().
			Str("path", path).
			Msg("No configuration file found, using defaults")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Msg("Loaded configuration")

	return nil
}

// Validate checks the configuration for values no run can use.
func (cfg *Config) Validate() error {
	if cfg.LocalesDir == "" {
		return errEmptyLocalesDir
	}
	if cfg.ReferenceLang == "" {
		return errEmptyReferenceLang
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("%w: %d", errInvalidWorkers, cfg.Workers)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("%w: %d", errInvalidTTL, cfg.Cache.TTL)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	seen := map[string]bool{}
	for _, lang := range cfg.Languages {
		if lang == "" {
			return errEmptyLanguage
		}
		if seen[lang] {
			return fmt.Errorf("%w: %s", errDuplicateLanguage, lang)
		}
		seen[lang] = true
	}

	if cfg.Suggest.Enabled && cfg.SuggestAPIKey() == "" && cfg.Suggest.BaseURL == "" {
		return errMissingAPIKey
	}

	return nil
}

// TargetLanguages returns the configured languages other than the reference.
func (cfg *Config) TargetLanguages() []string {
	out := make([]string, 0, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		if lang != cfg.ReferenceLang {
			out = append(out, lang)
		}
	}
	return out
}

// AllLanguages returns the reference language followed by the targets.
func (cfg *Config) AllLanguages() []string {
	return append([]string{cfg.ReferenceLang}, cfg.TargetLanguages()...)
}

// SuggestAPIKey returns the configured API key or OPENAI_API_KEY.
func (cfg *Config) SuggestAPIKey() string {
	if cfg.Suggest.APIKey != "" {
		return cfg.Suggest.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// ExpandPages resolves page patterns to a sorted list of distinct files.
// Patterns without glob characters are kept as given even if missing, so
// the run reports them as failed pages.
func ExpandPages(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			if !seen[pattern] {
				seen[pattern] = true
				out = append(out, pattern)
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad page pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}

	sort.Strings(out)
	return out, nil
}
