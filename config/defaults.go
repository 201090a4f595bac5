package config

import "errors"

const (
	defaultCacheTTLSeconds   = 3600
	defaultRequestsPerMinute = 30
	defaultSuggestBatchSize  = 40
	defaultMaxRetries        = 3
)

// validation errors.
var (
	errEmptyLocalesDir    = errors.New("locales_dir cannot be empty")
	errEmptyReferenceLang = errors.New("reference_lang cannot be empty")
	errInvalidWorkers     = errors.New("workers must be at least 1")
	errInvalidTTL         = errors.New("cache.ttl cannot be negative")
	errInvalidLogLevel    = errors.New("invalid log.level")
	errInvalidLogFormat   = errors.New("invalid log.format")
	errEmptyLanguage      = errors.New("languages cannot contain an empty code")
	errDuplicateLanguage  = errors.New("duplicate language")
	errMissingAPIKey      = errors.New("suggest.enabled requires suggest.api_key, OPENAI_API_KEY or suggest.base_url")
)

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.ProductName = "EV Charging Platform"
	cfg.Pages = []string{"*.html"}
	cfg.LocalesDir = "locales"
	cfg.ReferenceLang = "en"
	cfg.Languages = []string{"en", "ar", "fa"}
	cfg.Catalog = ""
	cfg.Workers = 1
	cfg.RenderShell = true

	cfg.Cache.TTL = defaultCacheTTLSeconds
	cfg.Cache.RedisURL = ""
	cfg.Cache.File = ""

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"

	cfg.Suggest.Enabled = false
	cfg.Suggest.Model = "gpt-4o-mini"
	cfg.Suggest.Context = "the admin dashboard of an EV charging platform"
	cfg.Suggest.BatchSize = defaultSuggestBatchSize
	cfg.Suggest.RequestsPerMinute = defaultRequestsPerMinute
	cfg.Suggest.MaxRetries = defaultMaxRetries
}
