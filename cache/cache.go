// Package cache provides caching for annotated fragments and translation suggestions.
//
// Keys are built by i18nmark.AnnotationCacheKey and i18nmark.SuggestionCacheKey,
// so entries from both producers can share one backend.
package cache

import "github.com/ZaguanLabs/i18nmark"

// Cache is an alias to the main package interface.
type Cache = i18nmark.AnnotationCache

// Enumerable is implemented by caches that can list their live entries.
type Enumerable interface {
	Cache
	// Entries returns all non-expired entries as key-value pairs.
	Entries() (map[string]string, error)
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// HitRate returns the fraction of lookups that were hits.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
