package i18nmark

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	return HashContent(strings.TrimSpace(text))
}

// HashContent computes the SHA-256 hash of content exactly as given.
// Markup is hashed untrimmed because surrounding whitespace is part of the output.
func HashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// CatalogFingerprint hashes the catalog entries so cached annotations are
// invalidated whenever the catalog changes.
func CatalogFingerprint(entries []Entry) string {
	data, err := json.Marshal(entries)
	if err != nil {
		return ""
	}
	return HashContent(string(data))[:16]
}

// AnnotationCacheKey generates a cache key for an annotated fragment.
func AnnotationCacheKey(hash, fingerprint, pagePrefix string) string {
	return "annotate:" + fingerprint + ":" + pagePrefix + ":" + hash
}

// SuggestionCacheKey generates a cache key for a suggested translation.
func SuggestionCacheKey(hash, targetLang string) string {
	return "suggest:" + targetLang + ":" + hash
}
