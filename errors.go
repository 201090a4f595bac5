package i18nmark

import (
	"fmt"
	"time"
)

// StructuralError indicates a page lacks an anchor the annotator needs
// (for example the <body> boundary). The page is skipped and not written.
type StructuralError struct {
	Message string
	Path    string // File the error refers to, if known
	Cause   error
}

func (e *StructuralError) Error() string {
	msg := "structural error: " + e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("structural error in %s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// ParseError indicates a stored locale table is not valid JSON.
// The builder recovers from it through the repair procedure.
type ParseError struct {
	Lang   string
	Offset int64 // Byte offset of the failure, -1 if unknown
	Cause  error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error (%s)", e.Lang)
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CatalogError indicates an invalid annotation catalog.
type CatalogError struct {
	Message string
	Index   int // Entry index, -1 for catalog-level problems
	Key     string
	Cause   error
}

func (e *CatalogError) Error() string {
	msg := fmt.Sprintf("catalog error: %s", e.Message)
	if e.Index >= 0 {
		msg = fmt.Sprintf("catalog error: entry %d (%s): %s", e.Index, e.Key, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation suggestion backend failure (API error, rate limit, etc.).
type ProviderError struct {
	Message    string
	Cause      error
	Retryable  bool          // Whether the operation can be retried
	RetryAfter time.Duration // Wait the backend asked for, zero if none
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a markup processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates a provider returned a different number of suggestions than requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("suggestion count mismatch: expected %d, got %d", e.Expected, e.Got)
}
