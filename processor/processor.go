// Package processor provides markup processing implementations.
package processor

import "github.com/ZaguanLabs/i18nmark"

// MarkupProcessor is an alias to the main package interface.
type MarkupProcessor = i18nmark.MarkupProcessor

// Entry is an alias to the main package type.
type Entry = i18nmark.Entry

// Document is an alias to the main package type.
type Document = i18nmark.Document
