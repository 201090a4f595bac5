// Package provider implements translation suggesters backed by chat models.
package provider

import "github.com/ZaguanLabs/i18nmark"

// Suggester is an alias to the main package interface for convenience.
type Suggester = i18nmark.Suggester

// SuggestRequest is an alias to the main package type.
type SuggestRequest = i18nmark.SuggestRequest
