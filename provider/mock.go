package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockSuggester is a canned suggester for testing.
type MockSuggester struct {
	Translations map[string]string // Map of reference text to suggestion
	CallCount    int               // Number of times Suggest was called
	LastRequest  *SuggestRequest   // Last request received
	Err          error             // Returned instead of suggestions when set

	mu sync.Mutex
}

// NewMockSuggester creates a new mock suggester with a few Farsi suggestions.
func NewMockSuggester() *MockSuggester {
	return &MockSuggester{
		Translations: map[string]string{
			"Dashboard": "داشبورد",
			"Save":      "ذخیره",
			"Cancel":    "لغو",
			"Stations":  "ایستگاه‌ها",
		},
	}
}

// Suggest returns mock suggestions.
func (m *MockSuggester) Suggest(ctx context.Context, req SuggestRequest) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if suggestion, ok := m.Translations[text]; ok {
			results[i] = suggestion
		} else {
			// Bracketed text for unknown strings
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}

	return results, nil
}

// Reset resets the call count and last request.
func (m *MockSuggester) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

var _ Suggester = (*MockSuggester)(nil)
