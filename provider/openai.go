package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultContext describes the product to the model when the request has no context.
const DefaultContext = "the admin dashboard of an EV charging platform"

// OpenAISuggester implements Suggester using an OpenAI-compatible chat API.
type OpenAISuggester struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI suggester.
type OpenAIConfig struct {
	APIKey      string  // API key (the caller resolves OPENAI_API_KEY)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL for compatible endpoints (optional)
}

// NewOpenAISuggester creates a new OpenAI suggester.
func NewOpenAISuggester(cfg OpenAIConfig) *OpenAISuggester {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Transport: userAgentTransport{next: http.DefaultTransport}}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAISuggester{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// userAgentTransport identifies the tool on every API request.
type userAgentTransport struct {
	next http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", i18nmark.UserAgent())

	resp, err := t.next.RoundTrip(req)
	if err == nil {
		if hint, ok := req.Context().Value(retryHintKey{}).(*retryHint); ok {
			hint.after = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		}
	}
	return resp, err
}

type retryHintKey struct{}

// retryHint carries the Retry-After of a response back to the Suggest call
// that sent the request.
type retryHint struct {
	after time.Duration
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if at, err := http.ParseTime(value); err == nil {
		return max(at.Sub(now), 0)
	}
	return 0
}

// Model returns the configured model name.
func (p *OpenAISuggester) Model() string {
	return p.model
}

// Suggest proposes translations for a batch of reference strings.
func (p *OpenAISuggester) Suggest(ctx context.Context, req SuggestRequest) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	hint := &retryHint{}
	resp, err := p.client.CreateChatCompletion(context.WithValue(ctx, retryHintKey{}, hint), openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &i18nmark.ProviderError{
			Message:    "chat completion failed",
			Cause:      err,
			Retryable:  isRetryableError(err),
			RetryAfter: hint.after,
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &i18nmark.ProviderError{
			Message:   "empty response from model",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Texts))
}

func (p *OpenAISuggester) buildSystemPrompt(req SuggestRequest) string {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "en"
	}

	sourceName := i18nmark.GetLanguageName(sourceLang)
	targetName := i18nmark.GetLanguageName(req.TargetLang)

	product := req.Context
	if product == "" {
		product = DefaultContext
	}

	prompt := fmt.Sprintf(`# Role
You are a professional software localizer translating user interface strings from %s to %s.

# Context
The strings are labels from %s: navigation items, buttons, table headers, status badges, card titles and input placeholders.

# Style Guide
- **Brevity**: Keep translations as short as the original. They must fit in buttons, badges and table headers.
- **Consistency**: Use the standard terminology of %s software interfaces.
- **Keys**: Each item carries its translation key. Use it to disambiguate (e.g. "status_active" is a status badge, "action_save" a button).
- **Placeholders**: Do NOT translate variables or placeholders (e.g. {count}, %%s, {{name}}).
- **Formatting**: Do not add punctuation, quotes or explanations that are not in the source.`,
		sourceName, targetName, product, targetName)

	if i18nmark.IsRTL(req.TargetLang) {
		prompt += fmt.Sprintf("\n- **Script**: %s is displayed right-to-left. Use native script and punctuation; keep Latin brand names and units as they are.", targetName)
	}

	if len(req.Glossary) > 0 {
		sources := make([]string, 0, len(req.Glossary))
		for source := range req.Glossary {
			sources = append(sources, source)
		}
		sort.Strings(sources)

		prompt += "\n\n# Glossary\nThese strings are already translated on other pages. Reuse their wording:"
		for _, source := range sources {
			prompt += fmt.Sprintf("\n- \"%s\" → %s", source, req.Glossary[source])
		}
	}

	prompt += `

# Format
Return a valid JSON object with a single key "translations" containing an array of strings in the exact same order as the input items.
Example: { "translations": ["translated string 1", "translated string 2"] }
- Do NOT wrap in Markdown code blocks.`

	return prompt
}

type suggestItem struct {
	Key  string `json:"key,omitempty"`
	Text string `json:"text"`
}

func (p *OpenAISuggester) buildUserMessage(req SuggestRequest) string {
	items := make([]suggestItem, len(req.Texts))
	for i, text := range req.Texts {
		items[i].Text = text
		if i < len(req.Keys) {
			items[i].Key = req.Keys[i]
		}
	}

	data, _ := json.Marshal(map[string][]suggestItem{"items": items})
	return string(data)
}

func (p *OpenAISuggester) parseResponse(content string, expectedCount int) ([]string, error) {
	content = strings.TrimSpace(content)
	if !gjson.Valid(content) {
		return nil, &i18nmark.ProviderError{
			Message:   "invalid response format from model",
			Retryable: false,
		}
	}

	root := gjson.Parse(content)
	if root.IsArray() {
		return toStringSlice(root.Array(), expectedCount)
	}

	if translations := root.Get("translations"); translations.IsArray() {
		return toStringSlice(translations.Array(), expectedCount)
	}

	// Some models pick their own key; take the first array value
	var found []gjson.Result
	root.ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() {
			found = value.Array()
			return false
		}
		return true
	})
	if found != nil {
		return toStringSlice(found, expectedCount)
	}

	return nil, &i18nmark.ProviderError{
		Message:   "response has no translations array",
		Retryable: false,
	}
}

func toStringSlice(arr []gjson.Result, expectedCount int) ([]string, error) {
	if len(arr) != expectedCount {
		return nil, &i18nmark.CountMismatchError{
			Expected: expectedCount,
			Got:      len(arr),
		}
	}

	result := make([]string, len(arr))
	for i, v := range arr {
		result[i] = v.String()
	}
	return result, nil
}

func isRetryableError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

var _ Suggester = (*OpenAISuggester)(nil)
