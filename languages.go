package i18nmark

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Direction is the text direction of a language.
type Direction string

const (
	// LTR is left-to-right text.
	LTR Direction = "ltr"
	// RTL is right-to-left text.
	RTL Direction = "rtl"
)

// LanguageFlags maps base language codes to the flag shown in the language switcher.
var LanguageFlags = map[string]string{
	"en": "🇺🇸",
	"ar": "🇸🇦",
	"fa": "🇮🇷",
	"he": "🇮🇱",
	"ur": "🇵🇰",
	"de": "🇩🇪",
	"es": "🇪🇸",
	"fr": "🇫🇷",
	"tr": "🇹🇷",
}

// Language describes a supported language for page rendering and reports.
type Language struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`        // English name, e.g. "Persian"
	NativeName string    `json:"native_name"` // Name in the language itself, e.g. "فارسی"
	Dir        Direction `json:"dir"`
	Flag       string    `json:"flag,omitempty"`
}

// DescribeLanguage returns display metadata for a language code.
func DescribeLanguage(langCode string) Language {
	return Language{
		Code:       langCode,
		Name:       GetLanguageName(langCode),
		NativeName: GetNativeLanguageName(langCode),
		Dir:        GetDirection(langCode),
		Flag:       LanguageFlags[BaseLanguage(langCode)],
	}
}

// DescribeLanguages returns display metadata for each code, preserving order.
func DescribeLanguages(codes []string) []Language {
	out := make([]Language, 0, len(codes))
	for _, code := range codes {
		out = append(out, DescribeLanguage(code))
	}
	return out
}

// BaseLanguage extracts the lower-case base language (e.g., "fa" from "fa_IR" or "fa-IR").
func BaseLanguage(langCode string) string {
	tag, err := language.Parse(ToHTMLLang(langCode))
	if err == nil {
		base, _ := tag.Base()
		return base.String()
	}
	base := strings.Split(NormalizeLocale(langCode), "_")[0]
	return strings.ToLower(base)
}

// GetLanguageName returns the English name for a language code.
// Falls back to the code itself if the code does not parse.
func GetLanguageName(langCode string) string {
	tag, err := language.Parse(ToHTMLLang(langCode))
	if err != nil {
		return langCode
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return langCode
}

// GetNativeLanguageName returns the name of the language written in that language.
func GetNativeLanguageName(langCode string) string {
	tag, err := language.Parse(ToHTMLLang(langCode))
	if err != nil {
		return langCode
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return GetLanguageName(langCode)
}

// GetDirection returns RTL for right-to-left languages, LTR otherwise.
func GetDirection(langCode string) Direction {
	if RTLLanguages[BaseLanguage(langCode)] {
		return RTL
	}
	return LTR
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == RTL
}

// NormalizeLocale converts a language code to the underscore format (e.g., "fa-IR" → "fa_IR").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// ToHTMLLang converts a locale code to HTML lang attribute format (e.g., "fa_IR" → "fa-IR").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}
