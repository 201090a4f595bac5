package i18nmark

// Role is the structural role a translatable string plays on a page.
type Role string

const (
	// RoleNavigation covers sidebar and top navigation labels.
	RoleNavigation Role = "navigation"
	// RoleBranding covers logo subtitles and other product chrome.
	RoleBranding Role = "branding"
	// RoleAction covers button labels.
	RoleAction Role = "action"
	// RoleTableHeader covers table column headers.
	RoleTableHeader Role = "table_header"
	// RoleStatus covers status badges.
	RoleStatus Role = "status"
	// RoleCardTitle covers dashboard card headings.
	RoleCardTitle Role = "card_title"
	// RoleCardDescription covers the short text under card headings.
	RoleCardDescription Role = "card_description"
	// RolePlaceholder covers input placeholder attributes.
	RolePlaceholder Role = "placeholder"
	// RolePagination covers pagination controls and counters.
	RolePagination Role = "pagination"
	// RolePageTitle is the per-page heading bound to the reserved page-title key.
	RolePageTitle Role = "page_title"
)

// RolePriority lists roles in the order the annotator applies them.
// A string that fits several roles is claimed by the earliest one.
// The page heading is reserved and always claimed first.
var RolePriority = []Role{
	RolePageTitle,
	RoleNavigation,
	RoleBranding,
	RoleAction,
	RoleTableHeader,
	RoleStatus,
	RoleCardTitle,
	RoleCardDescription,
	RolePlaceholder,
	RolePagination,
}

// Priority returns the position of r in RolePriority, or -1 for unknown roles.
func (r Role) Priority() int {
	for i, role := range RolePriority {
		if role == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r.Priority() >= 0
}

// Reserved attribute names and keys.
const (
	// KeyAttr carries the translation key of an element's text content.
	KeyAttr = "data-i18n"
	// PlaceholderKeyAttr carries the translation key of an element's placeholder.
	PlaceholderKeyAttr = "data-i18n-placeholder"
	// NoTranslateAttr excludes an element and its subtree from annotation.
	NoTranslateAttr = "data-no-translate"
	// PageTitleKey is the reserved key bound to the page heading.
	PageTitleKey = "page-title"
	// PageTitleID is the id of the element that displays the page heading.
	PageTitleID = "page-title"
)

// Comments that delimit the page body inside a rendered shell. A later run
// annotates only what lies between them, so the shell's own markup is never
// read back as page content.
const (
	BodyStartComment = "i18nmark:body"
	BodyEndComment   = "/i18nmark:body"
)

// WrapBody surrounds body with the body delimiter comments.
func WrapBody(body string) string {
	return "<!-- " + BodyStartComment + " -->" + body + "<!-- " + BodyEndComment + " -->"
}

// Entry is one record of the annotation catalog.
type Entry struct {
	Role         Role              `yaml:"role" json:"role"`
	Key          string            `yaml:"key" json:"key"`
	Text         string            `yaml:"text" json:"text"`
	Selector     string            `yaml:"selector,omitempty" json:"selector,omitempty"`         // Overrides the role's default selector
	PageScoped   bool              `yaml:"page_scoped,omitempty" json:"page_scoped,omitempty"`   // Key becomes "<prefix>_<key>"
	Translations map[string]string `yaml:"translations,omitempty" json:"translations,omitempty"` // Known translations by language code
}

// ResolvedKey returns the key the entry assigns on a page with the given prefix.
func (e Entry) ResolvedKey(pagePrefix string) string {
	if e.PageScoped && pagePrefix != "" {
		return pagePrefix + "_" + e.Key
	}
	return e.Key
}

// AnnotationMode describes how a key was attached to the markup.
type AnnotationMode string

const (
	// ModeAttribute means the key attribute was set on the element itself.
	ModeAttribute AnnotationMode = "attribute"
	// ModeWrapped means the text was wrapped in a new keyed span.
	ModeWrapped AnnotationMode = "wrapped"
	// ModePlaceholder means the placeholder key attribute was set.
	ModePlaceholder AnnotationMode = "placeholder"
	// ModeExisting means the element already carried a key.
	ModeExisting AnnotationMode = "existing"
)

// AnnotatedElement is a region of markup that carries a translation key.
type AnnotatedElement struct {
	Key  string         `json:"key"`
	Text string         `json:"text"` // Canonical text (whitespace collapsed)
	Role Role           `json:"role,omitempty"`
	Tag  string         `json:"tag"`
	Mode AnnotationMode `json:"mode"`
}

// AnnotateResult is the outcome of annotating one body fragment.
type AnnotateResult struct {
	Content    string             `json:"content"`
	Introduced []AnnotatedElement `json:"introduced"` // Elements annotated by this run
	Existing   []AnnotatedElement `json:"existing"`   // Elements that already carried a key
	Cached     bool               `json:"-"`
}

// IntroducedKeys returns the distinct keys introduced by this run, in document order.
func (r *AnnotateResult) IntroducedKeys() []string {
	return distinctKeys(r.Introduced)
}

// ExistingKeys returns the distinct keys that were already present, in document order.
func (r *AnnotateResult) ExistingKeys() []string {
	return distinctKeys(r.Existing)
}

// Inventory maps every key seen on the page (introduced or existing) to its text.
func (r *AnnotateResult) Inventory() map[string]string {
	inv := make(map[string]string, len(r.Introduced)+len(r.Existing))
	for _, el := range r.Existing {
		if el.Text != "" {
			inv[el.Key] = el.Text
		}
	}
	for _, el := range r.Introduced {
		inv[el.Key] = el.Text
	}
	return inv
}

func distinctKeys(elements []AnnotatedElement) []string {
	seen := make(map[string]bool, len(elements))
	keys := make([]string, 0, len(elements))
	for _, el := range elements {
		if !seen[el.Key] {
			seen[el.Key] = true
			keys = append(keys, el.Key)
		}
	}
	return keys
}

// PageResult is the outcome of processing one full HTML document.
type PageResult struct {
	Content    string          // Re-rendered document
	PageName   string          // <title> text without the product prefix
	Prefix     string          // Page prefix derived from PageName
	Annotation *AnnotateResult // Result for the body fragment
	Document   *Document       // Source document split around the body
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// IgnoredTags contains HTML tags whose content is never annotated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
