package processor

import (
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/i18nmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultSelectors maps each role to the CSS selector of the elements it may annotate.
var DefaultSelectors = map[i18nmark.Role]string{
	i18nmark.RoleNavigation:      "nav a, nav span, aside a, aside span, [id^='nav-']",
	i18nmark.RoleBranding:        "p, span, h1",
	i18nmark.RoleAction:          "button, button > span, a.btn, a[role='button']",
	i18nmark.RoleTableHeader:     "th",
	i18nmark.RoleStatus:          "span, td > div, div.badge",
	i18nmark.RoleCardTitle:       "h3, h4",
	i18nmark.RoleCardDescription: "p",
	i18nmark.RolePlaceholder:     "input[placeholder], textarea[placeholder]",
	i18nmark.RolePagination:      "button, span, a",
	i18nmark.RolePageTitle:       "#" + i18nmark.PageTitleID,
}

// HTMLProcessor attaches translation keys to HTML markup.
type HTMLProcessor struct {
	ignoredTags map[string]bool
	selectors   map[i18nmark.Role]string
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: i18nmark.IgnoredTags,
		selectors:   DefaultSelectors,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
		selectors:   DefaultSelectors,
	}
}

// Selector returns the selector used for an entry.
func (p *HTMLProcessor) Selector(entry Entry) string {
	if entry.Selector != "" {
		return entry.Selector
	}
	return p.selectors[entry.Role]
}

// Annotate attaches keys from entries to a body fragment. Entries are applied
// in role priority order and, within a role, in catalog order. Text content is
// never altered; only attributes and wrapping spans are added.
func (p *HTMLProcessor) Annotate(fragment string, entries []Entry, pagePrefix string) (*i18nmark.AnnotateResult, error) {
	container, err := parseFragment(fragment)
	if err != nil {
		return nil, &i18nmark.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	doc := goquery.NewDocumentFromNode(container)

	result := &i18nmark.AnnotateResult{
		Introduced: []i18nmark.AnnotatedElement{},
		Existing:   []i18nmark.AnnotatedElement{},
	}

	// Record what earlier runs (or hand edits) already keyed.
	doc.Find("[" + i18nmark.KeyAttr + "], [" + i18nmark.PlaceholderKeyAttr + "]").Each(func(_ int, s *goquery.Selection) {
		if key, ok := s.Attr(i18nmark.KeyAttr); ok {
			result.Existing = append(result.Existing, i18nmark.AnnotatedElement{
				Key:  key,
				Text: collapse(s.Text()),
				Tag:  goquery.NodeName(s),
				Mode: i18nmark.ModeExisting,
			})
		}
		if key, ok := s.Attr(i18nmark.PlaceholderKeyAttr); ok {
			placeholder, _ := s.Attr("placeholder")
			result.Existing = append(result.Existing, i18nmark.AnnotatedElement{
				Key:  key,
				Text: collapse(placeholder),
				Tag:  goquery.NodeName(s),
				Mode: i18nmark.ModeExisting,
			})
		}
	})

	p.annotatePageTitle(doc, result)

	for _, entry := range orderEntries(entries) {
		if entry.Role == i18nmark.RolePageTitle {
			continue
		}
		key := entry.ResolvedKey(pagePrefix)
		text := collapse(entry.Text)
		if key == "" || text == "" {
			continue
		}
		selector := p.Selector(entry)
		if selector == "" {
			continue
		}

		if entry.Role == i18nmark.RolePlaceholder {
			doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
				n := s.Get(0)
				if p.skipped(n.Parent) || hasAttr(n, i18nmark.NoTranslateAttr) || hasAttr(n, i18nmark.PlaceholderKeyAttr) {
					return
				}
				placeholder, ok := s.Attr("placeholder")
				if !ok || collapse(placeholder) != text {
					return
				}
				setAttr(n, i18nmark.PlaceholderKeyAttr, key)
				result.Introduced = append(result.Introduced, i18nmark.AnnotatedElement{
					Key:  key,
					Text: text,
					Role: entry.Role,
					Tag:  n.Data,
					Mode: i18nmark.ModePlaceholder,
				})
			})
			continue
		}

		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			n := s.Get(0)
			if p.skipped(n) {
				return
			}
			textNode, sole := ownText(n)
			if textNode == nil || collapse(textNode.Data) != text {
				return
			}
			mode := p.apply(n, textNode, sole, key)
			result.Introduced = append(result.Introduced, i18nmark.AnnotatedElement{
				Key:  key,
				Text: text,
				Role: entry.Role,
				Tag:  n.Data,
				Mode: mode,
			})
		})
	}

	content, err := renderChildren(container)
	if err != nil {
		return nil, &i18nmark.ProcessorError{
			Message:     "failed to serialize HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	result.Content = content
	return result, nil
}

// annotatePageTitle binds the reserved page-title key to the page heading,
// whatever text it currently shows.
func (p *HTMLProcessor) annotatePageTitle(doc *goquery.Document, result *i18nmark.AnnotateResult) {
	doc.Find(DefaultSelectors[i18nmark.RolePageTitle]).Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if p.skipped(n) {
			return
		}
		textNode, sole := ownText(n)
		if textNode == nil {
			return
		}
		mode := p.apply(n, textNode, sole, i18nmark.PageTitleKey)
		result.Introduced = append(result.Introduced, i18nmark.AnnotatedElement{
			Key:  i18nmark.PageTitleKey,
			Text: collapse(textNode.Data),
			Role: i18nmark.RolePageTitle,
			Tag:  n.Data,
			Mode: mode,
		})
	})
}

// apply keys the element itself when the text is its only content, otherwise
// wraps the trimmed text in a keyed span and leaves the surrounding whitespace
// where it was.
func (p *HTMLProcessor) apply(n, textNode *html.Node, sole bool, key string) i18nmark.AnnotationMode {
	if sole {
		setAttr(n, i18nmark.KeyAttr, key)
		return i18nmark.ModeAttribute
	}

	leading, core, trailing := splitWhitespace(textNode.Data)
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: i18nmark.KeyAttr, Val: key}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: core})

	if leading != "" {
		n.InsertBefore(&html.Node{Type: html.TextNode, Data: leading}, textNode)
	}
	n.InsertBefore(span, textNode)
	if trailing != "" {
		n.InsertBefore(&html.Node{Type: html.TextNode, Data: trailing}, textNode)
	}
	n.RemoveChild(textNode)
	return i18nmark.ModeWrapped
}

// skipped reports whether n must not receive a text key: it is keyed
// already, or it or an ancestor is ignored or inside keyed content.
func (p *HTMLProcessor) skipped(n *html.Node) bool {
	if n != nil && hasAttr(n, i18nmark.KeyAttr) {
		return true
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if p.ignoredTags[strings.ToLower(cur.Data)] {
			return true
		}
		if hasAttr(cur, i18nmark.NoTranslateAttr) {
			return true
		}
		if cur != n && hasAttr(cur, i18nmark.KeyAttr) {
			return true
		}
	}
	return false
}

// ExtractDocument splits a full HTML document around its body content.
// Byte offsets come from the tokenizer so Head and Tail are returned verbatim.
// When the body holds the delimiter comments written by the page shell, only
// the region between them is returned as Body.
func (p *HTMLProcessor) ExtractDocument(document string) (*Document, error) {
	z := html.NewTokenizer(strings.NewReader(document))

	var title strings.Builder
	inTitle, seenBody := false, false
	offset, bodyStart, bodyEnd := 0, -1, -1
	markStart, markEnd := -1, -1

loop:
	for {
		tt := z.Next()
		size := len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				break loop
			}
			return nil, &i18nmark.StructuralError{
				Message: "failed to tokenize document",
				Cause:   z.Err(),
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "title":
				inTitle = !seenBody
			case "body":
				if !seenBody {
					seenBody = true
					bodyStart = offset + size
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "title":
				inTitle = false
			case "body":
				if seenBody && bodyEnd < 0 {
					bodyEnd = offset
				}
			}
		case html.TextToken:
			if inTitle {
				title.Write(z.Text())
			}
		case html.CommentToken:
			if !seenBody || bodyEnd >= 0 {
				break
			}
			switch strings.TrimSpace(string(z.Text())) {
			case i18nmark.BodyStartComment:
				if markStart < 0 {
					markStart = offset + size
				}
			case i18nmark.BodyEndComment:
				if markStart >= 0 && markEnd < 0 {
					markEnd = offset
				}
			}
		}

		offset += size
	}

	if bodyStart < 0 {
		return nil, &i18nmark.StructuralError{Message: "no <body> element found"}
	}
	if bodyEnd < 0 {
		return nil, &i18nmark.StructuralError{Message: "no </body> end tag found"}
	}

	// A page rendered from the shell: only the delimited region is page content.
	if markStart >= 0 && markEnd >= markStart {
		bodyStart, bodyEnd = markStart, markEnd
	}

	return &Document{
		Title: strings.TrimSpace(title.String()),
		Head:  document[:bodyStart],
		Body:  document[bodyStart:bodyEnd],
		Tail:  document[bodyEnd:],
	}, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// orderEntries sorts entries by role priority, keeping catalog order within a role.
func orderEntries(entries []Entry) []Entry {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i].Role) < rank(ordered[j].Role)
	})
	return ordered
}

func rank(r i18nmark.Role) int {
	if p := r.Priority(); p >= 0 {
		return p
	}
	return len(i18nmark.RolePriority)
}

// ownText returns the element's single non-blank direct text child. sole is
// false when the element also has element children, which then must carry no
// text of their own (icons and the like).
func ownText(n *html.Node) (text *html.Node, sole bool) {
	sole = true
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			if text != nil {
				return nil, false
			}
			text = c
		case html.ElementNode:
			if hasText(c) {
				return nil, false
			}
			sole = false
		}
	}
	return text, sole
}

func hasText(n *html.Node) bool {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data) != ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasText(c) {
			return true
		}
	}
	return false
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// collapse trims s and reduces internal whitespace runs to a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitWhitespace splits s into its leading whitespace, core and trailing whitespace.
func splitWhitespace(s string) (leading, core, trailing string) {
	trimmedLeft := strings.TrimLeft(s, " \t\n\r\f")
	leading = s[:len(s)-len(trimmedLeft)]
	core = strings.TrimRight(trimmedLeft, " \t\n\r\f")
	trailing = trimmedLeft[len(core):]
	return leading, core, trailing
}

func parseFragment(fragment string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, err
	}
	container := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func renderChildren(container *html.Node) (string, error) {
	var b strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Verify HTMLProcessor implements MarkupProcessor
var _ MarkupProcessor = (*HTMLProcessor)(nil)
