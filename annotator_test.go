package i18nmark

import (
	"errors"
	"strings"
	"testing"
)

type captureRenderer struct {
	last PageData
}

func (r *captureRenderer) Render(page PageData) (string, error) {
	r.last = page
	return "<rendered>" + page.Body + "</rendered>", nil
}

func TestAnnotator_NoProcessor(t *testing.T) {
	a := NewAnnotator(nil)

	_, err := a.Annotate("<a>Dashboard</a>", "")
	var pe *ProcessorError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProcessorError, got %v", err)
	}

	_, err = a.ProcessPage("<html><body></body></html>")
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProcessorError from ProcessPage, got %v", err)
	}
}

func TestAnnotator_Defaults(t *testing.T) {
	a := NewAnnotator(nil)

	if a.ReferenceLang() != "en" {
		t.Errorf("ReferenceLang = %q", a.ReferenceLang())
	}
	if strings.Join(a.Languages(), ",") != "en,ar,fa" {
		t.Errorf("Languages = %v", a.Languages())
	}
}

func TestAnnotator_PageName(t *testing.T) {
	a := NewAnnotator(nil)

	tests := []struct {
		title string
		want  string
	}{
		{"EV Charging Platform - Stations", "Stations"},
		{"  EV Charging Platform -   Charging Sessions ", "Charging Sessions"},
		{"Stations", "Stations"},
		{"", DefaultPageName},
		{"Other Product - Users", "Other Product - Users"},
	}

	for _, tt := range tests {
		if got := a.PageName(tt.title); got != tt.want {
			t.Errorf("PageName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}

	custom := NewAnnotator(nil, WithProductName("Fleet"))
	if got := custom.PageName("Fleet - Users"); got != "Users" {
		t.Errorf("custom product PageName = %q", got)
	}
}

func TestPagePrefix(t *testing.T) {
	tests := map[string]string{
		"Stations":             "stations",
		"Charging Sessions":    "charging_sessions",
		"Reports & Analytics":  "reports_analytics",
		"  User-Management 2 ": "user_management_2",
		"Admin Dashboard":      "admin_dashboard",
		"":                     "",
	}

	for name, want := range tests {
		if got := PagePrefix(name); got != want {
			t.Errorf("PagePrefix(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestTranslations_WithPageTitle(t *testing.T) {
	tr := Translations{
		"en": {"dashboard": "Dashboard"},
		"fa": {"dashboard": "داشبورد"},
	}

	out := tr.WithPageTitle("Stations")

	for _, lang := range []string{"en", "fa"} {
		if out[lang][PageTitleKey] != "Stations" {
			t.Errorf("%s page-title = %q", lang, out[lang][PageTitleKey])
		}
	}
	if _, ok := tr["en"][PageTitleKey]; ok {
		t.Error("WithPageTitle must not modify the receiver")
	}
}

func TestAnnotator_CachesByPrefix(t *testing.T) {
	proc := &stubProcessor{}
	c := mapCache{}
	a := NewAnnotator(nil, WithProcessor(proc), WithCache(c))

	first, err := a.Annotate("<a>Dashboard</a>", "stations")
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Annotate("<a>Dashboard</a>", "stations")
	if err != nil {
		t.Fatal(err)
	}

	if first.Cached || !second.Cached {
		t.Errorf("Cached flags = %v, %v", first.Cached, second.Cached)
	}
	if second.Content != first.Content {
		t.Errorf("cached content = %q, want %q", second.Content, first.Content)
	}
	if proc.calls != 1 {
		t.Errorf("processor called %d times, want 1", proc.calls)
	}

	if _, err := a.Annotate("<a>Dashboard</a>", "users"); err != nil {
		t.Fatal(err)
	}
	if proc.calls != 2 {
		t.Error("a different page prefix should not hit the cache")
	}
}

func TestAnnotator_CatalogChangeInvalidatesCache(t *testing.T) {
	c := mapCache{}
	proc := &stubProcessor{}

	NewAnnotator([]Entry{{Role: RoleNavigation, Key: "dashboard", Text: "Dashboard"}},
		WithProcessor(proc), WithCache(c)).Annotate("<a>Dashboard</a>", "")
	NewAnnotator([]Entry{{Role: RoleNavigation, Key: "home", Text: "Dashboard"}},
		WithProcessor(proc), WithCache(c)).Annotate("<a>Dashboard</a>", "")

	if proc.calls != 2 {
		t.Errorf("expected a cache miss after the catalog changed, got %d calls", proc.calls)
	}
	if len(c) != 2 {
		t.Errorf("expected 2 cache entries, got %d", len(c))
	}
}

func TestAnnotator_RenderWithShell(t *testing.T) {
	r := &captureRenderer{}
	a := NewAnnotator(nil,
		WithProcessor(&stubProcessor{}),
		WithRenderer(r),
		WithLanguages("fa", []string{"fa", "en"}),
	)

	page, err := a.ProcessPage(`<html><head><title>EV Charging Platform - Stations</title></head><body><a>Dashboard</a></body></html>`)
	if err != nil {
		t.Fatal(err)
	}

	out, err := a.Render(page, Translations{"fa": {"dashboard": "داشبورد"}})
	if err != nil {
		t.Fatal(err)
	}

	if out != `<rendered><a data-i18n="dashboard">Dashboard</a></rendered>` {
		t.Errorf("Render = %q", out)
	}
	if page.Content != out {
		t.Error("Render should record the content on the page")
	}
	if r.last.Title != "EV Charging Platform - Stations" {
		t.Errorf("Title = %q", r.last.Title)
	}
	if r.last.Lang != "fa" || r.last.Dir != RTL {
		t.Errorf("Lang/Dir = %s/%s", r.last.Lang, r.last.Dir)
	}
	if len(r.last.Languages) != 2 {
		t.Errorf("Languages = %v", r.last.Languages)
	}
	if r.last.Translations["fa"][PageTitleKey] != "Stations" {
		t.Error("renderer should receive page-title in every table")
	}
}
