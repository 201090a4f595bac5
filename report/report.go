// Package report summarizes an i18nmark run as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/ZaguanLabs/i18nmark/cache"
	"github.com/ZaguanLabs/i18nmark/locale"
)

// Report is the summary of one run. Sections that did not run are nil.
type Report struct {
	DryRun       bool                    `json:"dry_run,omitempty"`
	Files        []*i18nmark.FileResult  `json:"files,omitempty"`
	Reference    *locale.ReferenceUpdate `json:"reference,omitempty"`
	RefStatus    locale.Status           `json:"reference_status,omitempty"`
	Locales      *locale.BuildReport     `json:"locales,omitempty"`
	SuggestError string                  `json:"suggest_error,omitempty"`
	Cache        *cache.Stats            `json:"cache,omitempty"`
	ElapsedMs    int64                   `json:"elapsed_ms"`
}

// SetElapsed records the run duration.
func (r *Report) SetElapsed(d time.Duration) {
	r.ElapsedMs = d.Milliseconds()
}

// FailedFiles returns the number of pages that were skipped.
func (r *Report) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == i18nmark.FileFailed {
			n++
		}
	}
	return n
}

// IntroducedKeys returns the number of keys introduced across all pages.
func (r *Report) IntroducedKeys() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Introduced)
	}
	return n
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// WriteText writes a human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if r.Files != nil {
		r.writeFiles(tw)
	}
	if r.Reference != nil {
		r.writeReference(tw)
	}
	if r.Locales != nil {
		r.writeLocales(tw)
	}
	if r.Cache != nil {
		fmt.Fprintf(tw, "Cache: %d hits, %d misses (%.1f%%)\n",
			r.Cache.Hits, r.Cache.Misses, r.Cache.HitRate()*100)
	}

	fmt.Fprintf(tw, "Done in %v\n", (time.Duration(r.ElapsedMs) * time.Millisecond).Round(time.Millisecond))
	return tw.Flush()
}

func (r *Report) writeFiles(w io.Writer) {
	verb := "annotated"
	if r.DryRun {
		verb = "annotated (dry run)"
	}
	fmt.Fprintf(w, "Pages: %d %s, %d failed, %d keys introduced\n",
		len(r.Files)-r.FailedFiles(), verb, r.FailedFiles(), r.IntroducedKeys())

	for _, f := range r.Files {
		name := filepath.Base(f.Path)
		if f.Status == i18nmark.FileFailed {
			fmt.Fprintf(w, "  ✗ %s\t%s\n", name, f.Error)
			continue
		}
		fmt.Fprintf(w, "  ✓ %s\t%s\tintroduced %d\texisting %d\n",
			name, f.PageName, len(f.Introduced), len(f.Existing))
		if r.DryRun {
			for _, key := range f.Introduced {
				fmt.Fprintf(w, "      + %s\n", key)
			}
		}
	}
	fmt.Fprintln(w)
}

func (r *Report) writeReference(w io.Writer) {
	status := ""
	if r.RefStatus != "" {
		status = fmt.Sprintf(" [%s]", r.RefStatus)
	}
	fmt.Fprintf(w, "Reference%s: %d added, %d conflicts, %d unchanged\n",
		status, len(r.Reference.Added), len(r.Reference.Conflicts), r.Reference.Diff.Unchanged)

	for _, key := range r.Reference.Added {
		fmt.Fprintf(w, "  + %s\n", key)
	}
	for _, c := range r.Reference.Conflicts {
		fmt.Fprintf(w, "  ~ %s: %q kept, page shows %q\n", c.Key, c.Old, c.New)
	}
	fmt.Fprintln(w)
}

func (r *Report) writeLocales(w io.Writer) {
	fmt.Fprintf(w, "Locales (reference %s):\n", r.Locales.Reference)

	for _, l := range r.Locales.Languages {
		fmt.Fprintf(w, "  %s\t%s\tmissing %d\tseeded %d\tuntranslated %d\textra %d",
			l.Lang, l.Status, len(l.Missing), len(l.Seeded), len(l.Untranslated), len(l.Extra))
		if l.Status == locale.StatusRepaired || l.Status == locale.StatusUnrecoverable {
			fmt.Fprintf(w, "\tfragments %d recovered, %d dropped", l.FragmentsRecovered, l.FragmentsDropped)
		}
		fmt.Fprintln(w)
		if len(l.Suggestions) > 0 {
			fmt.Fprintf(w, "    %d suggestions\n", len(l.Suggestions))
		}
	}
	if r.SuggestError != "" {
		fmt.Fprintf(w, "  suggestions failed: %s\n", r.SuggestError)
	}
	fmt.Fprintln(w)
}
