package i18nmark

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// FileStatus is the outcome of processing one page file.
type FileStatus string

const (
	// FileAnnotated means the page was parsed and annotated.
	FileAnnotated FileStatus = "annotated"
	// FileFailed means the page was skipped and left untouched.
	FileFailed FileStatus = "failed"
)

// FileResult is the outcome for one page file.
type FileResult struct {
	Path       string     `json:"path"`
	Status     FileStatus `json:"status"`
	PageName   string     `json:"page_name,omitempty"`
	Introduced []string   `json:"introduced"`
	Existing   []string   `json:"existing"`
	Cached     bool       `json:"cached,omitempty"`
	Written    bool       `json:"written"`
	Error      string     `json:"error,omitempty"`

	Page *PageResult `json:"-"`
	Err  error       `json:"-"`
	mode os.FileMode
}

func (r *FileResult) fail(err error) {
	r.Status = FileFailed
	r.Err = err
	r.Error = err.Error()
}

// ProcessFiles reads and annotates every page file, at most workers at a time.
// Results are returned in input order. A failing file is recorded in its
// result and never stops the others; nothing is written.
func (a *Annotator) ProcessFiles(ctx context.Context, paths []string, workers int) []*FileResult {
	results := make([]*FileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for i, path := range paths {
		results[i] = &FileResult{Path: path, Introduced: []string{}, Existing: []string{}}
		res := results[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.fail(err)
				return nil
			}
			a.processFile(res)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *Annotator) processFile(res *FileResult) {
	info, err := os.Stat(res.Path)
	if err != nil {
		res.fail(err)
		log.Error().Err(err).Str("file", res.Path).Msg("cannot read page")
		return
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		res.fail(err)
		log.Error().Err(err).Str("file", res.Path).Msg("cannot read page")
		return
	}
	res.mode = info.Mode().Perm()

	page, err := a.ProcessPage(string(data))
	if err != nil {
		var se *StructuralError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = res.Path
		}
		res.fail(err)
		log.Error().Err(err).Str("file", res.Path).Msg("page skipped")
		return
	}

	res.Status = FileAnnotated
	res.Page = page
	res.PageName = page.PageName
	res.Introduced = page.Annotation.IntroducedKeys()
	res.Existing = page.Annotation.ExistingKeys()
	res.Cached = page.Annotation.Cached

	log.Debug().
		Str("file", res.Path).
		Str("page", page.PageName).
		Int("introduced", len(res.Introduced)).
		Int("existing", len(res.Existing)).
		Bool("cached", res.Cached).
		Msg("annotated page")
}

// WriteFiles renders every annotated page with the given translations and
// overwrites its file. Failed results are skipped. A render or write error
// marks that result failed without affecting the others.
func (a *Annotator) WriteFiles(ctx context.Context, results []*FileResult, translations Translations, workers int) {
	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for _, res := range results {
		if res.Status != FileAnnotated || res.Page == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.fail(err)
				return nil
			}

			content, err := a.Render(res.Page, translations)
			if err != nil {
				res.fail(fmt.Errorf("render: %w", err))
				log.Error().Err(err).Str("file", res.Path).Msg("render failed")
				return nil
			}

			mode := res.mode
			if mode == 0 {
				mode = 0o644
			}
			if err := os.WriteFile(res.Path, []byte(content), mode); err != nil {
				res.fail(fmt.Errorf("write: %w", err))
				log.Error().Err(err).Str("file", res.Path).Msg("write failed")
				return nil
			}

			res.Written = true
			log.Info().
				Str("file", res.Path).
				Int("introduced", len(res.Introduced)).
				Msg("page written")
			return nil
		})
	}
	_ = g.Wait()
}

// CollectInventory unions the key inventories of all annotated pages.
// When two pages show different texts for a key, the first page in input order wins.
func CollectInventory(results []*FileResult) map[string]string {
	inventory := map[string]string{}
	for _, res := range results {
		if res.Status != FileAnnotated || res.Page == nil {
			continue
		}
		for key, text := range res.Page.Annotation.Inventory() {
			if key == PageTitleKey {
				continue
			}
			if _, ok := inventory[key]; !ok {
				inventory[key] = text
			}
		}
	}
	return inventory
}
