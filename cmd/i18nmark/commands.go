package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/ZaguanLabs/i18nmark/catalog"
	"github.com/ZaguanLabs/i18nmark/report"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [pages...]",
		Short: "Annotate pages, then build locale tables",
		Long: `Annotate every page, merge the keys found on the pages into the
reference table, rebuild all locale tables and re-render the pages with
the complete translations. Pages default to the configured patterns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			rep := &report.Report{}
			ctx := cmd.Context()

			pages, err := a.pages(args)
			if err != nil {
				return err
			}

			results := a.annotator.ProcessFiles(ctx, pages, cfg.Workers)
			rep.Files = results

			translations, err := a.buildLocales(ctx, rep, localeOptions{
				inventory: i18nmark.CollectInventory(results),
				prefixes:  annotatedPrefixes(results),
				write:     true,
			})
			if err != nil {
				return err
			}

			a.annotator.WriteFiles(ctx, results, translations, cfg.Workers)
			a.finish(rep, start)

			if err := g.writeReport(cmd.OutOrStdout(), rep); err != nil {
				return err
			}
			if rep.FailedFiles() > 0 {
				return fmt.Errorf("%w: %d of %d", errPagesFailed, rep.FailedFiles(), len(results))
			}
			return nil
		},
	}
}

func newAnnotateCmd(g *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "annotate [pages...]",
		Short: "Annotate pages only",
		Long: `Annotate every page and re-render it with the current locale tables.
Locale files are read but never written. With --dry-run nothing is
written and the keys that would be introduced are listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			rep := &report.Report{DryRun: dryRun}
			ctx := cmd.Context()

			pages, err := a.pages(args)
			if err != nil {
				return err
			}

			results := a.annotator.ProcessFiles(ctx, pages, cfg.Workers)
			rep.Files = results

			if !dryRun {
				// Build in memory so the pages carry complete tables.
				scratch := &report.Report{}
				translations, err := a.buildLocales(ctx, scratch, localeOptions{
					inventory: i18nmark.CollectInventory(results),
					prefixes:  annotatedPrefixes(results),
				})
				if err != nil {
					return err
				}
				a.annotator.WriteFiles(ctx, results, translations, cfg.Workers)
			}
			a.finish(rep, start)

			if err := g.writeReport(cmd.OutOrStdout(), rep); err != nil {
				return err
			}
			if rep.FailedFiles() > 0 {
				return fmt.Errorf("%w: %d of %d", errPagesFailed, rep.FailedFiles(), len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the keys that would be introduced without writing")
	return cmd
}

func newLocalesCmd(g *globalFlags) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "locales",
		Short: "Build and repair locale tables only",
		Long: `Rebuild every target language table from the reference table:
repair malformed files, fill missing keys from catalog translations or
the reference string, and keep extra keys. The reference table itself is
only rewritten in canonical form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			rep := &report.Report{}

			if _, err := a.buildLocales(cmd.Context(), rep, localeOptions{write: !check}); err != nil {
				return err
			}
			a.finish(rep, start)

			return g.writeReport(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report only; do not write locale files")
	return cmd
}

func newCatalogCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the annotation catalog",
		Long:  `Print the effective catalog: every key with its role and canonical text, in role priority order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			entries, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(entries)
			}

			groups := catalog.ByRole(entries)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, role := range i18nmark.RolePriority {
				for _, e := range groups[role] {
					key := e.Key
					if e.PageScoped {
						key = "<page>_" + key
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", role, key, e.Text)
				}
			}
			fmt.Fprintf(tw, "\n%d keys, %d languages with translations\n",
				len(catalog.Keys(entries)), len(catalog.Languages(entries)))
			return tw.Flush()
		},
	}
}
