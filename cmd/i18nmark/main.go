// Command i18nmark annotates admin dashboard pages with translation keys and
// rebuilds their locale tables.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/ZaguanLabs/i18nmark/config"
	"github.com/ZaguanLabs/i18nmark/report"
)

// errPagesFailed is returned after the report when at least one page was skipped.
var errPagesFailed = errors.New("some pages failed")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	catalog    string
	locales    string
	langs      []string
	workers    int
	jsonOut    bool
	logLevel   string
	suggest    bool
}

func run(args []string, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "i18nmark",
		Short: "Annotate admin pages with translation keys and rebuild locale tables",
		Long: `i18nmark post-processes static admin dashboard pages.

It marks catalog strings in each page body with data-i18n keys, merges the
keys into the reference locale table and rebuilds every target language
table, repairing locale files that hold concatenated JSON objects.

Commands:
  run       Annotate pages, then build locale tables
  annotate  Annotate pages only
  locales   Build and repair locale tables only
  catalog   Print the annotation catalog
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", config.DefaultPath, "Configuration file")
	pf.StringVar(&g.catalog, "catalog", "", "Catalog file (default: built-in catalog)")
	pf.StringVar(&g.locales, "locales", "", "Locale directory")
	pf.StringSliceVar(&g.langs, "lang", nil, "Page languages, reference first (e.g. en,ar,fa)")
	pf.IntVar(&g.workers, "workers", 0, "Pages processed in parallel")
	pf.BoolVar(&g.jsonOut, "json", false, "Print the report as JSON")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&g.suggest, "suggest", false, "Ask a model for suggestions for untranslated keys")

	root.AddCommand(
		newRunCmd(g),
		newAnnotateCmd(g),
		newLocalesCmd(g),
		newCatalogCmd(g),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads the configuration file and applies flag overrides.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = g.catalog
	}
	if flags.Changed("locales") {
		cfg.LocalesDir = g.locales
	}
	if flags.Changed("lang") {
		cfg.Languages = g.langs
		if len(g.langs) > 0 {
			cfg.ReferenceLang = g.langs[0]
		}
	}
	if flags.Changed("workers") {
		cfg.Workers = g.workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if flags.Changed("suggest") {
		cfg.Suggest.Enabled = g.suggest
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.SetupLogging(os.Stderr)
	return cfg, nil
}

// writeReport prints the report in the selected format.
func (g *globalFlags) writeReport(w io.Writer, rep *report.Report) error {
	if g.jsonOut {
		return rep.WriteJSON(w)
	}
	return rep.WriteText(w)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", i18nmark.Name, i18nmark.FullVersion())
			fmt.Fprintf(out, "  %s\n", i18nmark.Description)
			if i18nmark.BuildDate != "unknown" && i18nmark.BuildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", i18nmark.BuildDate)
			}
			return nil
		},
	}
}
