package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/pageport/internal/catalog"
	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/store"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, validate and export the pageset catalog",
	}

	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogSystemsCommand(rootOpts))
	cmd.AddCommand(newCatalogValidateCommand(rootOpts))
	cmd.AddCommand(newCatalogExportCommand(rootOpts))
	cmd.AddCommand(newCatalogDumpCommand(rootOpts))

	return cmd
}

// PagesetList is the catalog list payload.
type PagesetList struct {
	Pagesets []ir.PagesetEntry `json:"pagesets"`
}

// RenderText writes one row per pageset.
func (l PagesetList) RenderText(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fprintf(tw, "SYSTEM\tPAGESET\tGRID\tSYMBOLS\n")
	for _, e := range l.Pagesets {
		fprintf(tw, "%s\t%s\t%s\t%s\n", e.System, e.Pageset, e.DefaultGrid, joinOrNone(e.SymbolLibraries))
	}
	_ = tw.Flush()
}

// SystemList is the catalog systems payload.
type SystemList struct {
	Systems []ir.SystemProfile `json:"systems"`
}

// RenderText writes one row per system profile.
func (l SystemList) RenderText(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fprintf(tw, "SYSTEM\tROWS\tCOLUMNS\tSYMBOLS\tIMPORT\n")
	for _, p := range l.Systems {
		r := p.GridRange
		fprintf(tw, "%s\t%d-%d\t%d-%d\t%s\t%s\n", p.System, r.MinRows, r.MaxRows, r.MinColumns, r.MaxColumns,
			joinOrNone(p.SupportedSymbols), joinOrNone(p.ImportFormats))
	}
	_ = tw.Flush()
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List catalogued pagesets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			ctx := commandContext(cmd)
			if system != "" && rootOpts.Database != "" && len(rootOpts.CatalogDirs) == 0 {
				entries, err := listFromSnapshot(ctx, rootOpts.Database, system)
				if err != nil {
					return reportCatalogError(formatter, err)
				}
				return formatter.Success(PagesetList{Pagesets: entries})
			}

			cat, err := loadCatalog(ctx, rootOpts)
			if err != nil {
				return reportCatalogError(formatter, err)
			}
			entries := cat.Entries()
			if system != "" {
				entries = cat.FindBySystem(system)
			}
			return formatter.Success(PagesetList{Pagesets: entries})
		},
	}
	cmd.Flags().StringVar(&system, "system", "", "only pagesets for this system")
	return cmd
}

// listFromSnapshot reads one system's pagesets straight from the
// snapshot's per-system index without rebuilding the catalog.
func listFromSnapshot(ctx context.Context, path, system string) ([]ir.PagesetEntry, error) {
	st, err := openSnapshot(path)
	if err != nil {
		return nil, err
	}
	defer closeStore(st)

	entries, err := st.PagesetsBySystem(ctx, system)
	if err != nil {
		return nil, &catalog.LoadError{Code: ErrCodeStore, Message: err.Error()}
	}
	slog.Debug("pagesets listed from snapshot", "source", path, "system", system, "count", len(entries))
	return entries, nil
}

func newCatalogSystemsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "systems",
		Short:         "List system profiles and their supported grid ranges",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			cat, err := loadCatalog(commandContext(cmd), rootOpts)
			if err != nil {
				return reportCatalogError(formatter, err)
			}
			return formatter.Success(SystemList{Systems: cat.Systems()})
		},
	}
}

// ValidationIssue is one problem found in a catalog directory.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

func newCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dir>",
		Short: "Validate a catalog extension directory",
		Long: `Validate a directory of CUE catalog records against the catalog schema
and against the built-in catalog (duplicate pagesets and system profiles
are rejected). All problems are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogValidate(rootOpts, args[0], cmd)
		},
	}
}

func runCatalogValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	files, _ := catalog.FindCUEFiles(dir)
	formatter.VerboseLog("Found %d CUE file(s) in %s", len(files), dir)

	_, errs := catalog.Load([]string{dir}, catalog.LoadModeCollectAll)
	if len(errs) == 0 {
		if opts.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fprintf(formatter.Writer, "✓ %s is valid\n", dir)
		return nil
	}

	issues := make([]ValidationIssue, 0, len(errs))
	for _, err := range errs {
		issues = append(issues, toIssue(err))
	}

	if opts.Format == "json" {
		if err := formatter.encode(CLIResponse{
			Status:  "error",
			Data:    ValidationResult{Valid: false, Errors: issues},
			Error:   &CLIError{Code: issues[0].Code, Message: fmt.Sprintf("%d validation error(s)", len(issues))},
			TraceID: formatter.TraceID,
		}); err != nil {
			return err
		}
	} else {
		fprintf(formatter.Writer, "✗ %s has %d error(s)\n", dir, len(issues))
		for _, is := range issues {
			loc := ""
			if is.File != "" {
				loc = fmt.Sprintf(" %s:%d", is.File, is.Line)
			}
			fprintf(formatter.Writer, "  [%s]%s %s\n", is.Code, loc, is.Message)
		}
	}
	return &ExitError{Code: ExitFailure, Message: "catalog validation failed", Silent: true}
}

func toIssue(err error) ValidationIssue {
	var loadErr *catalog.LoadError
	if !errors.As(err, &loadErr) {
		return ValidationIssue{Code: ErrCodeGeneric, Message: err.Error()}
	}
	is := ValidationIssue{Code: loadErr.Code, Message: loadErr.Message}
	if loadErr.Pos.IsValid() {
		is.File = loadErr.Pos.Filename()
		is.Line = loadErr.Pos.Line()
	}
	return is
}

// ExportResult reports a written snapshot.
type ExportResult struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Pagesets    int    `json:"pagesets"`
	Systems     int    `json:"systems"`
	Processors  int    `json:"processors"`
}

// RenderText summarizes the snapshot.
func (r ExportResult) RenderText(w io.Writer) {
	fprintf(w, "Wrote %d pageset(s), %d system(s), %d processor(s) to %s\n",
		r.Pagesets, r.Systems, r.Processors, r.Path)
	fprintf(w, "Fingerprint: %s\n", r.Fingerprint)
}

func newCatalogExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <db-path>",
		Short: "Write the loaded catalog to a SQLite snapshot",
		Long: `Write the loaded catalog (built-in plus any --catalog directories) to a
SQLite snapshot. The snapshot replaces any catalog already in the file
and can be read back with --db.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogExport(rootOpts, args[0], cmd)
		},
	}
}

func runCatalogExport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	cat, err := loadCatalog(ctx, opts)
	if err != nil {
		return reportCatalogError(formatter, err)
	}

	st, err := store.Open(path)
	if err != nil {
		return report(formatter, ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	defer closeStore(st)

	if err := cat.Export(ctx, st); err != nil {
		return report(formatter, ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	fp, err := cat.Fingerprint()
	if err != nil {
		return report(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	pagesets, systems, processors, err := st.CountRecords(ctx)
	if err != nil {
		return report(formatter, ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	slog.Info("catalog exported", "path", path, "fingerprint", fp)
	return formatter.Success(ExportResult{
		Path:        path,
		Fingerprint: fp,
		Pagesets:    pagesets,
		Systems:     systems,
		Processors:  processors,
	})
}

// Dump views.
const (
	dumpPagesets   = "pagesets"
	dumpProcessors = "processors"
)

// pagesetView is the published shape of a pageset: layout and access
// notes are planner inputs and stay out of it.
type pagesetView struct {
	System          string      `json:"system"`
	Pageset         string      `json:"pageset"`
	Description     string      `json:"description"`
	DefaultGrid     ir.GridSize `json:"defaultGrid"`
	SymbolLibraries []string    `json:"symbolLibraries"`
	TypicalUseCases []string    `json:"typicalUseCases"`
	ConversionNotes []string    `json:"conversionNotes"`
}

func newCatalogDumpCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <pagesets|processors>",
		Short: "Print a catalog view as indented JSON",
		Long: `Print the pageset or processor catalog as indented JSON, in catalog
order. The output is plain JSON regardless of --format.`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{dumpPagesets, dumpProcessors},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			view := strings.ToLower(args[0])
			if view != dumpPagesets && view != dumpProcessors {
				return report(formatter, ExitCommandError, ErrCodeInvalidArgument,
					fmt.Sprintf("unknown view %q: must be %s or %s", args[0], dumpPagesets, dumpProcessors), nil)
			}

			cat, err := loadCatalog(commandContext(cmd), rootOpts)
			if err != nil {
				return reportCatalogError(formatter, err)
			}

			var data any = cat.Processors()
			if view == dumpPagesets {
				entries := cat.Entries()
				views := make([]pagesetView, len(entries))
				for i, e := range entries {
					views[i] = pagesetView{
						System:          e.System,
						Pageset:         e.Pageset,
						Description:     e.Description,
						DefaultGrid:     e.DefaultGrid,
						SymbolLibraries: e.SymbolLibraries,
						TypicalUseCases: e.TypicalUseCases,
						ConversionNotes: e.ConversionNotes,
					}
				}
				data = views
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}
}
