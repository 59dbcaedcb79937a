package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/pageport/internal/alphabet"
	"github.com/roach88/pageport/internal/catalog"
	"github.com/roach88/pageport/internal/planner"
	"github.com/roach88/pageport/internal/store"
)

// Error codes reported by commands. Catalog load failures reuse the
// loader's E00x codes and validation failures the compiler's E1xx codes.
const (
	ErrCodeGeneric         = catalog.ErrCodeGeneric
	ErrCodeNotFound        = catalog.ErrCodeNotFound
	ErrCodeInvalidArgument = "E201" // request failed boundary validation
	ErrCodeAdvisory        = "E202" // target system not catalogued and no grid given
	ErrCodeRequestFile     = "E203" // request file unreadable or malformed
	ErrCodeStore           = "E204" // SQLite snapshot read or write failed
	ErrCodeTestFailed      = "E205" // one or more scenarios failed
)

// loadCatalog builds the catalog for a command: the SQLite snapshot when
// a database is configured, else the built-in catalog. Catalog
// directories are appended in both cases.
func loadCatalog(ctx context.Context, opts *RootOptions) (*catalog.Catalog, error) {
	if opts.Database == "" {
		cat, errs := catalog.Load(opts.CatalogDirs, catalog.LoadModeFailFast)
		if len(errs) > 0 {
			return nil, errs[0]
		}
		slog.Debug("catalog loaded", "source", "cue", "extensions", len(opts.CatalogDirs))
		return cat, nil
	}

	st, err := openSnapshot(opts.Database)
	if err != nil {
		return nil, err
	}
	defer closeStore(st)

	base, err := catalog.FromSnapshot(ctx, st)
	if err != nil {
		return nil, &catalog.LoadError{Code: ErrCodeStore, Message: err.Error()}
	}

	extra := make([]*catalog.Catalog, 0, len(opts.CatalogDirs))
	for _, dir := range opts.CatalogDirs {
		cat, errs := catalog.LoadDir(dir, catalog.LoadModeFailFast)
		if len(errs) > 0 {
			return nil, errs[0]
		}
		extra = append(extra, cat)
	}
	merged, err := base.Merge(extra...)
	if err != nil {
		return nil, &catalog.LoadError{Code: catalog.ErrCodeInvalid, Message: err.Error()}
	}
	slog.Debug("catalog loaded", "source", opts.Database, "extensions", len(extra))
	return merged, nil
}

// openSnapshot opens an existing snapshot database. Reading never
// creates one.
func openSnapshot(path string) (*store.Store, error) {
	st, err := store.OpenExisting(path)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &catalog.LoadError{Code: ErrCodeNotFound, Message: err.Error()}
	}
	if err != nil {
		return nil, &catalog.LoadError{Code: ErrCodeStore, Message: err.Error()}
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// newPlanner wires the planner to a catalog and a cached alphabet
// resolver.
func newPlanner(opts *RootOptions, cat *catalog.Catalog) (*planner.Planner, error) {
	resolver, err := alphabet.NewCached(alphabet.NewBuiltin(), opts.AlphabetCache)
	if err != nil {
		return nil, fmt.Errorf("failed to create alphabet resolver: %w", err)
	}
	return planner.New(cat, resolver), nil
}

// reportCatalogError writes a catalog load failure and returns the exit
// error for it.
func reportCatalogError(f *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
	}
	return report(f, ExitCommandError, code, err.Error(), nil)
}

// report writes an error response and returns a silent exit error so the
// message is not printed twice.
func report(f *OutputFormatter, exitCode int, code, message string, details any) error {
	if err := f.Error(code, message, details); err != nil {
		return err
	}
	return &ExitError{Code: exitCode, Message: message, Silent: true}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
