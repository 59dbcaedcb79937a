package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/pageport/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string   // "json" | "text"
	CatalogDirs []string // CUE catalog extensions
	Database    string   // SQLite catalog snapshot

	// AlphabetCache sizes the alphabet LRU. Zero means the default.
	AlphabetCache int

	// IDs produces response trace ids. Nil means UUIDv7.
	IDs TraceIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pageport CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pageport",
		Short: "pageport - AAC pageset conversion planner",
		Long: `Plan the move of an AAC pageset between vendor systems.

pageport resolves vendor catalog entries, fits grids to what each target
system supports, and lays out the pages and migration steps needed to
keep a learner's motor plan intact.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			applyConfig(cmd, opts, cfg)

			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			logLevel := cfg.LogLevel
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringArrayVar(&opts.CatalogDirs, "catalog", nil, "extra CUE catalog directory (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "read the catalog from a SQLite snapshot")

	// Add subcommands
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewProcessorsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// applyConfig fills options the user did not set on the command line
// from the environment.
func applyConfig(cmd *cobra.Command, opts *RootOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.Format = cfg.Format
	}
	if !flags.Changed("catalog") {
		opts.CatalogDirs = cfg.CatalogDirs
	}
	if !flags.Changed("db") {
		opts.Database = cfg.CatalogDB
	}
	if opts.AlphabetCache == 0 {
		opts.AlphabetCache = cfg.AlphabetCache
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
