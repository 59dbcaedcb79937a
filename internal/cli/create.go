package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/pageport/internal/ir"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	RequestFile    string
	Request        ir.PortableRequest
	Rows           int
	Columns        int
	NoAlphabet     bool
	NoQuickPhrases bool
}

// CreateResult is the create command payload.
type CreateResult struct {
	Plan        *ir.PortablePlan `json:"plan"`
	Fingerprint string           `json:"fingerprint"`
}

// RenderText writes the plan for a terminal.
func (r CreateResult) RenderText(w io.Writer) {
	renderPortable(w, r.Plan)
	fprintf(w, "\nFingerprint: %s\n", r.Fingerprint)
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Plan one portable pageset across several systems",
		Long: `Plan a portable pageset: one base grid fitted independently to each
target system, with per-system creation steps and cross-system notes.
Flags override values from --request.

Examples:
  pageport create --system TouchChat --system Proloquo2Go
  pageport create --system TouchChat --system "Grid for iPad" --rows 8 --columns 12 --access-method "eye gaze"
  pageport create --request portable.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.RequestFile, "request", "", "YAML or JSON request file")
	f.StringArrayVar(&opts.Request.TargetSystems, "system", nil, "target system (repeatable)")
	f.StringVar(&opts.Request.PagesetName, "name", "", "pageset name")
	f.IntVar(&opts.Rows, "rows", 0, "base grid rows")
	f.IntVar(&opts.Columns, "columns", 0, "base grid columns")
	f.StringVar(&opts.Request.SymbolSet, "symbol-set", "", "preferred symbol library")
	f.StringSliceVar(&opts.Request.Vocabulary, "vocab", nil, "fringe vocabulary to seed (comma separated)")
	f.StringVar(&opts.Request.AccessMethod, "access-method", "", "access method, e.g. touch, switch scanning, eye gaze")
	f.BoolVar(&opts.NoAlphabet, "no-alphabet", false, "omit the alphabet page")
	f.BoolVar(&opts.NoQuickPhrases, "no-quick-phrases", false, "omit the quick phrases page")
	f.StringVar(&opts.Request.AlphabetLanguage, "alphabet-language", "", "BCP 47 language for the alphabet preview")
	f.StringVar(&opts.Request.AlphabetScript, "alphabet-script", "", "ISO 15924 script for the alphabet preview")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	req, err := opts.buildRequest(cmd)
	if err != nil {
		return report(formatter, ExitCommandError, ErrCodeRequestFile, err.Error(), nil)
	}

	cat, err := loadCatalog(ctx, opts.RootOptions)
	if err != nil {
		return reportCatalogError(formatter, err)
	}
	p, err := newPlanner(opts.RootOptions, cat)
	if err != nil {
		return report(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	plan, err := p.CreatePortable(ctx, req)
	if err != nil {
		return reportPlanError(formatter, err)
	}

	fp, err := ir.PortableFingerprint(plan)
	if err != nil {
		return report(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	formatter.VerboseLog("planned %d system(s) from base grid %s", len(plan.Systems), plan.BaseGrid)
	return formatter.Success(CreateResult{Plan: plan, Fingerprint: fp})
}

// buildRequest starts from the request file, if any, and applies every
// flag the user set.
func (o *CreateOptions) buildRequest(cmd *cobra.Command) (ir.PortableRequest, error) {
	var req ir.PortableRequest
	if o.RequestFile != "" {
		if err := readRequest(o.RequestFile, &req); err != nil {
			return ir.PortableRequest{}, err
		}
	}

	f := cmd.Flags()
	if f.Changed("system") {
		req.TargetSystems = o.Request.TargetSystems
	}
	setString(f.Changed("name"), &req.PagesetName, o.Request.PagesetName)
	setString(f.Changed("symbol-set"), &req.SymbolSet, o.Request.SymbolSet)
	setString(f.Changed("access-method"), &req.AccessMethod, o.Request.AccessMethod)
	setString(f.Changed("alphabet-language"), &req.AlphabetLanguage, o.Request.AlphabetLanguage)
	setString(f.Changed("alphabet-script"), &req.AlphabetScript, o.Request.AlphabetScript)
	if f.Changed("rows") {
		req.BaseRows = ir.Int(o.Rows)
	}
	if f.Changed("columns") {
		req.BaseColumns = ir.Int(o.Columns)
	}
	if f.Changed("vocab") {
		req.Vocabulary = o.Request.Vocabulary
	}
	if f.Changed("no-alphabet") {
		req.IncludeAlphabet = ir.Bool(!o.NoAlphabet)
	}
	if f.Changed("no-quick-phrases") {
		req.IncludeQuickPhrases = ir.Bool(!o.NoQuickPhrases)
	}
	return req, nil
}
