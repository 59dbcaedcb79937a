package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/planner"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	RequestFile    string
	Request        ir.ConvertRequest
	Rows           int
	Columns        int
	NoAlphabet     bool
	NoQuickPhrases bool
}

// ConvertResult is the convert command payload.
type ConvertResult struct {
	Plan        *ir.ConversionPlan `json:"plan"`
	Fingerprint string             `json:"fingerprint"`
}

// RenderText writes the plan for a terminal.
func (r ConvertResult) RenderText(w io.Writer) {
	renderConversion(w, r.Plan)
	fprintf(w, "\nFingerprint: %s\n", r.Fingerprint)
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Plan a conversion from one pageset to a target system",
		Long: `Plan the conversion of an AAC pageset to a target system.

Resolves the source and target catalog entries, fits the target grid to
the range the target system supports, and lists migration steps and the
custom pages to build. Flags override values from --request.

Exit codes:
  0 - Plan produced
  1 - Target system not catalogued and no grid given
  2 - Command error (invalid arguments, unreadable request or catalog)

Examples:
  pageport convert --target-system TouchChat
  pageport convert --source-system "Grid for iPad" --source-pageset "Super Core 50" --target-system Proloquo2Go
  pageport convert --target-system "New Vendor" --rows 5 --columns 8 --vocab park,pizza
  pageport convert --request convert.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.RequestFile, "request", "", "YAML or JSON request file")
	f.StringVar(&opts.Request.SourceSystem, "source-system", "", "system the learner uses today")
	f.StringVar(&opts.Request.SourcePageset, "source-pageset", "", "pageset the learner uses today")
	f.StringVar(&opts.Request.TargetSystem, "target-system", "", "system to convert to")
	f.StringVar(&opts.Request.TargetPageset, "target-pageset", "", "preferred pageset on the target system")
	f.IntVar(&opts.Rows, "rows", 0, "target grid rows")
	f.IntVar(&opts.Columns, "columns", 0, "target grid columns")
	f.StringVar(&opts.Request.SymbolSet, "symbol-set", "", "preferred symbol library")
	f.BoolVar(&opts.NoAlphabet, "no-alphabet", false, "omit the alphabet page")
	f.BoolVar(&opts.NoQuickPhrases, "no-quick-phrases", false, "omit the quick phrases page")
	f.StringVar(&opts.Request.AlphabetLanguage, "alphabet-language", "", "BCP 47 language for the alphabet preview")
	f.StringVar(&opts.Request.AlphabetScript, "alphabet-script", "", "ISO 15924 script for the alphabet preview")
	f.StringSliceVar(&opts.Request.CustomVocabulary, "vocab", nil, "fringe vocabulary to seed (comma separated)")

	return cmd
}

func runConvert(opts *ConvertOptions, cmd *cobra.Command) error {
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

	plan, err := p.Convert(ctx, req)
	if err != nil {
		return reportPlanError(formatter, err)
	}

	fp, err := ir.PlanFingerprint(plan)
	if err != nil {
		return report(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	formatter.VerboseLog("target %s / %s, grid %s", plan.Target.System, plan.Target.Pageset, plan.TargetGrid)
	return formatter.Success(ConvertResult{Plan: plan, Fingerprint: fp})
}

// buildRequest starts from the request file, if any, and applies every
// flag the user set.
func (o *ConvertOptions) buildRequest(cmd *cobra.Command) (ir.ConvertRequest, error) {
	var req ir.ConvertRequest
	if o.RequestFile != "" {
		if err := readRequest(o.RequestFile, &req); err != nil {
			return ir.ConvertRequest{}, err
		}
	}

	f := cmd.Flags()
	setString(f.Changed("source-system"), &req.SourceSystem, o.Request.SourceSystem)
	setString(f.Changed("source-pageset"), &req.SourcePageset, o.Request.SourcePageset)
	setString(f.Changed("target-system"), &req.TargetSystem, o.Request.TargetSystem)
	setString(f.Changed("target-pageset"), &req.TargetPageset, o.Request.TargetPageset)
	setString(f.Changed("symbol-set"), &req.SymbolSet, o.Request.SymbolSet)
	setString(f.Changed("alphabet-language"), &req.AlphabetLanguage, o.Request.AlphabetLanguage)
	setString(f.Changed("alphabet-script"), &req.AlphabetScript, o.Request.AlphabetScript)
	if f.Changed("rows") {
		req.TargetRows = ir.Int(o.Rows)
	}
	if f.Changed("columns") {
		req.TargetColumns = ir.Int(o.Columns)
	}
	if f.Changed("no-alphabet") {
		req.IncludeAlphabet = ir.Bool(!o.NoAlphabet)
	}
	if f.Changed("no-quick-phrases") {
		req.IncludeQuickPhrases = ir.Bool(!o.NoQuickPhrases)
	}
	if f.Changed("vocab") {
		req.CustomVocabulary = o.Request.CustomVocabulary
	}
	return req, nil
}

// reportPlanError maps planner failures to responses: argument errors
// are command errors, the advisory is a planning failure.
func reportPlanError(f *OutputFormatter, err error) error {
	var advisory *planner.Advisory
	if errors.As(err, &advisory) {
		return report(f, ExitFailure, ErrCodeAdvisory, advisory.Message,
			map[string]string{"system": advisory.System})
	}
	var argErr *planner.ArgumentError
	if errors.As(err, &argErr) {
		return report(f, ExitCommandError, ErrCodeInvalidArgument, err.Error(), nil)
	}
	return report(f, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}

func setString(changed bool, dst *string, v string) {
	if changed {
		*dst = v
	}
}
