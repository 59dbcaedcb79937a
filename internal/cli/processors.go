package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/pageport/internal/catalog"
	"github.com/roach88/pageport/internal/ir"
)

// noProcessorsMessage is printed when a processor filter matches nothing.
const noProcessorsMessage = "No AAC processors matched your criteria."

// ProcessorsOptions holds flags for the processors command.
type ProcessorsOptions struct {
	*RootOptions
	Query          catalog.ProcessorQuery
	MinChannels    int
	MinBitrateKbps int
}

// ProcessorList is the processors payload.
type ProcessorList struct {
	Processors []ir.Processor `json:"processors"`
}

// RenderText prints the matches as indented JSON, or the no-match
// message.
func (l ProcessorList) RenderText(w io.Writer) {
	if len(l.Processors) == 0 {
		fprintf(w, "%s\n", noProcessorsMessage)
		return
	}
	data, err := json.MarshalIndent(l.Processors, "", "  ")
	if err != nil {
		fprintf(w, "%v\n", err)
		return
	}
	fprintf(w, "%s\n", data)
}

// NewProcessorsCommand creates the processors command.
func NewProcessorsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProcessorsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "processors",
		Short: "Filter and inspect AAC processor capabilities",
		Long: `Filter the processor catalog. Model and manufacturer match exactly
(ignoring case); task and accepts-file match substrings. With a task
filter each processor lists only its matching tasks.

Examples:
  pageport processors --min-channels 8
  pageport processors --task vocabulary --task-status planned
  pageport processors --accepts-file .snapp`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcessors(opts, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Query.Model, "model", "", "exact processor model")
	f.StringVar(&opts.Query.Manufacturer, "manufacturer", "", "manufacturer")
	f.IntVar(&opts.MinChannels, "min-channels", 0, "minimum supported channels")
	f.IntVar(&opts.MinBitrateKbps, "min-bitrate", 0, "minimum supported bitrate in kbps")
	f.StringVar(&opts.Query.Task, "task", "", "supported task name (substring)")
	f.StringVar(&opts.Query.TaskStatus, "task-status", "", "task readiness: available, planned or needs-research")
	f.StringVar(&opts.Query.AcceptsFile, "accepts-file", "", "file extension or format the processor ingests")

	return cmd
}

func runProcessors(opts *ProcessorsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	q := opts.Query
	if status := q.TaskStatus; status != "" && !ir.ValidTaskStatuses[status] {
		valid := make([]string, 0, len(ir.ValidTaskStatuses))
		for s := range ir.ValidTaskStatuses {
			valid = append(valid, s)
		}
		slices.Sort(valid)
		return report(formatter, ExitCommandError, ErrCodeInvalidArgument,
			fmt.Sprintf("invalid task status %q: must be one of %v", status, valid), nil)
	}
	f := cmd.Flags()
	if f.Changed("min-channels") {
		if opts.MinChannels < 0 {
			return report(formatter, ExitCommandError, ErrCodeInvalidArgument, "min-channels must be non-negative", nil)
		}
		q.MinChannels = &opts.MinChannels
	}
	if f.Changed("min-bitrate") {
		if opts.MinBitrateKbps < 0 {
			return report(formatter, ExitCommandError, ErrCodeInvalidArgument, "min-bitrate must be non-negative", nil)
		}
		q.MinBitrateKbps = &opts.MinBitrateKbps
	}

	cat, err := loadCatalog(commandContext(cmd), opts.RootOptions)
	if err != nil {
		return reportCatalogError(formatter, err)
	}

	matches := cat.FilterProcessors(q)
	formatter.VerboseLog("%d processor(s) matched", len(matches))
	return formatter.Success(ProcessorList{Processors: matches})
}
