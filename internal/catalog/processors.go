package catalog

import (
	"strings"

	"github.com/roach88/pageport/internal/ir"
)

// ProcessorQuery filters processors. Zero values mean "no filter" except
// for the minimums, which use pointers so 0 can be requested explicitly.
type ProcessorQuery struct {
	Model          string
	Manufacturer   string
	MinChannels    *int
	MinBitrateKbps *int
	Task           string
	TaskStatus     string
	AcceptsFile    string
}

// FilterProcessors returns matching processors in catalog order.
//
// When Task or TaskStatus is set, each returned processor carries only its
// matching tasks. A Task filter with no matching task excludes the
// processor; a TaskStatus-only filter with no match keeps the full list.
func (c *Catalog) FilterProcessors(q ProcessorQuery) []ir.Processor {
	out := []ir.Processor{}
	for _, p := range c.processors {
		if q.Model != "" && !ir.SameName(p.Model, q.Model) {
			continue
		}
		if q.Manufacturer != "" && !ir.SameName(p.Manufacturer, q.Manufacturer) {
			continue
		}
		if q.MinChannels != nil && p.MaxChannels < *q.MinChannels {
			continue
		}
		if q.MinBitrateKbps != nil && p.MaxBitrateKbps < *q.MinBitrateKbps {
			continue
		}
		if q.AcceptsFile != "" && !acceptsFile(p, q.AcceptsFile) {
			continue
		}

		tasks := matchingTasks(p.SupportedTasks, q.Task, q.TaskStatus)
		if q.Task != "" && len(tasks) == 0 {
			continue
		}

		match := cloneProcessor(p)
		if len(tasks) > 0 {
			match.SupportedTasks = tasks
		}
		out = append(out, match)
	}
	return out
}

func acceptsFile(p ir.Processor, format string) bool {
	needle := strings.ToLower(format)
	for _, in := range p.FileInputs {
		if strings.Contains(strings.ToLower(in), needle) {
			return true
		}
	}
	return false
}

func matchingTasks(tasks []ir.ProcessorTask, name, status string) []ir.ProcessorTask {
	var out []ir.ProcessorTask
	needle := strings.ToLower(name)
	for _, t := range tasks {
		if name != "" && !strings.Contains(strings.ToLower(t.Name), needle) {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	return out
}
