package userinteraction

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
)

var _ output.ReportPort = (*ConsoleReporter)(nil)

// ConsoleReporter prints filter summaries for a human operator.
type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) ShowSummary(ctx context.Context, summary output.FilterSummary) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(r.out, "\n━━━ Filter summary (%s) ━━━\n", pageLabel(summary.Page))

	dim := color.New(color.Faint)
	if len(summary.Responses) == 0 {
		dim.Fprintln(r.out, "No responses filtered")
	}
	for _, shape := range sortedKeys(summary.Responses) {
		dim.Fprintf(r.out, "   response %-30s %d\n", shape, summary.Responses[shape])
	}

	yellow := color.New(color.FgYellow)
	for _, reason := range sortedKeys(summary.ItemsRemoved) {
		yellow.Fprintf(r.out, "✂ items   %-30s %d\n", reason, summary.ItemsRemoved[reason])
	}
	for _, reason := range sortedKeys(summary.ShelvesRemoved) {
		yellow.Fprintf(r.out, "✂ shelves %-30s %d\n", reason, summary.ShelvesRemoved[reason])
	}

	if summary.HelpersKept > 0 {
		blue := color.New(color.FgBlue)
		blue.Fprintf(r.out, "↻ helper items kept for pagination: %d\n", summary.HelpersKept)
	}

	if summary.ItemErrors > 0 {
		red := color.New(color.FgRed)
		red.Fprintf(r.out, "❌ evaluation errors (items kept): %d\n", summary.ItemErrors)
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(r.out, "✓ removed %d items, %d shelves\n", total(summary.ItemsRemoved), total(summary.ShelvesRemoved))
}

func (r *ConsoleReporter) ShowError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	red := color.New(color.FgRed)
	red.Fprint(r.out, "❌ Error: ")

	dim := color.New(color.Faint)
	dim.Fprintln(r.out, truncate(err.Error(), 300))
}

func pageLabel(page string) string {
	if page == "" {
		return "unknown page"
	}
	return page
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func total(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s...", s[:maxLen])
}
