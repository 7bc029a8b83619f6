// =============================================================================
// Metadata Generator - Console Report
// =============================================================================
//
// This module prints the results of a run to the console:
//   - Validation failures as an INDEX / PROBLEM table
//   - Saved files as a FULLNAME / PATH table under "=== Generated Source"
//   - Per-row save failures under "=== Failure"
//
// TABLE LAYOUT:
//   Every column is as wide as its widest cell, header included. Cells are
//   padded to that width and separated by a tab. The rule line under the
//   header repeats "─" for each column's width.
//
//   INDEX   <tab>PROBLEM
//   ────────<tab>─────────────────────────<tab>
//   Row2Col1<tab>The fullName is required.
//
// Headings are colored only when the output is a terminal.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ginjaninja78/metadata-generator/internal/validation"
)

const (
	headingGenerated = "=== Generated Source"
	headingFailure   = "=== Failure"
	ruleChar         = "─"
)

// Saved is one file written by a run.
type Saved struct {
	Name string
	Path string
}

// Printer writes reports to an output stream.
type Printer struct {
	out     io.Writer
	heading lipgloss.Style
	failure lipgloss.Style
}

// NewPrinter creates a Printer for out. Color support is detected from out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		heading: r.NewStyle().Foreground(lipgloss.Color("4")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// ValidationFailures prints every validation result of a run.
func (p *Printer) ValidationFailures(results []validation.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Location.String(), r.Message})
	}
	p.Table([]string{"INDEX", "PROBLEM"}, rows)
}

// Generated prints the files written by a run.
func (p *Printer) Generated(saved []Saved) {
	rows := make([][]string, 0, len(saved))
	for _, s := range saved {
		rows = append(rows, []string{s.Name, s.Path})
	}
	fmt.Fprintln(p.out, p.heading.Render(headingGenerated))
	p.Table([]string{"FULLNAME", "PATH"}, rows)
}

// Failures prints per-row save failures. Nothing is printed when messages
// is empty.
func (p *Printer) Failures(messages []string) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.failure.Render(headingFailure))
	for _, m := range messages {
		fmt.Fprintln(p.out, m)
	}
}

// Message prints one line.
func (p *Printer) Message(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Table prints an aligned table.
//
// PARAMETERS:
//   - headers: The column titles.
//   - rows: The cells. Missing cells print as empty.
func (p *Printer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := range headers {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}

	fmt.Fprintln(p.out, formatRow(headers, widths))

	var rule strings.Builder
	for _, w := range widths {
		rule.WriteString(strings.Repeat(ruleChar, w) + "\t")
	}
	fmt.Fprintln(p.out, rule.String())

	for _, row := range rows {
		fmt.Fprintln(p.out, formatRow(row, widths))
	}
}

// formatRow pads every cell to its column width. Cells are tab-separated
// and the last one is not padded.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == len(widths)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = cell + strings.Repeat(" ", w-lipgloss.Width(cell))
	}
	return strings.Join(parts, "\t")
}
