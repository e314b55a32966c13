package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/naka-gawa/github-issue-report/internal/usecase"
)

var summaryColumns = []string{"Contributor", "Total", "Open", "Closed", "Bugs", "Enhancements", "Other"}

// PadRight pads str with spaces up to the given display width.
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// printSummary writes the outcome of a run to the terminal.
func printSummary(w io.Writer, result *usecase.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ PDF report generated: %s\n", result.Path)
	fmt.Fprintf(&b, "✓ Total issues: %d\n", result.Summary.Total)
	fmt.Fprintf(&b, "✓ Contributors analyzed: %d\n", len(result.Contributors))

	if len(result.Contributors) > 0 {
		rows := [][]string{summaryColumns}
		for _, c := range result.Contributors {
			rows = append(rows, []string{
				c.Login,
				strconv.Itoa(c.Total),
				strconv.Itoa(c.Open),
				strconv.Itoa(c.Closed),
				strconv.Itoa(c.Bugs),
				strconv.Itoa(c.Enhancements),
				strconv.Itoa(c.Other),
			})
		}

		widths := make([]int, len(summaryColumns))
		for _, row := range rows {
			for i, cell := range row {
				if cw := runewidth.StringWidth(cell); cw > widths[i] {
					widths[i] = cw
				}
			}
		}

		b.WriteString("\n")
		for _, row := range rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = PadRight(cell, widths[i])
			}
			b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\nIssues per contributor: mean %.2f, median %.2f, max %.0f\n",
			result.Workload.Mean, result.Workload.Median, result.Workload.Max)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
