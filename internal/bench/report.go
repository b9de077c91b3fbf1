package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.3f s", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.3f us", float64(d)/float64(time.Microsecond))
	}
}

type ReportOptions struct {
	// Plain renders a markdown table without styling.
	Plain bool
}

func RenderReport(results []Result, opts ReportOptions) string {
	t := table.New().
		Headers("Method", "Protocol", "Mean", "Error", "StdDev", "Completed")

	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell

	if opts.Plain {
		t = t.Border(lipgloss.MarkdownBorder()).BorderTop(false).BorderBottom(false)
	} else {
		header = cell.Bold(true)
		t = t.Border(lipgloss.RoundedBorder())
	}

	t = t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}

		return cell
	})

	for _, res := range results {
		stats := res.Stats()

		t.Row(
			res.Trial.Name,
			res.Trial.Protocol.String(),
			FormatDuration(stats.Mean),
			FormatDuration(stats.Error),
			FormatDuration(stats.StdDev),
			fmt.Sprintf("%v/%v", res.MinCompleted(), res.Trial.Budget),
		)
	}

	return t.String()
}

func WriteReport(w io.Writer, results []Result, opts ReportOptions) error {
	_, err := fmt.Fprintln(w, RenderReport(results, opts))

	return err
}
