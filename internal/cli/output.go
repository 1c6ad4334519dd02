package cli

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/runnerr0/kickback/internal/activity"
	"github.com/runnerr0/kickback/internal/pipeline"
	"github.com/runnerr0/kickback/internal/receipt"
)

// newTable returns a borderless, left-aligned table.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

// renderTable writes header and rows to w.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := newTable(w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// useColors resolves --color. In auto mode fatih/color has already
// looked at NO_COLOR, TERM and whether stdout is a terminal.
func useColors(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}

func painter(enabled bool, attrs ...color.Attribute) func(...any) string {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint
}

// colorize highlights the title, section headings, the data label and the
// total of a rendered receipt. The text is otherwise unchanged.
func colorize(report *pipeline.Report, enabled bool) string {
	if !enabled {
		return report.Receipt
	}
	title := painter(true, color.Bold)
	heading := painter(true, color.FgCyan, color.Bold)
	label := painter(true, color.FgYellow, color.Bold)
	total := painter(true, color.FgGreen, color.Bold)

	headings := map[string]bool{"DATA LABEL": true, "DATA MOOD": true, "SUMMARY": true}
	for _, c := range activity.Categories() {
		headings[strings.ToUpper(c.Title())] = true
	}

	lines := strings.SplitAfter(report.Receipt, "\n")
	for i, line := range lines {
		text := strings.TrimSuffix(line, "\n")
		nl := line[len(text):]
		switch {
		case text == receipt.Title:
			lines[i] = title(text) + nl
		case headings[text]:
			lines[i] = heading(text) + nl
		case report.Label != nil && text == report.Label.Label:
			lines[i] = label(text) + nl
		case strings.HasPrefix(text, "Total Value to Google"):
			lines[i] = total(text) + nl
		}
	}
	return strings.Join(lines, "")
}
