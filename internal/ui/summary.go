package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"reorg/internal/batch"
)

// SummaryOptions controls RenderSummary.
type SummaryOptions struct {
	Color     bool
	PathWidth int // 0 picks 40
}

// RenderSummary writes one row per file: path, status and the counters the
// command recorded, in the order the first successful file recorded them.
func RenderSummary(w io.Writer, results []batch.FileResult, opts SummaryOptions) error {
	pathWidth := opts.PathWidth
	if pathWidth <= 0 {
		pathWidth = 40
	}
	var columns []string
	for _, r := range results {
		if r.Err == nil && len(r.Stats) > 0 {
			for _, s := range r.Stats {
				columns = append(columns, s.Name)
			}
			break
		}
	}

	header := lipgloss.NewStyle().Bold(true)
	plain := lipgloss.NewStyle()
	if !opts.Color {
		header = plain
	}

	var b strings.Builder
	row := []string{pad("file", pathWidth), pad("status", 6)}
	for _, c := range columns {
		row = append(row, c)
	}
	b.WriteString(header.Render(strings.Join(row, "  ")))
	b.WriteString("\n")

	for _, r := range results {
		status, style := "ok", lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		if r.Err != nil {
			status, style = "failed", lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		}
		if !opts.Color {
			style = plain
		}
		cells := []string{pad(truncate(r.Path, pathWidth), pathWidth), style.Render(pad(status, 6))}
		for i, c := range columns {
			cell := ""
			if r.Err == nil && i < len(r.Stats) {
				cell = fmt.Sprint(r.Stats[i].Value)
			}
			cells = append(cells, padLeft(cell, runewidth.StringWidth(c)))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func pad(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
