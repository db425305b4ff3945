package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"reorg/internal/diag"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)
	noteLabel    = color.New(color.FgBlue)
)

// printDiagnostics writes bag's diagnostics for unit in the short one-line
// form with a colored severity. Info diagnostics are dropped when quiet is set.
func printDiagnostics(w io.Writer, bag *diag.Bag, unit string, quiet bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	items := bag.Items()
	if quiet {
		kept := make([]diag.Diagnostic, 0, len(items))
		for _, d := range items {
			if d.Severity >= diag.SevWarning {
				kept = append(kept, d)
			}
		}
		items = kept
	}
	text := diag.FormatShortDiagnostics(items, unit, !quiet)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintln(w, colorizeDiagnostic(line))
	}
}

func colorizeDiagnostic(line string) string {
	label, rest, ok := strings.Cut(line, " ")
	if !ok {
		return line
	}
	var c *color.Color
	switch label {
	case "error":
		c = errorLabel
	case "warning":
		c = warningLabel
	case "info":
		c = infoLabel
	case "note":
		c = noteLabel
	default:
		return line
	}
	return c.Sprint(label) + " " + rest
}
