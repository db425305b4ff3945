package diag

import (
	"fmt"
	"strings"
)

// FormatShortDiagnostics renders diagnostics one per line:
//
//	<severity> <CODE> <unit>:<subject> <message>
//
// Input order is kept; call Bag.Sort first for a deterministic order.
// Notes follow their diagnostic as `note` lines when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, unit string, includeNotes bool) string {
	var b strings.Builder
	for _, d := range diags {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%s %s", severityLabel(d.Severity), d.Code.ID(), unit, d.Subject, singleLine(d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\nnote %s %s:%s %s", d.Code.ID(), unit, d.Subject, singleLine(n.Msg))
		}
	}
	return b.String()
}

func severityLabel(sev Severity) string {
	return strings.ToLower(sev.String())
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
