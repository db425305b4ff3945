package reorganize

import (
	"fmt"
	"strings"

	"reorg/internal/diag"
)

// DefaultStdlibName names the synthetic container that receives
// standard-library declarations.
const DefaultStdlibName = "stdlib"

// TieBreak selects the destination when a generated container's name matches
// several candidates.
type TieBreak uint8

const (
	// TieBreakLast keeps the candidate scanned last.
	TieBreakLast TieBreak = iota
	// TieBreakFirst keeps the candidate scanned first.
	TieBreakFirst
	// TieBreakLongest keeps the candidate with the longest name; equal lengths
	// fall back to scan order, first wins.
	TieBreakLongest
)

func (tb TieBreak) String() string {
	switch tb {
	case TieBreakFirst:
		return "first"
	case TieBreakLongest:
		return "longest"
	default:
		return "last"
	}
}

// ParseTieBreak accepts "last", "first" or "longest"; empty means last.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return TieBreakLast, nil
	case "first":
		return TieBreakFirst, nil
	case "longest":
		return TieBreakLongest, nil
	default:
		return TieBreakLast, fmt.Errorf("unknown tie-break policy %q (want last, first or longest)", s)
	}
}

// Options configures one pipeline run.
type Options struct {
	Classifier Classifier
	StdlibName string
	TieBreak   TieBreak
	Reporter   diag.Reporter
}

// DefaultOptions reproduces the transpiler's conventions.
func DefaultOptions() Options {
	return Options{
		Classifier: DefaultClassifier(),
		StdlibName: DefaultStdlibName,
		TieBreak:   TieBreakLast,
	}
}

func (o Options) withDefaults() Options {
	if o.Classifier.SourceHeaderIdent == "" {
		o.Classifier.SourceHeaderIdent = DefaultSourceHeaderIdent
	}
	if o.Classifier.StdlibMarkers == nil {
		o.Classifier.StdlibMarkers = append([]string(nil), DefaultStdlibMarkers...)
	}
	if o.StdlibName == "" {
		o.StdlibName = DefaultStdlibName
	}
	if o.Reporter == nil {
		o.Reporter = diag.NopReporter{}
	}
	return o
}
