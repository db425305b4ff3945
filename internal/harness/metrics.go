package harness

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
)

var funcErrorsRE = regexp.MustCompile(`^got ([0-9]+) errors for ([^ \n]+)$`)

// FuncErrors maps a function to the number of build errors it produced.
type FuncErrors map[string]int

// ReadFuncErrors collects the `got N errors for f` lines of a build log.
// A function reported twice is an error.
func ReadFuncErrors(r io.Reader) (FuncErrors, error) {
	out := make(FuncErrors)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; sc.Scan(); line++ {
		m := funcErrorsRE.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := out[m[2]]; dup {
			return nil, fmt.Errorf("line %d: duplicate entry for %q", line, m[2])
		}
		out[m[2]] = n
	}
	return out, sc.Err()
}

func (fe FuncErrors) ok() map[string]bool {
	out := make(map[string]bool, len(fe))
	for f, n := range fe {
		if n == 0 {
			out[f] = true
		}
	}
	return out
}

// Metrics compares per-function builds of pointwise rewrites against the
// unmodified code.
type Metrics struct {
	Total        int      `yaml:"total"`
	PointwiseOK  int      `yaml:"pointwise_ok"`
	UnmodifiedOK int      `yaml:"unmodified_ok"`
	Improved     []string `yaml:"improved"`
	Broke        []string `yaml:"broke"`
}

// ComparePointwise requires both logs to cover the same number of functions.
func ComparePointwise(pointwise, unmodified FuncErrors) (Metrics, error) {
	if len(pointwise) != len(unmodified) {
		return Metrics{}, fmt.Errorf("logs cover %d and %d functions", len(pointwise), len(unmodified))
	}
	pw, um := pointwise.ok(), unmodified.ok()
	m := Metrics{Total: len(pointwise), PointwiseOK: len(pw), UnmodifiedOK: len(um)}
	for f := range pw {
		if !um[f] {
			m.Improved = append(m.Improved, f)
		}
	}
	for f := range um {
		if !pw[f] {
			m.Broke = append(m.Broke, f)
		}
	}
	sort.Strings(m.Improved)
	sort.Strings(m.Broke)
	return m, nil
}

func pct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

// Fprint writes the four summary lines.
func (m Metrics) Fprint(w io.Writer) error {
	unmodifiedBad := m.Total - m.UnmodifiedOK
	_, err := fmt.Fprintf(w,
		"pointwise:  %5d/%d functions passed (%.1f%%)\n"+
			"unmodified: %5d/%d functions passed (%.1f%%)\n"+
			"improved:   %5d/%d functions (%.1f%%)\n"+
			"broke:      %5d/%d functions (%.1f%%)\n",
		m.PointwiseOK, m.Total, pct(m.PointwiseOK, m.Total),
		m.UnmodifiedOK, m.Total, pct(m.UnmodifiedOK, m.Total),
		len(m.Improved), unmodifiedBad, pct(len(m.Improved), unmodifiedBad),
		len(m.Broke), m.UnmodifiedOK, pct(len(m.Broke), m.UnmodifiedOK),
	)
	return err
}
