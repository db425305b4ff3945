package harness

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"reorg/internal/trace"
)

// OutputSuffix is appended to the unit's file name for the analysis log.
const OutputSuffix = ".analysis.txt"

// Analyzer runs the pointer analysis over one Rust unit. Command is the tool
// invocation prefix; the unit path, `-L LibDir` and `--crate-type CrateType`
// are appended to it.
type Analyzer struct {
	Command   []string
	LibDir    string
	CrateType string
	Dir       string // working directory; relative unit paths resolve against it
}

// CargoAnalyzer runs the analysis through `cargo run` on manifest.
func CargoAnalyzer(manifest, libDir string) *Analyzer {
	return &Analyzer{
		Command:   []string{"cargo", "run", "--manifest-path", manifest, "--"},
		LibDir:    libDir,
		CrateType: "rlib",
		Dir:       filepath.Dir(manifest),
	}
}

// OutputPath is where Run writes the combined output for unit.
func (a *Analyzer) OutputPath(unit string) string {
	return a.resolve(unit) + OutputSuffix
}

func (a *Analyzer) resolve(unit string) string {
	if !filepath.IsAbs(unit) && a.Dir != "" {
		unit = filepath.Join(a.Dir, unit)
	}
	if abs, err := filepath.Abs(unit); err == nil {
		return abs
	}
	return unit
}

// Run analyses unit with stdout and stderr both written to OutputPath(unit).
// A non-zero exit yields an *ExitError carrying the log.
func (a *Analyzer) Run(ctx context.Context, unit string) (string, error) {
	if len(a.Command) == 0 {
		return "", fmt.Errorf("analyzer has no command")
	}
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "analyze", trace.CurrentSpan(ctx).SpanID)
	defer sp.End(unit)

	path := a.resolve(unit)
	outPath := path + OutputSuffix
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	args := append(append([]string(nil), a.Command[1:]...), path)
	if a.LibDir != "" {
		args = append(args, "-L", a.LibDir)
	}
	if a.CrateType != "" {
		args = append(args, "--crate-type", a.CrateType)
	}
	cmd := exec.CommandContext(ctx, a.Command[0], args...)
	cmd.Dir = a.Dir
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		log, _ := os.ReadFile(outPath)
		return outPath, exitError(cmd, err, outPath, string(log))
	}
	return outPath, nil
}
