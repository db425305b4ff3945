package harness

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolFailed matches every *ExitError.
var ErrToolFailed = errors.New("external tool failed")

// ExitError reports a tool that ran but exited unsuccessfully.
type ExitError struct {
	Cmd        string // command line as run
	Status     string
	OutputPath string // where the output went, if it went to a file
	Output     string
}

func (e *ExitError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed with %s:\n> %s", toolName(e.Cmd), e.Status, e.Cmd)
	if e.OutputPath != "" {
		fmt.Fprintf(&sb, " > %s 2>&1", e.OutputPath)
	}
	if e.Output != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Output)
	}
	return sb.String()
}

func (e *ExitError) Is(target error) bool { return target == ErrToolFailed }

func toolName(cmdline string) string {
	name, _, _ := strings.Cut(cmdline, " ")
	return name
}

// exitError converts a failed Wait/Run into *ExitError; start failures and
// other errors pass through.
func exitError(cmd *exec.Cmd, err error, outputPath, output string) error {
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return err
	}
	return &ExitError{
		Cmd:        cmd.String(),
		Status:     ee.ProcessState.String(),
		OutputPath: outputPath,
		Output:     output,
	}
}
