package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"reorg/internal/trace"
)

// FileCheck runs LLVM's FileCheck with a check file against an input file.
type FileCheck struct {
	Path string
}

// ResolveFileCheck uses $FILECHECK when set; otherwise FileCheck from the
// bin directory reported by llvm-config ($LLVM_CONFIG or the one on PATH).
func ResolveFileCheck(ctx context.Context) (*FileCheck, error) {
	if p := os.Getenv("FILECHECK"); p != "" {
		return &FileCheck{Path: p}, nil
	}
	llvmConfig := os.Getenv("LLVM_CONFIG")
	if llvmConfig == "" {
		found, err := exec.LookPath("llvm-config")
		if err != nil {
			return nil, fmt.Errorf("llvm-config not found: %w", err)
		}
		llvmConfig = found
	}
	cmd := exec.CommandContext(ctx, llvmConfig, "--bindir")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, exitError(cmd, err, "", stderr.String())
	}
	bin := strings.TrimSpace(string(out))
	if bin == "" {
		return nil, fmt.Errorf("%s --bindir printed nothing", llvmConfig)
	}
	return &FileCheck{Path: filepath.Join(bin, "FileCheck")}, nil
}

// Run feeds input to FileCheck on stdin with checks as the check file.
func (fc *FileCheck) Run(ctx context.Context, checks, input string) error {
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "filecheck", trace.CurrentSpan(ctx).SpanID)
	defer sp.End(checks)

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	cmd := exec.CommandContext(ctx, fc.Path, checks)
	var out bytes.Buffer
	cmd.Stdin = in
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return exitError(cmd, err, "", out.String())
	}
	return nil
}
