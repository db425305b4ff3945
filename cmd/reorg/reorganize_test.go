package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reorg/internal/ast"
	"reorg/internal/astio"
)

const mainTree = `unit: src/main.rs
items:
  - kind: mod
    name: foo_h
    vis: pub
    attrs: ['cfg(not(source_header = "foo.h"))']
    items:
      - kind: struct
        name: buffer_t
        vis: pub
        fields: [{name: data, type: i32}]
  - kind: mod
    name: foo
    vis: pub
    items:
      - kind: fn
        name: init
        vis: pub
  - kind: mod
    name: app
    vis: pub
    items:
      - kind: use
        path: foo_h::buffer_t
`

const mainOutline = `pub mod foo {
    pub fn init() {}
    pub struct buffer_t { data: i32 }
}
pub mod app {
    use foo::buffer_t;
}
`

// resetFlags puts every flag back to its default so runs do not leak into
// each other through the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--color", "off", "--config", emptyConfig(t)}, args...))
	err := rootCmd.Execute()
	runCleanups()
	return stdout.String(), stderr.String(), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	writeFile(t, path, "")
	return path
}

func TestReorganizeWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.yaml")
	out := filepath.Join(dir, "out", "main.json")
	writeFile(t, in, mainTree)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execute(t, "reorganize", "--out", out, in)
	if err != nil {
		t.Fatalf("reorganize: %v\n%s", err, stderr)
	}
	tree, err := astio.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if diff := cmp.Diff(mainOutline, ast.Sprint(tree)); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{"info REO", "items inserted", "ok"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr lacks %q:\n%s", want, stderr)
		}
	}
}

func TestReorganizeToStdout(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.yaml")
	writeFile(t, in, mainTree)

	stdout, stderr, err := execute(t, "--quiet", "reorganize", "--format", "yaml", "--tie-break", "first", in)
	if err != nil {
		t.Fatalf("reorganize: %v\n%s", err, stderr)
	}
	tree, err := astio.Decode(strings.NewReader(stdout), astio.FormatYAML)
	if err != nil {
		t.Fatalf("decode stdout: %v\n%s", err, stdout)
	}
	if diff := cmp.Diff(mainOutline, ast.Sprint(tree)); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(stderr, "items inserted") {
		t.Errorf("quiet run printed a summary:\n%s", stderr)
	}
}

func TestReorganizeRejectsEarlyPhase(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.yaml")
	writeFile(t, in, mainTree)

	_, stderr, err := execute(t, "reorganize", "--dry-run", "--phase", "2", in)
	if err == nil || !strings.Contains(err.Error(), "1 of 1 files failed") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "phase") {
		t.Errorf("stderr lacks the phase error:\n%s", stderr)
	}
}

func TestReorganizeArgumentErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, mainTree)
	writeFile(t, b, mainTree)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"several to stdout", []string{"reorganize", a, b}, "--out-dir or --dry-run"},
		{"dry run with out", []string{"reorganize", "--dry-run", "--out", filepath.Join(dir, "x.yaml"), a}, "--dry-run does not write"},
		{"bad phase", []string{"reorganize", "--phase", "7", a}, "invalid --phase"},
		{"bad ui", []string{"reorganize", "--ui", "maybe", a}, "invalid --ui"},
		{"bad tie break", []string{"reorganize", "--dry-run", "--tie-break", "coin", a}, "files failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestShowAndTransforms(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.yaml")
	writeFile(t, in, mainTree)

	stdout, _, err := execute(t, "show", "--check", in)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(stdout, "pub mod foo_h {") {
		t.Errorf("show output:\n%s", stdout)
	}

	stdout, _, err = execute(t, "transforms")
	if err != nil {
		t.Fatalf("transforms: %v", err)
	}
	if !strings.Contains(stdout, "reorganize_modules  phase3") {
		t.Errorf("transforms output:\n%s", stdout)
	}
}

func TestMetricsCommand(t *testing.T) {
	dir := t.TempDir()
	pw := filepath.Join(dir, "pointwise.log")
	um := filepath.Join(dir, "unmodified.log")
	writeFile(t, pw, "got 0 errors for a\ngot 0 errors for b\n")
	writeFile(t, um, "got 1 errors for a\ngot 0 errors for b\n")

	stdout, _, err := execute(t, "metrics", pw, um)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if !strings.HasPrefix(stdout, "pointwise:      2/2 functions passed (100.0%)") {
		t.Errorf("metrics output:\n%s", stdout)
	}
}
