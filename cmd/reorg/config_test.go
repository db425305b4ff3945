package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reorg/internal/reorganize"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig = %q, %v, %v", got, ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, configFileName))
	if got != want {
		t.Fatalf("findConfig = %q, want %q", got, want)
	}
}

func TestLoadConfigMissingIsEmpty(t *testing.T) {
	cfg, err := loadConfig("", t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Path != "" {
		t.Fatalf("unexpected config path %q", cfg.Path)
	}
	if diff := cmp.Diff(reorganize.DefaultOptions(), cfg.Config.options()); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigOptions(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, configFileName)
	writeFile(t, path, `# reorg settings
[classify]
source_header = "origin_header"
stdlib_markers = ["/opt/sysroot"]

[merge]
stdlib_name = "libc"
tie_break = "longest"

[output]
format = "json"
jobs = 2

[harness]
manifest = "tools/analysis/Cargo.toml"
lib_dir = "/abs/lib"
`)
	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	opts := cfg.Config.options()
	want := reorganize.DefaultOptions()
	want.Classifier.SourceHeaderIdent = "origin_header"
	want.Classifier.StdlibMarkers = []string{"/opt/sysroot"}
	want.StdlibName = "libc"
	want.TieBreak = reorganize.TieBreakLongest
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if cfg.Config.Output.Jobs != 2 || cfg.Config.Output.Format != "json" {
		t.Errorf("output = %+v", cfg.Config.Output)
	}
	if got := cfg.resolve(cfg.Config.Harness.Manifest); got != filepath.Join(root, "tools", "analysis", "Cargo.toml") {
		t.Errorf("manifest resolved to %q", got)
	}
	if got := cfg.resolve(cfg.Config.Harness.LibDir); got != "/abs/lib" {
		t.Errorf("lib dir resolved to %q", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[merge\n", "failed to parse TOML"},
		{"unknown key", "[merge]\ncolour = \"red\"\n", "unknown keys: merge.colour"},
		{"tie break", "[merge]\ntie_break = \"random\"\n", "[merge].tie_break"},
		{"empty stdlib", "[merge]\nstdlib_name = \" \"\n", "stdlib_name is empty"},
		{"empty header", "[classify]\nsource_header = \"\"\n", "source_header is empty"},
		{"format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"jobs", "[output]\njobs = -1\n", "jobs must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configFileName)
			writeFile(t, path, tt.data)
			_, err := loadConfig(path, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
