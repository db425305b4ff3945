package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"reorg/internal/ast"
	"reorg/internal/astio"
	"reorg/internal/command"
	"reorg/internal/reorganize"
)

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordSink) final(file string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last Status
	for _, ev := range s.events {
		if ev.File == file {
			last = ev.Status
		}
	}
	return last
}

const fooTree = `unit: foo.rs
items:
  - kind: mod
    name: foo_h
    attrs: ['cfg(not(source_header = "foo.h"))']
    items:
      - {kind: struct, name: s, vis: pub}
  - kind: mod
    name: foo
    vis: pub
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRegistry() *command.Registry {
	reg := command.NewRegistry()
	reorganize.Register(reg, reorganize.DefaultOptions())
	return reg
}

func TestRunWritesOutDir(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "foo.yaml", fooTree)
	bad := writeFile(t, dir, "bad.yaml", "items: [{kind: nonsense}]\n")
	outDir := filepath.Join(dir, "out")
	sink := &recordSink{}

	results, err := Run(context.Background(), &Request{
		Files:    []string{good, bad},
		Registry: newRegistry(),
		Command:  reorganize.CommandName,
		Phase:    command.Phase3,
		OutDir:   outDir,
		Format:   "msgpack",
		Jobs:     2,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if Failed(results) != 1 {
		t.Fatalf("failed = %d, want 1", Failed(results))
	}

	ok := results[0]
	if ok.Err != nil || ok.Output != filepath.Join(outDir, "foo.mp") {
		t.Fatalf("good result = %+v", ok)
	}
	tree, err := astio.ReadFile(ok.Output)
	if err != nil {
		t.Fatal(err)
	}
	if got := ast.Sprint(tree); got != "pub mod foo {\n    pub struct s {  }\n}\n" {
		t.Errorf("output outline = %q", got)
	}
	if len(ok.Stats) == 0 {
		t.Error("no stats recorded")
	}
	if !strings.Contains(strings.Join(ok.Timer.Names(), ","), "reorganize_modules/insert") {
		t.Errorf("pass timings not merged: %v", ok.Timer.Names())
	}

	if results[1].Bag.Len() != 1 || !results[1].Bag.HasErrors() {
		t.Errorf("bad file diagnostics = %d", results[1].Bag.Len())
	}
	if sink.final(good) != StatusDone || sink.final(bad) != StatusError {
		t.Errorf("final statuses %s / %s", sink.final(good), sink.final(bad))
	}
}

func TestRunKeepsTreesInMemory(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "foo.yaml", fooTree)

	results, err := Run(context.Background(), &Request{
		Files:    []string{good},
		Registry: newRegistry(),
		Command:  reorganize.CommandName,
		Phase:    command.Phase3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Output != "" || results[0].Tree == nil {
		t.Errorf("result = %+v", results[0])
	}
}

func TestRunRejectsBadRequests(t *testing.T) {
	reg := newRegistry()
	tests := []struct {
		name string
		req  *Request
	}{
		{"out with many files", &Request{Files: []string{"a", "b"}, Registry: reg, Out: "x.yaml"}},
		{"out and out-dir", &Request{Files: []string{"a"}, Registry: reg, Out: "x.yaml", OutDir: "d"}},
		{"bad format", &Request{Files: []string{"a"}, Registry: reg, Format: "xml"}},
		{"no registry", &Request{Files: []string{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.req); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRunReportsPhaseGate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "foo.yaml", fooTree)
	results, err := Run(context.Background(), &Request{
		Files:    []string{good},
		Registry: newRegistry(),
		Command:  reorganize.CommandName,
		Phase:    command.Phase2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(results[0].Err, command.ErrPhaseTooEarly) {
		t.Errorf("err = %v", results[0].Err)
	}
}
