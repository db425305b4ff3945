package reorganize

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reorg/internal/ast"
	"reorg/internal/diag"
	"reorg/internal/testkit"
)

const fooHeader = `cfg(not(source_header = "foo.h"))`

func run(t *testing.T, tree *ast.Tree, opts Options) *Result {
	t.Helper()
	res, err := Run(context.Background(), tree, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := testkit.CheckTreeInvariants(res.Tree); err != nil {
		t.Fatalf("rewritten tree: %v", err)
	}
	return res
}

func checkOutline(t *testing.T, got *ast.Tree, want string) {
	t.Helper()
	if diff := cmp.Diff(want, ast.Sprint(got)); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func scenarioA() *ast.Tree {
	b := ast.NewBuilder("main.rs")
	h := b.Container(b.Root(), "foo_h", fooHeader)
	b.Struct(h, "buffer_t", b.Field("data", "i32"))
	foo := b.Container(b.Root(), "foo")
	b.Fn(foo, "init", nil, "", "")
	app := b.Container(b.Root(), "app")
	b.Import(app, "foo_h::buffer_t")
	b.Fn(app, "run", []ast.Field{b.Field("b", "foo_h::buffer_t")}, "", "")
	return b.Tree
}

func TestRunMergesHeaderContainer(t *testing.T) {
	in := scenarioA()
	before := ast.Sprint(in)
	res := run(t, in, DefaultOptions())

	checkOutline(t, res.Tree, `pub mod foo {
    pub fn init() {}
    pub struct buffer_t { data: i32 }
}
pub mod app {
    use foo::buffer_t;
    pub fn run(b: foo::buffer_t) {}
}
`)
	if ast.Sprint(in) != before {
		t.Error("input tree was modified")
	}
	want := Stats{Generated: 1, Decisions: 1, Inserted: 1, SegmentsRenamed: 2, ContainersRemoved: 1}
	if diff := cmp.Diff(want, res.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	wantPasses := []string{
		"cleanse", "match", "plan", "insert", "synthesize", "rename",
		"purge_generated", "purge_foreign", "purge_imports",
	}
	if diff := cmp.Diff(wantPasses, res.Timer.Names()); diff != "" {
		t.Errorf("pass order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRoutesStdlibOnce(t *testing.T) {
	b := ast.NewBuilder("main.rs")
	stdio := b.Container(b.Root(), "stdio_h", `cfg(not(source_header = "/usr/include/stdio.h"))`)
	b.Alias(stdio, "size_t", "usize")
	stddef := b.Container(b.Root(), "stddef_h", `cfg(not(source_header = "/usr/lib/clang/include/stddef.h"))`)
	b.Alias(stddef, "size_t", "usize")
	app := b.Container(b.Root(), "app")
	b.Fn(app, "f", []ast.Field{b.Field("n", "stdio_h::size_t")}, "stddef_h::size_t", "")

	bag := diag.NewBag(0)
	opts := DefaultOptions()
	opts.Reporter = diag.BagReporter{Bag: bag}
	res := run(t, b.Tree, opts)

	checkOutline(t, res.Tree, `pub mod app {
    pub fn f(n: stdlib::size_t) -> stdlib::size_t {}
}
pub mod stdlib {
    pub type size_t = usize;
}
`)
	if got := bag.Count(diag.ReoStdlibRouted); got != 2 {
		t.Errorf("stdlib routing diagnostics = %d, want 2", got)
	}
	if res.Stats.StdlibItems != 1 || res.Stats.Skipped != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if got := bag.Count(diag.MrgDuplicateSkipped); got != 1 {
		t.Errorf("duplicate summary diagnostics = %d, want 1", got)
	}
	if res.Info.StdlibID <= ast.NodeID(b.Tree.Nodes.Len()) {
		t.Errorf("stdlib id %d is not above every input id", res.Info.StdlibID)
	}
}

func TestRunDropsImportShadowedByDeclaration(t *testing.T) {
	b := ast.NewBuilder("main.rs")
	h := b.Container(b.Root(), "gui_h", `cfg(not(source_header = "include/gui.h"))`)
	b.Struct(h, "widget", b.Field("id", "i32"))
	b.Fn(h, "draw", []ast.Field{b.Field("w", "gui_h::widget")}, "", "")
	gui := b.Container(b.Root(), "gui")
	b.Struct(gui, "widget", b.Field("id", "i32"))
	b.Import(gui, "other::widget")

	res := run(t, b.Tree, DefaultOptions())

	checkOutline(t, res.Tree, `pub mod gui {
    pub struct widget { id: i32 }
    pub fn draw(w: gui::widget) {}
}
`)
	if res.Stats.Skipped != 1 || res.Stats.ImportsPurged != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	first := run(t, scenarioA(), DefaultOptions())
	second := run(t, first.Tree, DefaultOptions())

	if diff := cmp.Diff(ast.Sprint(first.Tree), ast.Sprint(second.Tree)); diff != "" {
		t.Errorf("second run changed the tree (-first +second):\n%s", diff)
	}
	if second.Stats != (Stats{}) {
		t.Errorf("second run did work: %+v", second.Stats)
	}
}

func TestRunMatchesRootByUnitName(t *testing.T) {
	b := ast.NewBuilder("src/foo.rs")
	h := b.Container(b.Root(), "foo_h", fooHeader)
	b.Struct(h, "x", b.Field("a", "i32"))
	app := b.Container(b.Root(), "app")
	b.Fn(app, "f", []ast.Field{b.Field("v", "foo_h::x")}, "", "")

	res := run(t, b.Tree, DefaultOptions())

	checkOutline(t, res.Tree, `pub mod app {
    pub fn f(v: foo::x) {}
}
pub struct x { a: i32 }
`)
}

func TestRunStdlibWinsOverNameMatch(t *testing.T) {
	b := ast.NewBuilder("main.rs")
	h := b.Container(b.Root(), "stdint_h", `doc = "see /usr/include/stdint.h"`)
	b.Alias(h, "int32_t", "i32")
	b.Container(b.Root(), "stdint")

	res := run(t, b.Tree, DefaultOptions())

	checkOutline(t, res.Tree, `pub mod stdint {
}
pub mod stdlib {
    pub type int32_t = i32;
}
`)
}

func TestRunCustomStdlibName(t *testing.T) {
	b := ast.NewBuilder("main.rs")
	h := b.Container(b.Root(), "stdio_h", `cfg(not(source_header = "/usr/include/stdio.h"))`)
	b.Alias(h, "FILE", "c_void")

	opts := DefaultOptions()
	opts.StdlibName = "libc"
	res := run(t, b.Tree, opts)

	checkOutline(t, res.Tree, `pub mod libc {
    pub type FILE = c_void;
}
`)
}

func TestRunRejectsBadRoot(t *testing.T) {
	tree := ast.NewTree("x.rs", 0)
	tree.Node(tree.Root).Kind = ast.NodeFn
	if _, err := Run(context.Background(), tree, DefaultOptions()); err == nil {
		t.Error("expected an error for a non-container root")
	}
	if _, err := Run(context.Background(), nil, DefaultOptions()); err == nil {
		t.Error("expected an error for a nil tree")
	}
}
