package astio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reorg/internal/ast"
)

const sample = `unit: src/foo.rs
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
      - kind: use
        path: self::foo_h::buffer_t
        alias: buf
      - kind: fn
        name: fill
        vis: pub
        fields: [{name: b, type: "foo_h::buffer_t"}]
        type: i32
        body: "0"
        refs: ["foo_h::buffer_t"]
        span: [10, 42]
      - kind: extern
        items:
          - kind: foreign_fn
            name: memset
            vis: pub
            fields: [{name: n, type: usize}]
`

const sampleOutline = `#[cfg(not(source_header = "foo.h"))]
pub mod foo_h {
    pub struct buffer_t { data: i32 }
}
pub mod foo {
    use self::foo_h::buffer_t as buf;
    pub fn fill(b: foo_h::buffer_t) -> i32 { 0 } // uses foo_h::buffer_t
    extern "C" {
        pub fn memset(n: usize);
    }
}
`

func TestDecodeYAML(t *testing.T) {
	tree, err := Decode(strings.NewReader(sample), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(sampleOutline, ast.Sprint(tree)); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
	if tree.UnitName() != "foo" {
		t.Errorf("unit name = %q", tree.UnitName())
	}
	var span string
	tree.Walk(func(n *ast.Node, _ ast.NodeID) bool {
		if n.Kind == ast.NodeFn {
			span = n.Span.String()
		}
		return true
	})
	if span != "10-42" {
		t.Errorf("fn span = %s", span)
	}
}

func TestEncodeDecodeEveryFormat(t *testing.T) {
	in, err := Decode(strings.NewReader(sample), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for _, f := range []Format{FormatYAML, FormatJSON, FormatMsgpack} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, in, f); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			out, err := Decode(&buf, f)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(ast.Sprint(in), ast.Sprint(out)); diff != "" {
				t.Errorf("tree changed (-in +out):\n%s", diff)
			}
			if out.Unit != in.Unit {
				t.Errorf("unit = %q", out.Unit)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown kind", "items: [{kind: class, name: x}]", `unknown kind "class"`},
		{"items under fn", "items: [{kind: fn, name: f, items: [{kind: fn, name: g}]}]", "cannot hold items"},
		{"bad attribute", "items: [{kind: mod, name: m, attrs: ['cfg(']}]", "m:"},
		{"bad span", "items: [{kind: fn, name: f, span: [1]}]", "span"},
		{"newer schema", "schema: 99\nitems: []", "newer"},
		{"empty", "", "empty document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), FormatYAML)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a/tree.yaml": FormatYAML,
		"tree.yml":    FormatYAML,
		"tree.JSON":   FormatJSON,
		"tree.mp":     FormatMsgpack,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
	for _, path := range []string{"tree.txt", "tree"} {
		if _, err := FormatFromPath(path); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFromPath(%q) err = %v", path, err)
		}
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bar.yaml")
	if err := os.WriteFile(src, []byte("items: [{kind: struct, name: s, vis: pub}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tree, err := ReadFile(src)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if tree.UnitName() != "bar" {
		t.Errorf("unit name = %q, want bar", tree.UnitName())
	}

	dst := filepath.Join(dir, "out", "bar.mp")
	if err := WriteFile(dst, tree, FormatMsgpack); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := ast.Sprint(back); got != "pub struct s {  }\n" {
		t.Errorf("outline = %q", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(dst))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestDecodeNormalizesIdentifiers(t *testing.T) {
	// "café" spelled with a combining accent in the container and precomposed in the path
	doc := "items:\n" +
		"  - {kind: mod, name: \"cafe\\u0301\", vis: pub}\n" +
		"  - {kind: use, path: \"caf\\u00e9::menu\"}\n"
	tree, err := Decode(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	root := tree.Node(tree.Root)
	mod, use := tree.Node(root.Children[0]), tree.Node(root.Children[1])
	if mod.Name != use.Prefix.Segments[0] {
		t.Errorf("container %q and path segment %q interned apart",
			tree.Name(mod.Name), tree.Name(use.Prefix.Segments[0]))
	}
}
