package ast

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a Rust-like outline of the tree. The root's children are printed
// at the top level. Output is deterministic and is used by golden tests.
func Fprint(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	p := printer{t: t, w: bw}
	if root := t.Node(t.Root); root != nil {
		for _, child := range root.Children {
			p.node(child, 0)
		}
	}
	return bw.Flush()
}

// Sprint is Fprint into a string.
func Sprint(t *Tree) string {
	var sb strings.Builder
	_ = Fprint(&sb, t)
	return sb.String()
}

type printer struct {
	t *Tree
	w *bufio.Writer
}

func (p *printer) line(depth int, parts ...string) {
	for range depth {
		p.w.WriteString("    ")
	}
	for _, s := range parts {
		p.w.WriteString(s)
	}
	p.w.WriteByte('\n')
}

func (p *printer) vis(n *Node) string {
	if n.Vis == VisPublic {
		return "pub "
	}
	return ""
}

func (p *printer) fields(fs []Field, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		if f.Type.IsZero() {
			parts[i] = p.t.Name(f.Name)
			continue
		}
		parts[i] = p.t.Name(f.Name) + ": " + p.t.PathString(f.Type)
	}
	return strings.Join(parts, sep)
}

func (p *printer) signature(n *Node) string {
	sig := "fn " + p.t.Name(n.Name) + "(" + p.fields(n.Fields, ", ") + ")"
	if !n.Type.IsZero() {
		sig += " -> " + p.t.PathString(n.Type)
	}
	return sig
}

func (p *printer) refs(n *Node) string {
	if len(n.Refs) == 0 {
		return ""
	}
	parts := make([]string, len(n.Refs))
	for i, r := range n.Refs {
		parts[i] = p.t.PathString(r)
	}
	return " // uses " + strings.Join(parts, ", ")
}

func (p *printer) node(id NodeID, depth int) {
	n := p.t.Node(id)
	if n == nil {
		p.line(depth, "// missing node ", strconv.FormatUint(uint64(id), 10))
		return
	}
	for _, a := range n.Attrs {
		p.line(depth, "#[", a.String(), "]")
	}
	name := p.t.Name(n.Name)
	switch n.Kind {
	case NodeContainer:
		p.line(depth, p.vis(n), "mod ", name, " {")
		for _, child := range n.Children {
			p.node(child, depth+1)
		}
		p.line(depth, "}")
	case NodeForeignBlock:
		p.line(depth, "extern \"C\" {")
		for _, child := range n.Children {
			p.node(child, depth+1)
		}
		p.line(depth, "}")
	case NodeFn:
		p.line(depth, p.vis(n), p.signature(n), " ", block(n.Body), p.refs(n))
	case NodeForeignFn:
		p.line(depth, p.vis(n), p.signature(n), ";")
	case NodeForeignStatic:
		p.line(depth, p.vis(n), "static ", name, ": ", p.t.PathString(n.Type), ";")
	case NodeStruct, NodeUnion:
		p.line(depth, p.vis(n), n.Kind.String(), " ", name, " { ", p.fields(n.Fields, ", "), " }")
	case NodeEnum:
		p.line(depth, p.vis(n), "enum ", name, " { ", p.fields(n.Fields, ", "), " }")
	case NodeTypeAlias:
		p.line(depth, p.vis(n), "type ", name, " = ", p.t.PathString(n.Type), ";")
	case NodeConst, NodeStatic:
		p.line(depth, p.vis(n), n.Kind.String(), " ", name, ": ", p.t.PathString(n.Type), " = ", n.Body, ";", p.refs(n))
	case NodeImport:
		if n.Alias != 0 {
			p.line(depth, p.vis(n), "use ", p.t.PathString(n.Prefix), " as ", p.t.Name(n.Alias), ";")
		} else {
			p.line(depth, p.vis(n), "use ", p.t.PathString(n.Prefix), ";")
		}
	default:
		p.line(depth, "// ", name, " ", n.Body, p.refs(n))
	}
}

func block(body string) string {
	if body == "" {
		return "{}"
	}
	return "{ " + body + " }"
}
