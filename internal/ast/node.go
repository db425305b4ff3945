package ast

import (
	"slices"

	"reorg/internal/source"
)

type NodeKind uint8

const (
	NodeReserved NodeKind = iota // placeholder slot, not yet part of the tree
	NodeContainer
	NodeForeignBlock
	NodeFn
	NodeForeignFn
	NodeForeignStatic
	NodeStruct
	NodeUnion
	NodeEnum
	NodeTypeAlias
	NodeConst
	NodeStatic
	NodeImport
	NodeOther
)

var nodeKindNames = [...]string{
	NodeReserved:      "reserved",
	NodeContainer:     "mod",
	NodeForeignBlock:  "extern",
	NodeFn:            "fn",
	NodeForeignFn:     "foreign_fn",
	NodeForeignStatic: "foreign_static",
	NodeStruct:        "struct",
	NodeUnion:         "union",
	NodeEnum:          "enum",
	NodeTypeAlias:     "type",
	NodeConst:         "const",
	NodeStatic:        "static",
	NodeImport:        "use",
	NodeOther:         "other",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// ParseNodeKind is the inverse of NodeKind.String.
func ParseNodeKind(s string) (NodeKind, bool) {
	for k, name := range nodeKindNames {
		if name == s && NodeKind(k) != NodeReserved {
			return NodeKind(k), true
		}
	}
	return NodeReserved, false
}

// HasChildren reports whether nodes of this kind hold an ordered child list.
func (k NodeKind) HasChildren() bool {
	return k == NodeContainer || k == NodeForeignBlock
}

// IsDecl reports whether the kind is a named declaration that makes an import of
// the same name redundant once it sits in the importing container.
func (k NodeKind) IsDecl() bool {
	switch k {
	case NodeFn, NodeStruct, NodeUnion, NodeEnum, NodeTypeAlias:
		return true
	}
	return false
}

// Field is a named, typed slot: a struct/union field, an enum variant (empty
// Type) or a function parameter.
type Field struct {
	Name source.StringID
	Type Path
	Span source.Span
}

// Node is any declaration in the tree. Cross references are NodeIDs into the
// owning Tree's arena, never pointers.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Name     source.StringID
	Vis      Visibility
	Attrs    []Attr
	Children []NodeID // NodeContainer and NodeForeignBlock only
	Fields   []Field
	Type     Path            // alias target, fn result, const/static type
	Prefix   Path            // import path
	Alias    source.StringID // import rename
	Refs     []Path          // paths referenced from the body
	Body     string          // opaque body text
	Span     source.Span
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	out := n
	out.Attrs = cloneAttrs(n.Attrs)
	out.Children = slices.Clone(n.Children)
	if n.Fields != nil {
		out.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			f.Type = f.Type.Clone()
			out.Fields[i] = f
		}
	}
	out.Type = n.Type.Clone()
	out.Prefix = n.Prefix.Clone()
	if n.Refs != nil {
		out.Refs = make([]Path, len(n.Refs))
		for i, p := range n.Refs {
			out.Refs[i] = p.Clone()
		}
	}
	return out
}

// Paths returns pointers to every reference path held by n, for in-place rewrites
// on a node the caller owns.
func (n *Node) Paths() []*Path {
	out := make([]*Path, 0, len(n.Fields)+len(n.Refs)+2)
	for i := range n.Fields {
		out = append(out, &n.Fields[i].Type)
	}
	out = append(out, &n.Type, &n.Prefix)
	for i := range n.Refs {
		out = append(out, &n.Refs[i])
	}
	return out
}

// IndexOf returns the position of child in n.Children, or -1.
func (n *Node) IndexOf(child NodeID) int {
	return slices.Index(n.Children, child)
}
