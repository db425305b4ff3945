package ast

import (
	"fmt"
	"path/filepath"
	"strings"

	"reorg/internal/source"
)

// Tree is one compilation unit: an arena of nodes addressed by NodeID with a
// root container. The root has an empty name.
type Tree struct {
	Unit    string // path of the unit the tree was produced from
	Strings *source.Interner
	Nodes   *Arena[Node]
	Root    NodeID
}

// NewTree creates a tree holding only an empty, public root container.
func NewTree(unit string, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	t := &Tree{
		Unit:    unit,
		Strings: source.NewInterner(),
		Nodes:   NewArena[Node](capHint),
	}
	t.Root = t.Add(Node{Kind: NodeContainer, Vis: VisPublic})
	return t
}

// Node returns the live node for id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	n := t.Nodes.Get(uint32(id))
	if n == nil || n.Kind == NodeReserved {
		return nil
	}
	return n
}

// Add allocates n in the arena and returns its new identity.
func (t *Tree) Add(n Node) NodeID {
	id := NodeID(t.Nodes.Len() + 1)
	n.ID = id
	t.Nodes.Allocate(n)
	return id
}

// Reserve allocates an identity that is not yet part of the tree. It is larger
// than every identity allocated before it.
func (t *Tree) Reserve() NodeID {
	return t.Add(Node{Kind: NodeReserved})
}

// Put stores n under id, which must already be allocated.
func (t *Tree) Put(id NodeID, n Node) error {
	slot := t.Nodes.Get(uint32(id))
	if slot == nil {
		return fmt.Errorf("node %d is not allocated", id)
	}
	n.ID = id
	*slot = n
	return nil
}

// AppendChild adds child to parent's child list.
func (t *Tree) AppendChild(parent, child NodeID) {
	p := t.Node(parent)
	if p == nil || !p.Kind.HasChildren() {
		panic(fmt.Errorf("node %d cannot hold children", parent))
	}
	p.Children = append(p.Children, child)
}

func (t *Tree) Intern(s string) source.StringID { return t.Strings.Intern(s) }

// Name returns the identifier text for id.
func (t *Tree) Name(id source.StringID) string {
	s, _ := t.Strings.Lookup(id)
	return s
}

// PathString renders p with this tree's interner.
func (t *Tree) PathString(p Path) string { return FormatPath(t.Strings, p) }

// UnitName is the unit's base file name without extension, e.g. "foo" for
// "src/foo.rs". It stands in for the root container's empty name.
func (t *Tree) UnitName() string {
	base := filepath.Base(t.Unit)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Clone returns an independent deep copy; identities and string IDs are preserved.
func (t *Tree) Clone() *Tree {
	return &Tree{
		Unit:    t.Unit,
		Strings: t.Strings.Clone(),
		Nodes:   t.Nodes.Clone(Node.Clone),
		Root:    t.Root,
	}
}

// Walk visits every node reachable from the root in pre-order, each identity at
// most once. parent is NoNodeID for the root. Returning false skips the
// node's children.
func (t *Tree) Walk(fn func(n *Node, parent NodeID) bool) {
	seen := make(map[NodeID]bool, t.Nodes.Len())
	var visit func(id, parent NodeID)
	visit = func(id, parent NodeID) {
		if seen[id] {
			return
		}
		n := t.Node(id)
		if n == nil {
			return
		}
		seen[id] = true
		if !fn(n, parent) || !n.Kind.HasChildren() {
			return
		}
		// fn may have rewritten the child list
		for _, child := range n.Children {
			visit(child, id)
		}
	}
	visit(t.Root, NoNodeID)
}

// Containers returns every reachable container, root first, in pre-order.
func (t *Tree) Containers() []NodeID {
	var out []NodeID
	t.Walk(func(n *Node, _ NodeID) bool {
		if n.Kind == NodeContainer {
			out = append(out, n.ID)
		}
		return true
	})
	return out
}

// TopLevel returns the root followed by the containers directly under it.
func (t *Tree) TopLevel() []NodeID {
	root := t.Node(t.Root)
	if root == nil {
		return nil
	}
	out := []NodeID{t.Root}
	for _, child := range root.Children {
		if n := t.Node(child); n != nil && n.Kind == NodeContainer {
			out = append(out, child)
		}
	}
	return out
}

// Reachable counts the nodes reachable from the root.
func (t *Tree) Reachable() int {
	count := 0
	t.Walk(func(*Node, NodeID) bool {
		count++
		return true
	})
	return count
}
