package ast

// Lookup resolves identities to nodes. Both *Tree and snapshot stores implement it.
type Lookup interface {
	Node(id NodeID) *Node
}

// Equiv reports whether a and b are structurally equivalent: same content,
// ignoring identities and spans. Children are resolved through la and lb and
// compared recursively. Both sides must use the same string interner
// assignment, which holds for any two views descended from one Tree.
func Equiv(a, b *Node, la, lb Lookup) bool {
	eq := equiv{la: la, lb: lb, active: make(map[[2]NodeID]bool)}
	return eq.nodes(a, b)
}

type equiv struct {
	la, lb Lookup
	active map[[2]NodeID]bool // pairs under comparison; a revisit is assumed equal
}

func (e *equiv) nodes(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	key := [2]NodeID{a.ID, b.ID}
	if e.active[key] {
		return true
	}
	if a.Kind != b.Kind || a.Name != b.Name || a.Vis != b.Vis || a.Alias != b.Alias || a.Body != b.Body {
		return false
	}
	if !a.Type.SameSegments(b.Type) || !a.Prefix.SameSegments(b.Prefix) {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Fields) != len(b.Fields) ||
		len(a.Refs) != len(b.Refs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if !sameTrees(a.Attrs[i].Tokens, b.Attrs[i].Tokens) {
			return false
		}
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name || !a.Fields[i].Type.SameSegments(b.Fields[i].Type) {
			return false
		}
	}
	for i := range a.Refs {
		if !a.Refs[i].SameSegments(b.Refs[i]) {
			return false
		}
	}
	e.active[key] = true
	defer delete(e.active, key)
	for i := range a.Children {
		if !e.nodes(e.la.Node(a.Children[i]), e.lb.Node(b.Children[i])) {
			return false
		}
	}
	return true
}
