package testkit

import (
	"fmt"

	"reorg/internal/ast"
)

// CheckTreeInvariants runs the structural invariants every rewritten tree must hold:
// 1) the root is a live container
// 2) every child identity resolves to a live node inside the arena
// 3) only containers and foreign blocks hold children
// 4) foreign blocks hold only foreign fns and foreign statics
// 5) no identity is listed under two parents, and the tree has no cycles
// 6) spans are well-formed
func CheckTreeInvariants(t *ast.Tree) error {
	if t == nil {
		return fmt.Errorf("nil tree")
	}
	root := t.Node(t.Root)
	if root == nil {
		return fmt.Errorf("root %d is not a live node", t.Root)
	}
	if root.Kind != ast.NodeContainer {
		return fmt.Errorf("root %d is a %s, not a container", t.Root, root.Kind)
	}
	size := t.Nodes.Len()

	parents := make(map[ast.NodeID]ast.NodeID, size)
	var visit func(id ast.NodeID) error
	visit = func(id ast.NodeID) error {
		n := t.Node(id)
		if n.Span.End < n.Span.Start {
			return fmt.Errorf("node %d has an inverted span %v", id, n.Span)
		}
		if len(n.Children) > 0 && !n.Kind.HasChildren() {
			return fmt.Errorf("node %d (%s) holds %d children", id, n.Kind, len(n.Children))
		}
		for _, child := range n.Children {
			if uint32(child) > size {
				return fmt.Errorf("node %d lists child %d beyond the arena (%d)", id, child, size)
			}
			c := t.Node(child)
			if c == nil {
				return fmt.Errorf("node %d lists missing child %d", id, child)
			}
			if n.Kind == ast.NodeForeignBlock && c.Kind != ast.NodeForeignFn && c.Kind != ast.NodeForeignStatic {
				return fmt.Errorf("foreign block %d holds a %s (%d)", id, c.Kind, child)
			}
			if child == t.Root {
				return fmt.Errorf("node %d lists the root as a child", id)
			}
			if prev, ok := parents[child]; ok {
				return fmt.Errorf("node %d is listed under both %d and %d", child, prev, id)
			}
			parents[child] = id
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(t.Root)
}
