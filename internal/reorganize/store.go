package reorganize

import (
	"reorg/internal/ast"
)

// ItemStore is an immutable snapshot of every reachable node, keyed by
// identity. Passes look nodes up here after they have been moved or deleted
// from the live tree.
type ItemStore struct {
	items map[ast.NodeID]*ast.Node
	order []ast.NodeID
}

// Snapshot copies every node reachable from the root in one traversal.
// A node referenced from several containers is recorded once.
func Snapshot(t *ast.Tree) *ItemStore {
	s := &ItemStore{items: make(map[ast.NodeID]*ast.Node, t.Nodes.Len())}
	t.Walk(func(n *ast.Node, _ ast.NodeID) bool {
		cp := n.Clone()
		s.items[n.ID] = &cp
		s.order = append(s.order, n.ID)
		return true
	})
	return s
}

// Node returns the snapshot of id, or nil. The result must not be modified.
func (s *ItemStore) Node(id ast.NodeID) *ast.Node {
	if s == nil {
		return nil
	}
	return s.items[id]
}

func (s *ItemStore) Has(id ast.NodeID) bool {
	_, ok := s.items[id]
	return ok
}

func (s *ItemStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IDs returns identities in traversal order.
func (s *ItemStore) IDs() []ast.NodeID {
	return s.order
}

// Containers returns the snapshots of all containers in traversal order.
func (s *ItemStore) Containers() []*ast.Node {
	var out []*ast.Node
	for _, id := range s.order {
		if n := s.items[id]; n.Kind == ast.NodeContainer {
			out = append(out, n)
		}
	}
	return out
}
