package reorganize

import (
	"reorg/internal/ast"
	"reorg/internal/source"
)

// PurgeGenerated removes every container tagged as header-generated or
// standard-library from its parent, at any depth.
func PurgeGenerated(t *ast.Tree, info *ModuleInfo) (*ast.Tree, int) {
	out := t.Clone()
	removed := 0
	out.Walk(func(n *ast.Node, _ ast.NodeID) bool {
		if n.Kind != ast.NodeContainer {
			return true
		}
		kept := n.Children[:0:0]
		for _, id := range n.Children {
			if child := out.Node(id); child != nil && info.Provenance(child).Generated() {
				removed++
				continue
			}
			kept = append(kept, id)
		}
		n.Children = kept
		return true
	})
	return out, removed
}

// PurgeForeignDuplicates drops foreign declarations that clash with the
// snapshot in store. A foreign item goes when a sibling declaration of its
// enclosing container has the same name, or when an earlier foreign block of
// that container still holds a same-named item. Dropped items are remembered
// so that later blocks do not lose their copy to an item already removed.
func PurgeForeignDuplicates(t *ast.Tree, store *ItemStore) (*ast.Tree, int) {
	out := t.Clone()
	p := foreignPurge{
		tree:       out,
		store:      store,
		containers: store.Containers(),
		deleted:    make(map[ast.NodeID]bool),
	}
	out.Walk(func(n *ast.Node, _ ast.NodeID) bool {
		if n.Kind != ast.NodeForeignBlock {
			return true
		}
		var kept []ast.NodeID
		for _, id := range n.Children {
			item := out.Node(id)
			if item != nil && p.clashes(n, item) {
				p.deleted[id] = true
				continue
			}
			kept = append(kept, id)
		}
		// decisions above saw the block as it was in the snapshot
		n.Children = kept
		return false
	})
	return out, len(p.deleted)
}

type foreignPurge struct {
	tree       *ast.Tree
	store      *ItemStore
	containers []*ast.Node
	deleted    map[ast.NodeID]bool
}

func (p *foreignPurge) clashes(block, item *ast.Node) bool {
	if item.Name == source.NoStringID {
		return false
	}
	for _, c := range p.containers {
		pos := p.position(c, block)
		if pos < 0 {
			continue
		}
		for i, id := range c.Children {
			sib := p.store.Node(id)
			if sib == nil || id == block.ID {
				continue
			}
			if sib.Kind != ast.NodeForeignBlock {
				if sib.Name == item.Name {
					return true
				}
				continue
			}
			if i >= pos {
				continue
			}
			for _, other := range sib.Children {
				o := p.store.Node(other)
				if o != nil && o.Name == item.Name && !p.deleted[other] {
					return true
				}
			}
		}
	}
	return false
}

// position locates block among c's children: by identity, else the first
// structurally equivalent child. -1 when c does not enclose it.
func (p *foreignPurge) position(c, block *ast.Node) int {
	if i := c.IndexOf(block.ID); i >= 0 {
		return i
	}
	for i, id := range c.Children {
		child := p.store.Node(id)
		if child != nil && child.Kind == ast.NodeForeignBlock && ast.Equiv(child, block, p.store, p.tree) {
			return i
		}
	}
	return -1
}

// PurgeDeadImports removes imports whose path names a sibling declaration
// (fn, struct, union, enum or type alias) of the same container.
func PurgeDeadImports(t *ast.Tree) (*ast.Tree, int) {
	out := t.Clone()
	removed := 0
	out.Walk(func(n *ast.Node, _ ast.NodeID) bool {
		if n.Kind != ast.NodeContainer {
			return true
		}
		decls := make(map[source.StringID]bool)
		for _, id := range n.Children {
			if c := out.Node(id); c != nil && c.Kind.IsDecl() && c.Name != source.NoStringID {
				decls[c.Name] = true
			}
		}
		kept := n.Children[:0:0]
		for _, id := range n.Children {
			c := out.Node(id)
			if c != nil && c.Kind == ast.NodeImport && namesAny(c.Prefix, decls) {
				removed++
				continue
			}
			kept = append(kept, id)
		}
		n.Children = kept
		return true
	})
	return out, removed
}

func namesAny(p ast.Path, names map[source.StringID]bool) bool {
	for _, seg := range p.Segments {
		if names[seg] {
			return true
		}
	}
	return false
}
