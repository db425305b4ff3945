package reorganize

import (
	"reorg/internal/ast"
	"reorg/internal/source"
)

var noSpan source.Span

// CleansePaths drops the leading run of `self` and `super` segments from every
// multi-segment path. A path never loses its last segment.
func CleansePaths(t *ast.Tree) (*ast.Tree, int) {
	out := t.Clone()
	self, hasSelf := out.Strings.Find("self")
	super, hasSuper := out.Strings.Find("super")
	if !hasSelf && !hasSuper {
		return out, 0
	}
	marker := func(id source.StringID) bool {
		return (hasSelf && id == self) || (hasSuper && id == super)
	}
	changed := 0
	out.Walk(func(n *ast.Node, _ ast.NodeID) bool {
		for _, p := range n.Paths() {
			if p.Len() < 2 {
				continue
			}
			lead := 0
			for lead < p.Len()-1 && marker(p.Segments[lead]) {
				lead++
			}
			if lead > 0 {
				p.Segments = append([]source.StringID(nil), p.Segments[lead:]...)
				changed++
			}
		}
		return true
	})
	return out, changed
}

// Insert appends every planned item, taken from the snapshot, to its live
// destination. Destinations that are not live containers are skipped; the
// reserved stdlib identity is handled by Synthesize.
func Insert(t *ast.Tree, plan *MergePlan, store *ItemStore) (*ast.Tree, int) {
	out := t.Clone()
	inserted := 0
	for _, dest := range plan.Destinations() {
		d := out.Node(dest)
		if d == nil || d.Kind != ast.NodeContainer {
			continue
		}
		for _, id := range plan.Items(dest) {
			snap := store.Node(id)
			if snap == nil {
				continue
			}
			if err := out.Put(id, snap.Clone()); err != nil {
				continue
			}
			d.Children = append(d.Children, id)
			inserted++
		}
	}
	return out, inserted
}

// Synthesize creates the stdlib container under the reserved identity and
// appends it to the root, but only when the plan queued items for it.
func Synthesize(t *ast.Tree, plan *MergePlan, info *ModuleInfo, name string) (*ast.Tree, int) {
	out := t.Clone()
	items := plan.Items(info.StdlibID)
	if len(items) == 0 {
		return out, 0
	}
	children := make([]ast.NodeID, 0, len(items))
	for _, id := range items {
		snap := info.ItemMap.Node(id)
		if snap == nil {
			continue
		}
		if err := out.Put(id, snap.Clone()); err != nil {
			continue
		}
		children = append(children, id)
	}
	err := out.Put(info.StdlibID, ast.Node{
		Kind:     ast.NodeContainer,
		Name:     out.Intern(name),
		Vis:      ast.VisPublic,
		Children: children,
	})
	if err != nil {
		return out, 0
	}
	out.AppendChild(out.Root, info.StdlibID)
	return out, len(children)
}

// Rename rewrites every path segment found in info.NewNames.
func Rename(t *ast.Tree, info *ModuleInfo) (*ast.Tree, int) {
	out := t.Clone()
	if len(info.NewNames) == 0 {
		return out, 0
	}
	renamed := 0
	out.Walk(func(n *ast.Node, _ ast.NodeID) bool {
		for _, p := range n.Paths() {
			for i, seg := range p.Segments {
				if to, ok := info.NewNames[seg]; ok && to != seg {
					p.Segments[i] = to
					renamed++
				}
			}
		}
		return true
	})
	return out, renamed
}
