package reorganize

import (
	"reorg/internal/ast"
	"reorg/internal/source"
)

// Decisions maps a source item to its destination container. Iteration
// follows first-record order; recording an item again overwrites its
// destination in place.
type Decisions struct {
	order []ast.NodeID
	dest  map[ast.NodeID]ast.NodeID
}

func newDecisions() *Decisions {
	return &Decisions{dest: make(map[ast.NodeID]ast.NodeID)}
}

func (d *Decisions) Set(item, dest ast.NodeID) {
	if _, ok := d.dest[item]; !ok {
		d.order = append(d.order, item)
	}
	d.dest[item] = dest
}

func (d *Decisions) Get(item ast.NodeID) (ast.NodeID, bool) {
	dest, ok := d.dest[item]
	return dest, ok
}

func (d *Decisions) Len() int { return len(d.order) }

// Each calls fn for every pairing in order.
func (d *Decisions) Each(fn func(item, dest ast.NodeID)) {
	for _, item := range d.order {
		fn(item, d.dest[item])
	}
}

// ModuleInfo is the working state threaded through the passes.
type ModuleInfo struct {
	ItemMap         *ItemStore
	DeclDestination *Decisions
	// NewNames maps an old container identifier to its replacement for
	// reference rewriting.
	NewNames map[source.StringID]source.StringID
	// StdlibID is reserved for the synthetic stdlib container before any
	// classification happens.
	StdlibID ast.NodeID

	classifier Classifier
	tags       map[ast.NodeID]ast.Provenance
}

// NewModuleInfo snapshots t and tags every container once.
func NewModuleInfo(t *ast.Tree, stdlibID ast.NodeID, c Classifier) *ModuleInfo {
	info := &ModuleInfo{
		DeclDestination: newDecisions(),
		NewNames:        make(map[source.StringID]source.StringID),
		StdlibID:        stdlibID,
		classifier:      c,
		tags:            make(map[ast.NodeID]ast.Provenance),
	}
	info.Resnapshot(t)
	return info
}

// Resnapshot replaces ItemMap with a snapshot of t; t becomes authoritative.
func (info *ModuleInfo) Resnapshot(t *ast.Tree) {
	info.ItemMap = Snapshot(t)
	for _, n := range info.ItemMap.Containers() {
		if _, ok := info.tags[n.ID]; !ok {
			info.tags[n.ID] = info.classifier.Tag(n.Attrs)
		}
	}
}

// Provenance returns the tag of n, computing it once for nodes first seen
// after the snapshot.
func (info *ModuleInfo) Provenance(n *ast.Node) ast.Provenance {
	if n == nil || n.Kind != ast.NodeContainer {
		return ast.Provenance{}
	}
	if tag, ok := info.tags[n.ID]; ok {
		return tag
	}
	tag := info.classifier.Tag(n.Attrs)
	info.tags[n.ID] = tag
	return tag
}

func (info *ModuleInfo) rename(from, to source.StringID) {
	info.NewNames[from] = to
}
