package reorganize

import (
	"fmt"

	"reorg/internal/ast"
	"reorg/internal/diag"
)

// MergePlan groups the items to insert by destination container.
type MergePlan struct {
	dests   []ast.NodeID
	inserts map[ast.NodeID][]ast.NodeID

	// Skipped counts pairings dropped because the destination already held an
	// equivalent item or a group held an earlier equivalent.
	Skipped int
	// Dangling counts pairings whose source or destination was not in the
	// snapshot.
	Dangling int
}

// Destinations returns destination identities in first-seen order.
func (p *MergePlan) Destinations() []ast.NodeID { return p.dests }

// Items returns the queued items for dest in insertion order.
func (p *MergePlan) Items(dest ast.NodeID) []ast.NodeID { return p.inserts[dest] }

// Len counts queued items over all destinations.
func (p *MergePlan) Len() int {
	total := 0
	for _, items := range p.inserts {
		total += len(items)
	}
	return total
}

func (p *MergePlan) add(dest, item ast.NodeID) {
	if _, ok := p.inserts[dest]; !ok {
		p.dests = append(p.dests, dest)
	}
	p.inserts[dest] = append(p.inserts[dest], item)
}

// Plan filters info.DeclDestination into a MergePlan. A pairing is dropped
// when the destination's snapshot already holds an equivalent item; pairings
// that target the reserved stdlib identity are kept without that check. Each
// destination group then keeps only the first of mutually equivalent items.
func Plan(info *ModuleInfo, r diag.Reporter) *MergePlan {
	if r == nil {
		r = diag.NopReporter{}
	}
	store := info.ItemMap
	staged := &MergePlan{inserts: make(map[ast.NodeID][]ast.NodeID)}

	info.DeclDestination.Each(func(item, dest ast.NodeID) {
		src := store.Node(item)
		if src == nil {
			staged.Dangling++
			diag.ReportInfo(r, diag.ReoDanglingDecision, noSpan,
				fmt.Sprintf("item %d is not in the snapshot", item)).Emit()
			return
		}
		if dest == info.StdlibID {
			staged.add(dest, item)
			return
		}
		dst := store.Node(dest)
		if dst == nil {
			staged.Dangling++
			diag.ReportInfo(r, diag.ReoDanglingDecision, src.Span,
				fmt.Sprintf("destination %d is not in the snapshot", dest)).Emit()
			return
		}
		for _, existing := range dst.Children {
			if ast.Equiv(store.Node(existing), src, store, store) {
				staged.Skipped++
				return
			}
		}
		staged.add(dest, item)
	})

	plan := &MergePlan{
		inserts:  make(map[ast.NodeID][]ast.NodeID, len(staged.inserts)),
		Skipped:  staged.Skipped,
		Dangling: staged.Dangling,
	}
	for _, dest := range staged.dests {
		var kept []ast.NodeID
	group:
		for _, item := range staged.inserts[dest] {
			n := store.Node(item)
			for _, k := range kept {
				if ast.Equiv(store.Node(k), n, store, store) {
					plan.Skipped++
					continue group
				}
			}
			kept = append(kept, item)
		}
		plan.dests = append(plan.dests, dest)
		plan.inserts[dest] = kept
	}
	return plan
}
