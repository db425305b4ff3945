package reorganize

import (
	"fmt"
	"strings"

	"reorg/internal/ast"
	"reorg/internal/diag"
	"reorg/internal/trace"
)

// Matcher routes the children of every generated container to a destination
// and records the container renames.
type Matcher struct {
	TieBreak   TieBreak
	StdlibName string
	Reporter   diag.Reporter
	Tracer     trace.Tracer
	SpanID     uint64 // parent span for point events
}

type candidate struct {
	id   ast.NodeID
	name string
}

// Match fills info.DeclDestination and info.NewNames. Containers are
// classified by their tags; stdlib routing wins over name matching.
func (m *Matcher) Match(t *ast.Tree, info *ModuleInfo) {
	if m.Reporter == nil {
		m.Reporter = diag.NopReporter{}
	}
	stdlibName := m.StdlibName
	if stdlibName == "" {
		stdlibName = DefaultStdlibName
	}
	candidates := m.candidates(t, info)

	for _, id := range t.Containers() {
		live := t.Node(id)
		tag := info.Provenance(live)
		if !tag.Generated() {
			continue
		}
		snap := info.ItemMap.Node(id)
		if snap == nil {
			continue
		}
		name := t.Name(snap.Name)

		if tag.Kind == ast.ProvStdlib {
			for _, child := range snap.Children {
				info.DeclDestination.Set(child, info.StdlibID)
			}
			info.rename(snap.Name, t.Intern(stdlibName))
			diag.ReportInfo(m.Reporter, diag.ReoStdlibRouted, snap.Span,
				fmt.Sprintf("%d item(s) routed to %s", len(snap.Children), stdlibName)).
				WithSubject(name).
				WithNote(snap.Span, "header "+tag.Header).
				Emit()
			m.point("stdlib:"+name, stdlibName)
			continue
		}

		matches := matchesFor(name, candidates)
		if len(matches) == 0 {
			diag.ReportInfo(m.Reporter, diag.ReoNoDestination, snap.Span,
				"no container name is contained in this name; its items are removed with it").
				WithSubject(name).
				Emit()
			m.point("unmatched:"+name, "")
			continue
		}
		dest := m.pick(matches)
		if len(matches) > 1 {
			b := diag.ReportWarning(m.Reporter, diag.ReoAmbiguousMatch, snap.Span,
				fmt.Sprintf("%d containers match; %s policy picked %q", len(matches), m.TieBreak, dest.name)).
				WithSubject(name)
			for _, c := range matches {
				b.WithNote(snap.Span, "candidate "+c.name)
			}
			b.Emit()
		}
		for _, child := range snap.Children {
			info.DeclDestination.Set(child, dest.id)
		}
		info.rename(snap.Name, t.Intern(dest.name))
		diag.ReportInfo(m.Reporter, diag.ReoMatched, snap.Span,
			fmt.Sprintf("%d item(s) merged into %s", len(snap.Children), dest.name)).
			WithSubject(name).
			Emit()
		m.point("match:"+name, dest.name)
	}
}

// candidates lists the root and the top-level containers that are not
// header-generated, with the name each is compared under.
func (m *Matcher) candidates(t *ast.Tree, info *ModuleInfo) []candidate {
	var out []candidate
	for _, id := range t.TopLevel() {
		n := t.Node(id)
		if info.Provenance(n).Generated() {
			continue
		}
		name := t.Name(n.Name)
		if id == t.Root {
			name = t.UnitName()
		}
		if name == "" {
			continue
		}
		out = append(out, candidate{id: id, name: name})
	}
	return out
}

func matchesFor(name string, cands []candidate) []candidate {
	var out []candidate
	for _, c := range cands {
		if strings.Contains(name, c.name) {
			out = append(out, c)
		}
	}
	return out
}

func (m *Matcher) pick(matches []candidate) candidate {
	switch m.TieBreak {
	case TieBreakFirst:
		return matches[0]
	case TieBreakLongest:
		best := matches[0]
		for _, c := range matches[1:] {
			if len(c.name) > len(best.name) {
				best = c
			}
		}
		return best
	default:
		return matches[len(matches)-1]
	}
}

func (m *Matcher) point(name, detail string) {
	trace.Point(m.Tracer, trace.ScopeModule, name, detail, m.SpanID, nil)
}
