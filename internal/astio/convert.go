package astio

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"reorg/internal/ast"
	"reorg/internal/source"
)

// FromTree renders every node reachable from the root. A node shared by
// several containers is written under each of them.
func FromTree(t *ast.Tree) *Document {
	doc := &Document{Schema: schemaVersion, Unit: t.Unit}
	root := t.Node(t.Root)
	if root == nil {
		return doc
	}
	doc.Attrs = attrTexts(root.Attrs)
	doc.Items = itemsOf(t, root.Children, map[ast.NodeID]bool{t.Root: true})
	return doc
}

// itemsOf converts ids; active guards against a container that holds itself.
func itemsOf(t *ast.Tree, ids []ast.NodeID, active map[ast.NodeID]bool) []Item {
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		n := t.Node(id)
		if n == nil || active[id] {
			continue
		}
		it := Item{
			Kind:  n.Kind.String(),
			Name:  t.Name(n.Name),
			Attrs: attrTexts(n.Attrs),
			Type:  t.PathString(n.Type),
			Path:  t.PathString(n.Prefix),
			Alias: t.Name(n.Alias),
			Body:  n.Body,
		}
		if n.Vis == ast.VisPublic {
			it.Vis = "pub"
		}
		for _, f := range n.Fields {
			it.Fields = append(it.Fields, FieldDoc{Name: t.Name(f.Name), Type: t.PathString(f.Type)})
		}
		for _, r := range n.Refs {
			it.Refs = append(it.Refs, t.PathString(r))
		}
		if !n.Span.Empty() {
			it.Span = []uint32{n.Span.Start, n.Span.End}
		}
		if n.Kind.HasChildren() {
			active[id] = true
			it.Items = itemsOf(t, n.Children, active)
			delete(active, id)
		}
		out = append(out, it)
	}
	return out
}

func attrTexts(attrs []ast.Attr) []string {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.String()
	}
	return out
}

// ToTree builds a tree, assigning identities in document order.
func ToTree(doc *Document) (*ast.Tree, error) {
	if doc.Schema > schemaVersion {
		return nil, fmt.Errorf("document schema %d is newer than supported %d", doc.Schema, schemaVersion)
	}
	t := ast.NewTree(doc.Unit, uint(countItems(doc.Items)+1))
	root := t.Node(t.Root)
	attrs, err := parseAttrs(doc.Attrs)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	root.Attrs = attrs
	if err := addItems(t, t.Root, doc.Items, "root"); err != nil {
		return nil, err
	}
	return t, nil
}

func countItems(items []Item) int {
	n := len(items)
	for i := range items {
		n += countItems(items[i].Items)
	}
	return n
}

func addItems(t *ast.Tree, parent ast.NodeID, items []Item, where string) error {
	for i := range items {
		it := &items[i]
		loc := fmt.Sprintf("%s/%d", where, i)
		if it.Name != "" {
			loc = where + "/" + it.Name
		}
		kind, ok := ast.ParseNodeKind(it.Kind)
		if !ok {
			return fmt.Errorf("%s: unknown kind %q", loc, it.Kind)
		}
		if len(it.Items) > 0 && !kind.HasChildren() {
			return fmt.Errorf("%s: %s cannot hold items", loc, it.Kind)
		}
		attrs, err := parseAttrs(it.Attrs)
		if err != nil {
			return fmt.Errorf("%s: %w", loc, err)
		}
		n := ast.Node{
			Kind:   kind,
			Name:   internOpt(t, it.Name),
			Vis:    ast.ParseVisibility(it.Vis),
			Attrs:  attrs,
			Type:   parsePath(t, it.Type),
			Prefix: parsePath(t, it.Path),
			Alias:  internOpt(t, it.Alias),
			Body:   it.Body,
		}
		for _, f := range it.Fields {
			n.Fields = append(n.Fields, ast.Field{Name: internOpt(t, f.Name), Type: parsePath(t, f.Type)})
		}
		for _, r := range it.Refs {
			n.Refs = append(n.Refs, parsePath(t, r))
		}
		switch len(it.Span) {
		case 0:
		case 2:
			n.Span = source.Span{Start: it.Span[0], End: it.Span[1]}
		default:
			return fmt.Errorf("%s: span wants [start, end], got %d values", loc, len(it.Span))
		}
		id := t.Add(n)
		t.AppendChild(parent, id)
		if err := addItems(t, id, it.Items, loc); err != nil {
			return err
		}
	}
	return nil
}

// Identifiers are interned in NFC so that container-name containment and
// equivalence compare canonical forms.
func internOpt(t *ast.Tree, s string) source.StringID {
	if s == "" {
		return source.NoStringID
	}
	return t.Intern(norm.NFC.String(s))
}

func parsePath(t *ast.Tree, s string) ast.Path {
	return ast.ParsePath(t.Strings, norm.NFC.String(s))
}

func parseAttrs(texts []string) ([]ast.Attr, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([]ast.Attr, len(texts))
	for i, s := range texts {
		a, err := ast.ParseAttr(s)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}
