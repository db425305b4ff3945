package ast

import "testing"

func TestReserveIsAboveExistingIDs(t *testing.T) {
	b := NewBuilder("foo.rs")
	m := b.Container(b.Root(), "foo")
	s := b.Struct(m, "buffer_t", b.Field("data", "i32"))

	id := b.Tree.Reserve()
	if id <= s || id <= m || id <= b.Root() {
		t.Fatalf("reserved id %d is not above existing ids", id)
	}
	if b.Tree.Node(id) != nil {
		t.Error("a reserved slot must not resolve as a live node")
	}
	if err := b.Tree.Put(id, Node{Kind: NodeContainer}); err != nil {
		t.Fatal(err)
	}
	if n := b.Tree.Node(id); n == nil || n.ID != id {
		t.Errorf("Put did not fill the reserved slot: %+v", n)
	}
}

func TestPutRejectsUnallocated(t *testing.T) {
	tree := NewTree("x.rs", 0)
	if err := tree.Put(NodeID(99), Node{}); err == nil {
		t.Error("Put into an unallocated id must fail")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBuilder("foo.rs")
	m := b.Container(b.Root(), "foo")
	b.Alias(m, "size_t", "libc::c_ulong")

	clone := b.Tree.Clone()
	clone.Node(m).Children = nil
	clone.Intern("only_in_clone")

	if len(b.Tree.Node(m).Children) != 1 {
		t.Error("mutating the clone's children changed the original")
	}
	if _, ok := b.Tree.Strings.Find("only_in_clone"); ok {
		t.Error("clone shares its interner with the original")
	}
}

func TestWalkVisitsAliasedChildOnce(t *testing.T) {
	b := NewBuilder("foo.rs")
	a := b.Container(b.Root(), "a")
	c := b.Container(b.Root(), "c")
	s := b.Struct(a, "shared")
	b.Tree.AppendChild(c, s)

	seen := map[NodeID]int{}
	b.Tree.Walk(func(n *Node, _ NodeID) bool {
		seen[n.ID]++
		return true
	})
	if seen[s] != 1 {
		t.Errorf("aliased node visited %d times, want 1", seen[s])
	}
	if b.Tree.Reachable() != 4 {
		t.Errorf("Reachable = %d, want 4", b.Tree.Reachable())
	}
}

func TestContainersAndTopLevel(t *testing.T) {
	b := NewBuilder("foo.rs")
	outer := b.Container(b.Root(), "outer")
	inner := b.Container(outer, "inner")
	b.Struct(b.Root(), "loose")

	all := b.Tree.Containers()
	if len(all) != 3 || all[0] != b.Root() || all[1] != outer || all[2] != inner {
		t.Errorf("Containers = %v", all)
	}
	top := b.Tree.TopLevel()
	if len(top) != 2 || top[0] != b.Root() || top[1] != outer {
		t.Errorf("TopLevel = %v", top)
	}
}

func TestUnitName(t *testing.T) {
	tests := map[string]string{
		"src/foo.rs":   "foo",
		"buffer.c":     "buffer",
		"lib":          "lib",
		"a/b/c.tar.rs": "c.tar",
	}
	for unit, want := range tests {
		if got := NewTree(unit, 0).UnitName(); got != want {
			t.Errorf("UnitName(%q) = %q, want %q", unit, got, want)
		}
	}
}
