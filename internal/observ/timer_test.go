package observ

import (
	"strings"
	"testing"
)

func TestTimerMeasureKeepsOrderAndNotes(t *testing.T) {
	tm := NewTimer()
	tm.Measure("cleanse", func() string { return "" })
	tm.Measure("insert", func() string { return "3 items" })

	names := tm.Names()
	if len(names) != 2 || names[0] != "cleanse" || names[1] != "insert" {
		t.Fatalf("Names = %v", names)
	}
	rep := tm.Report()
	if rep.Phases[1].Note != "3 items" {
		t.Errorf("note = %q", rep.Phases[1].Note)
	}
	if !strings.Contains(tm.Summary(), "// 3 items") {
		t.Errorf("summary lacks note:\n%s", tm.Summary())
	}
}

func TestTimerEndIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "x")
	if len(tm.Report().Phases) != 0 {
		t.Error("End with a bad index must not add phases")
	}
}

func TestTimerMergePrefixesNames(t *testing.T) {
	inner := NewTimer()
	inner.Measure("rename", func() string { return "" })
	outer := NewTimer()
	outer.Measure("decode", func() string { return "" })
	outer.Merge("reorganize/", inner)
	outer.Merge("x/", nil)

	names := outer.Names()
	if len(names) != 2 || names[1] != "reorganize/rename" {
		t.Errorf("Names = %v", names)
	}
}
