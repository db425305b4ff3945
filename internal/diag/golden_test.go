package diag

import (
	"testing"

	"reorg/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		New(SevWarning, ReoAmbiguousMatch, source.Span{}, "matches foo and foobar\nlast wins").
			WithSubject("foobar_h").
			WithNote(source.Span{}, "policy last"),
		New(SevInfo, ReoNoDestination, source.Span{}, "left in place").WithSubject("zzz_h"),
	}

	expected := "warning REO1002 foo.rs:foobar_h matches foo and foobar last wins\n" +
		"note REO1002 foo.rs:foobar_h policy last\n" +
		"info REO1001 foo.rs:zzz_h left in place"

	if got := FormatShortDiagnostics(diags, "foo.rs", true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	ReportInfo(r, ReoNoDestination, source.Span{Start: 10, End: 12}, "left in place").WithSubject("b_h").Emit()
	ReportWarning(r, ReoAmbiguousMatch, source.Span{Start: 10, End: 12}, "two matches").WithSubject("b_h").Emit()
	ReportInfo(r, ReoNoDestination, source.Span{Start: 1, End: 2}, "left in place").WithSubject("a_h").Emit()
	ReportInfo(r, ReoNoDestination, source.Span{Start: 1, End: 2}, "left in place").WithSubject("a_h").Emit()

	bag.Dedup()
	bag.Sort()
	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics after dedup, got %d", len(items))
	}
	if items[0].Subject != "a_h" || items[1].Code != ReoAmbiguousMatch || items[2].Code != ReoNoDestination {
		t.Errorf("unexpected order: %+v", items)
	}
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Error("severity queries disagree with contents")
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(New(SevInfo, ReoInfo, source.Span{}, "one")) {
		t.Fatal("first Add must succeed")
	}
	if bag.Add(New(SevInfo, ReoInfo, source.Span{}, "two")) {
		t.Error("Add beyond the limit must be rejected")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		ReportInfo(r, ReoStdlibRouted, source.Span{}, "routed").WithSubject("stdio_h").Emit()
	}
	if bag.Len() != 1 {
		t.Errorf("DedupReporter forwarded %d diagnostics, want 1", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportInfo(BagReporter{Bag: bag}, ReoInfo, source.Span{}, "x")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Errorf("Emit twice produced %d diagnostics", bag.Len())
	}
}
