package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	sp := Begin(tr, ScopePass, "insert", 0)
	Point(tr, ScopeModule, "match:foo_h", "foo", sp.ID(), nil)
	sp.End("2 items")

	out := buf.String()
	if !strings.Contains(out, "insert") || !strings.Contains(out, "(2 items)") {
		t.Errorf("pass span missing from output:\n%s", out)
	}
	if strings.Contains(out, "match:foo_h") {
		t.Errorf("module-scope point leaked at phase level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeModule, "match:foo_h", "foo", 0, map[string]string{"policy": "last"})

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{`"kind":"point"`, `"scope":"module"`, `"name":"match:foo_h"`, `"policy":"last"`} {
		if !strings.Contains(line, want) {
			t.Errorf("ndjson line %s lacks %s", line, want)
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopePass, name, "", 0, nil)
	}
	events := r.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Errorf("ring kept %+v, want b,c", events)
	}
}

func TestRingOfFindsRingInsideMulti(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText), ring)
	got, ok := RingOf(multi)
	if !ok || got != ring {
		t.Error("RingOf did not find the ring tracer")
	}
	if _, ok := RingOf(Nop); ok {
		t.Error("Nop has no ring")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
	r := NewRingTracer(1, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Error("tracer lost in context")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(detail) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel must reject unknown levels")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}
