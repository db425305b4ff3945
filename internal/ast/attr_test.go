package ast

import "testing"

func TestParseAttrRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cfg source header", `cfg(not(source_header = "/home/u/foo.h"))`, `cfg(not(source_header = "/home/u/foo.h"))`},
		{"wrapped", `#[cfg(not(source_header = "foo.h"))]`, `cfg(not(source_header = "foo.h"))`},
		{"list", `derive(Copy, Clone)`, `derive(Copy, Clone)`},
		{"number", `repr(align(16))`, `repr(align(16))`},
		{"escaped string", `doc = "say \"hi\""`, `doc = "say \"hi\""`},
		{"bare ident", `inline`, `inline`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAttr(tt.in)
			if err != nil {
				t.Fatalf("ParseAttr(%q): %v", tt.in, err)
			}
			if got := a.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAttrErrors(t *testing.T) {
	for _, in := range []string{
		`cfg(not(x)`,
		`cfg(x))`,
		`cfg(x]`,
		`doc = "unterminated`,
	} {
		if _, err := ParseAttr(in); err == nil {
			t.Errorf("ParseAttr(%q) succeeded, want error", in)
		}
	}
}

func TestAttrWalkDescendsIntoGroups(t *testing.T) {
	a := MustParseAttr(`cfg(all(unix, not(source_header = "/usr/include/stdio.h")))`)
	var idents, strs []string
	a.Walk(func(tok TokenTree) bool {
		switch tok.Kind {
		case TokIdent:
			idents = append(idents, tok.Text)
		case TokString:
			strs = append(strs, tok.Text)
		}
		return true
	})
	wantIdents := []string{"cfg", "all", "unix", "not", "source_header"}
	if len(idents) != len(wantIdents) {
		t.Fatalf("idents = %v, want %v", idents, wantIdents)
	}
	for i := range idents {
		if idents[i] != wantIdents[i] {
			t.Errorf("idents[%d] = %q, want %q", i, idents[i], wantIdents[i])
		}
	}
	if len(strs) != 1 || strs[0] != "/usr/include/stdio.h" {
		t.Errorf("strings = %v", strs)
	}
}

func TestAttrWalkStopsEarly(t *testing.T) {
	a := MustParseAttr(`a(b, c, d)`)
	visited := 0
	done := a.Walk(func(TokenTree) bool {
		visited++
		return visited < 2
	})
	if done || visited != 2 {
		t.Errorf("Walk returned %v after %d visits, want false after 2", done, visited)
	}
}
