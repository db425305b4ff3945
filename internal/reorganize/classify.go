package reorganize

import (
	"strings"

	"reorg/internal/ast"
)

// DefaultSourceHeaderIdent is the identifier the transpiler puts in the
// `cfg(not(source_header = "..."))` attribute of every per-header container.
const DefaultSourceHeaderIdent = "source_header"

// DefaultStdlibMarkers are header path substrings that denote the C standard
// library: the system include directory, the builtin stddef definitions and the
// vararg placeholder header.
var DefaultStdlibMarkers = []string{"/usr/include", "stddef", "vararg"}

// Classifier decides container provenance from attributes.
type Classifier struct {
	SourceHeaderIdent string
	StdlibMarkers     []string
}

func DefaultClassifier() Classifier {
	return Classifier{
		SourceHeaderIdent: DefaultSourceHeaderIdent,
		StdlibMarkers:     append([]string(nil), DefaultStdlibMarkers...),
	}
}

// HasSourceHeader reports whether any token, at any nesting depth, is the
// source-header identifier.
func (c Classifier) HasSourceHeader(attrs []ast.Attr) bool {
	found := false
	for _, a := range attrs {
		a.Walk(func(tok ast.TokenTree) bool {
			if tok.Kind == ast.TokIdent && tok.Text == c.SourceHeaderIdent {
				found = true
			}
			return !found
		})
		if found {
			return true
		}
	}
	return false
}

// IsStandardLibrary reports whether any string literal, at any nesting depth,
// contains one of the stdlib markers.
func (c Classifier) IsStandardLibrary(attrs []ast.Attr) bool {
	found := false
	for _, a := range attrs {
		a.Walk(func(tok ast.TokenTree) bool {
			if tok.Kind == ast.TokString && c.isStdlibPath(tok.Text) {
				found = true
			}
			return !found
		})
		if found {
			return true
		}
	}
	return false
}

func (c Classifier) isStdlibPath(s string) bool {
	for _, m := range c.StdlibMarkers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Tag folds both predicates into one provenance value. Standard-library
// classification takes precedence over the source-header marker.
func (c Classifier) Tag(attrs []ast.Attr) ast.Provenance {
	switch {
	case c.IsStandardLibrary(attrs):
		return ast.Provenance{Kind: ast.ProvStdlib, Header: c.headerPath(attrs)}
	case c.HasSourceHeader(attrs):
		return ast.Provenance{Kind: ast.ProvSourceHeader, Header: c.headerPath(attrs)}
	default:
		return ast.Provenance{}
	}
}

// headerPath returns the first string literal that follows the source-header
// identifier, falling back to the first string literal of any attribute.
func (c Classifier) headerPath(attrs []ast.Attr) string {
	var first, afterMarker string
	seenMarker := false
	for _, a := range attrs {
		a.Walk(func(tok ast.TokenTree) bool {
			switch {
			case tok.Kind == ast.TokIdent && tok.Text == c.SourceHeaderIdent:
				seenMarker = true
			case tok.Kind == ast.TokString:
				if first == "" {
					first = tok.Text
				}
				if seenMarker {
					afterMarker = tok.Text
					return false
				}
			}
			return true
		})
		if afterMarker != "" {
			return afterMarker
		}
	}
	return first
}
