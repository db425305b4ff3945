package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"reorg/internal/source"
)

// TokenKind classifies a leaf or group in an attribute token stream.
type TokenKind uint8

const (
	TokIdent TokenKind = iota
	TokString
	TokNumber
	TokPunct
	TokGroup
)

// TokenTree is one element of an attribute's token stream. Groups nest
// arbitrarily, e.g. `cfg(not(source_header = "foo.h"))`.
type TokenTree struct {
	Kind  TokenKind
	Text  string // identifier, punctuation or number text; unquoted value for TokString
	Delim byte   // opening delimiter of a TokGroup
	Trees []TokenTree
}

// Attr описывает атрибут контейнера или объявления: `#[...]`.
type Attr struct {
	Tokens []TokenTree
	Span   source.Span
}

var errUnbalanced = errors.New("unbalanced delimiters")

// ParseAttr lexes attribute text into token trees. A surrounding `#[` ... `]` is optional.
func ParseAttr(text string) (Attr, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "#[") && strings.HasSuffix(s, "]") {
		s = s[2 : len(s)-1]
	}
	lx := attrLexer{src: s}
	trees, err := lx.trees(0)
	if err != nil {
		return Attr{}, fmt.Errorf("attribute %q: %w", text, err)
	}
	if lx.pos < len(lx.src) {
		return Attr{}, fmt.Errorf("attribute %q: %w", text, errUnbalanced)
	}
	return Attr{Tokens: trees}, nil
}

// MustParseAttr is ParseAttr for literals known to be well formed.
func MustParseAttr(text string) Attr {
	a, err := ParseAttr(text)
	if err != nil {
		panic(err)
	}
	return a
}

type attrLexer struct {
	src string
	pos int
}

func closing(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

// trees reads token trees until the closing delimiter for open (0 at top level).
func (lx *attrLexer) trees(open byte) ([]TokenTree, error) {
	var out []TokenTree
	for {
		lx.skipSpace()
		if lx.pos >= len(lx.src) {
			if open != 0 {
				return nil, errUnbalanced
			}
			return out, nil
		}
		c := lx.src[lx.pos]
		switch {
		case c == ')' || c == ']' || c == '}':
			if open == 0 || c != closing(open) {
				return nil, errUnbalanced
			}
			lx.pos++
			return out, nil
		case c == '(' || c == '[' || c == '{':
			lx.pos++
			inner, err := lx.trees(c)
			if err != nil {
				return nil, err
			}
			out = append(out, TokenTree{Kind: TokGroup, Delim: c, Trees: inner})
		case c == '"':
			str, err := lx.str()
			if err != nil {
				return nil, err
			}
			out = append(out, TokenTree{Kind: TokString, Text: str})
		case isIdentStart(c):
			start := lx.pos
			for lx.pos < len(lx.src) && isIdentCont(lx.src[lx.pos]) {
				lx.pos++
			}
			out = append(out, TokenTree{Kind: TokIdent, Text: lx.src[start:lx.pos]})
		case c >= '0' && c <= '9':
			start := lx.pos
			for lx.pos < len(lx.src) && (isIdentCont(lx.src[lx.pos]) || lx.src[lx.pos] == '.') {
				lx.pos++
			}
			out = append(out, TokenTree{Kind: TokNumber, Text: lx.src[start:lx.pos]})
		default:
			lx.pos++
			out = append(out, TokenTree{Kind: TokPunct, Text: string(c)})
		}
	}
}

func (lx *attrLexer) str() (string, error) {
	start := lx.pos
	lx.pos++ // opening quote
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case '"':
			lx.pos++
			v, err := strconv.Unquote(lx.src[start:lx.pos])
			if err != nil {
				return "", fmt.Errorf("bad string literal %s: %w", lx.src[start:lx.pos], err)
			}
			return v, nil
		default:
			lx.pos++
		}
	}
	return "", errors.New("unterminated string literal")
}

func (lx *attrLexer) skipSpace() {
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\n', '\r':
			lx.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// String renders the attribute body without the `#[` `]` wrapper.
func (a Attr) String() string {
	var sb strings.Builder
	writeTrees(&sb, a.Tokens)
	return sb.String()
}

func writeTrees(sb *strings.Builder, trees []TokenTree) {
	for i, t := range trees {
		if i > 0 && needsSpace(trees[i-1], t) {
			sb.WriteByte(' ')
		}
		switch t.Kind {
		case TokString:
			sb.WriteString(strconv.Quote(t.Text))
		case TokGroup:
			sb.WriteByte(t.Delim)
			writeTrees(sb, t.Trees)
			sb.WriteByte(closing(t.Delim))
		default:
			sb.WriteString(t.Text)
		}
	}
}

func needsSpace(prev, cur TokenTree) bool {
	if cur.Kind == TokPunct && cur.Text == "," {
		return false
	}
	if cur.Kind == TokGroup && prev.Kind == TokIdent {
		return false
	}
	return true
}

// Walk visits every leaf token of the attribute, descending into groups.
// It stops early when fn returns false.
func (a Attr) Walk(fn func(TokenTree) bool) bool {
	return walkTrees(a.Tokens, fn)
}

func walkTrees(trees []TokenTree, fn func(TokenTree) bool) bool {
	for _, t := range trees {
		if t.Kind == TokGroup {
			if !walkTrees(t.Trees, fn) {
				return false
			}
			continue
		}
		if !fn(t) {
			return false
		}
	}
	return true
}

func cloneTrees(trees []TokenTree) []TokenTree {
	if trees == nil {
		return nil
	}
	out := make([]TokenTree, len(trees))
	for i, t := range trees {
		t.Trees = cloneTrees(t.Trees)
		out[i] = t
	}
	return out
}

func cloneAttrs(attrs []Attr) []Attr {
	if attrs == nil {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i, a := range attrs {
		out[i] = Attr{Tokens: cloneTrees(a.Tokens), Span: a.Span}
	}
	return out
}

func sameTrees(a, b []TokenTree) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text || a[i].Delim != b[i].Delim {
			return false
		}
		if !sameTrees(a[i].Trees, b[i].Trees) {
			return false
		}
	}
	return true
}
