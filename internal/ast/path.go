package ast

import (
	"slices"
	"strings"

	"reorg/internal/source"
)

// PathSep separates segments in the textual form of a path.
const PathSep = "::"

// Path is a reference by name, e.g. `foo_h::buffer_t`.
type Path struct {
	Segments []source.StringID
	Span     source.Span
}

func (p Path) Len() int { return len(p.Segments) }

func (p Path) IsZero() bool { return len(p.Segments) == 0 }

func (p Path) Clone() Path {
	return Path{Segments: slices.Clone(p.Segments), Span: p.Span}
}

// Contains reports whether any segment equals id.
func (p Path) Contains(id source.StringID) bool {
	return slices.Contains(p.Segments, id)
}

// SameSegments compares paths ignoring spans.
func (p Path) SameSegments(other Path) bool {
	return slices.Equal(p.Segments, other.Segments)
}

// ParsePath interns every `::`-separated segment of s. Empty input yields the zero path.
func ParsePath(strs *source.Interner, s string) Path {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}
	}
	parts := strings.Split(s, PathSep)
	segs := make([]source.StringID, 0, len(parts))
	for _, part := range parts {
		segs = append(segs, strs.Intern(strings.TrimSpace(part)))
	}
	return Path{Segments: segs}
}

// FormatPath renders p back to `a::b::c`.
func FormatPath(strs *source.Interner, p Path) string {
	var sb strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString(PathSep)
		}
		s, _ := strs.Lookup(seg)
		sb.WriteString(s)
	}
	return sb.String()
}
