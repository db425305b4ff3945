package ast

// ProvenanceKind is the closed set of container provenance tags.
type ProvenanceKind uint8

const (
	ProvNone         ProvenanceKind = iota // hand-written or original container
	ProvSourceHeader                       // expanded from a project header
	ProvStdlib                             // expanded from a standard-library header
)

func (k ProvenanceKind) String() string {
	switch k {
	case ProvSourceHeader:
		return "source_header"
	case ProvStdlib:
		return "stdlib"
	default:
		return "none"
	}
}

// Provenance is the parsed form of a container's header attributes. It is
// computed once per container so later stages match on the tag instead of
// rescanning tokens.
type Provenance struct {
	Kind   ProvenanceKind
	Header string // header path named by the attribute, if any
}

// Generated reports whether the container was expanded from any header.
func (p Provenance) Generated() bool { return p.Kind != ProvNone }
