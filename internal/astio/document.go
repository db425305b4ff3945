package astio

// schemaVersion is bumped whenever Document changes incompatibly.
const schemaVersion uint16 = 1

// Document is the on-disk form of a tree. Items nest the way containers do;
// attributes are kept as source text and paths as `a::b` strings.
type Document struct {
	Schema uint16   `json:"schema,omitempty" yaml:"schema,omitempty" msgpack:"schema"`
	Unit   string   `json:"unit" yaml:"unit" msgpack:"unit"`
	Attrs  []string `json:"attrs,omitempty" yaml:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Items  []Item   `json:"items" yaml:"items" msgpack:"items"`
}

type Item struct {
	Kind   string     `json:"kind" yaml:"kind" msgpack:"kind"`
	Name   string     `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Vis    string     `json:"vis,omitempty" yaml:"vis,omitempty" msgpack:"vis,omitempty"`
	Attrs  []string   `json:"attrs,omitempty" yaml:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Fields []FieldDoc `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Type   string     `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Path   string     `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	Alias  string     `json:"alias,omitempty" yaml:"alias,omitempty" msgpack:"alias,omitempty"`
	Refs   []string   `json:"refs,omitempty" yaml:"refs,omitempty" msgpack:"refs,omitempty"`
	Body   string     `json:"body,omitempty" yaml:"body,omitempty" msgpack:"body,omitempty"`
	Span   []uint32   `json:"span,omitempty" yaml:"span,omitempty,flow" msgpack:"span,omitempty"`
	Items  []Item     `json:"items,omitempty" yaml:"items,omitempty" msgpack:"items,omitempty"`
}

type FieldDoc struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
}
