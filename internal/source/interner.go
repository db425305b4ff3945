package source

import (
	"slices"
)

// StringID identifies an interned identifier.
type StringID uint32

const NoStringID StringID = 0

// Interner maps identifier text to dense IDs. Equal text always yields the same ID,
// so identifier comparisons across a tree are integer comparisons.
type Interner struct {
	byID  []string            // index -> string (byID[0] = "" for NoStringID)
	index map[string]StringID // string -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts s and returns its ID.
// If s is already present the existing ID is returned.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// own copy so the caller's buffer can be reused
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the ID of s without interning it.
func (i *Interner) Find(s string) (StringID, bool) {
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the string for id.
// If id is not valid it returns "" and false.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id and panics on an invalid ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether id is valid.
func (i *Interner) Has(id StringID) bool {
	return int(id) >= 0 && int(id) < len(i.byID)
}

// Len returns the number of interned strings, NoStringID included. Never below 1.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Clone returns an independent interner with the same ID assignment.
func (i *Interner) Clone() *Interner {
	out := &Interner{
		byID:  slices.Clone(i.byID),
		index: make(map[string]StringID, len(i.index)),
	}
	for k, v := range i.index {
		out.index[k] = v
	}
	return out
}

// Snapshot returns a copy of all strings.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
