package command

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"reorg/internal/ast"
	"reorg/internal/diag"
)

// Entry describes one registered command.
type Entry struct {
	Name     string
	MinPhase Phase
	Help     string
	Factory  Factory
}

// Registry maps command names to transform factories.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds e; a second registration under the same name replaces the first.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Name] = e
}

func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return e, ok
}

// Entries returns all commands sorted by name.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Run builds the named transform and applies it to tree.
func (r *Registry) Run(ctx context.Context, name string, args []string, tree *ast.Tree, st *State) (*ast.Tree, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if st == nil {
		st = &State{Phase: Phase3}
	}
	if st.Reporter == nil {
		st.Reporter = diag.NopReporter{}
	}
	if st.Phase < e.MinPhase {
		return nil, fmt.Errorf("%w: %s needs %s, driver is at %s", ErrPhaseTooEarly, name, e.MinPhase, st.Phase)
	}
	tr, err := e.Factory(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out, err := tr.Transform(ctx, tree, st)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
