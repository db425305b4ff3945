package command

import (
	"context"
	"errors"
	"fmt"

	"reorg/internal/ast"
	"reorg/internal/diag"
	"reorg/internal/observ"
)

var (
	// ErrUnknownCommand is returned for names nobody registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrPhaseTooEarly is returned when the driver has not reached the
	// command's minimum phase.
	ErrPhaseTooEarly = errors.New("command requested before its minimum phase")
)

// Phase is the driver stage a command may run at. Phase 1 is lexing of the
// unit, phase 2 is expansion and phase 3 is the fully built tree.
type Phase uint8

const (
	Phase1 Phase = iota + 1
	Phase2
	Phase3
)

func (p Phase) String() string {
	return fmt.Sprintf("phase%d", uint8(p))
}

// Stat is one named counter a transform reports back to the driver.
type Stat struct {
	Name  string
	Value int
}

// State is what the driver shares with a running transform.
type State struct {
	Phase    Phase
	Reporter diag.Reporter
	Timer    *observ.Timer
	Stats    []Stat
}

// Record appends a counter, or overwrites one recorded under the same name.
func (s *State) Record(name string, value int) {
	for i := range s.Stats {
		if s.Stats[i].Name == name {
			s.Stats[i].Value = value
			return
		}
	}
	s.Stats = append(s.Stats, Stat{Name: name, Value: value})
}

// Transform is a tree-to-tree command.
type Transform interface {
	MinPhase() Phase
	Transform(ctx context.Context, tree *ast.Tree, st *State) (*ast.Tree, error)
}

// Factory builds a transform from its command-line arguments.
type Factory func(args []string) (Transform, error)
