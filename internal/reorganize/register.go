package reorganize

import (
	"context"
	"fmt"
	"strings"

	"reorg/internal/ast"
	"reorg/internal/command"
)

// CommandName is the name the transform is registered under.
const CommandName = "reorganize_modules"

// Register adds the transform to r. base supplies the defaults; arguments of
// the form key=value override them per invocation (tie-break, stdlib-name,
// source-header, stdlib-markers as a comma list).
func Register(r *command.Registry, base Options) {
	r.Register(command.Entry{
		Name:     CommandName,
		MinPhase: command.Phase3,
		Help:     "move header-generated declarations into the containers that own them",
		Factory: func(args []string) (command.Transform, error) {
			opts, err := applyArgs(base, args)
			if err != nil {
				return nil, err
			}
			return transform{opts: opts}, nil
		},
	})
}

func applyArgs(opts Options, args []string) (Options, error) {
	opts.Classifier.StdlibMarkers = append([]string(nil), opts.Classifier.StdlibMarkers...)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return opts, fmt.Errorf("argument %q is not key=value", arg)
		}
		if key != "tie-break" && strings.TrimSpace(value) == "" {
			return opts, fmt.Errorf("argument %q needs a value", key)
		}
		switch key {
		case "tie-break":
			tb, err := ParseTieBreak(value)
			if err != nil {
				return opts, err
			}
			opts.TieBreak = tb
		case "stdlib-name":
			opts.StdlibName = value
		case "source-header":
			opts.Classifier.SourceHeaderIdent = value
		case "stdlib-markers":
			opts.Classifier.StdlibMarkers = opts.Classifier.StdlibMarkers[:0]
			for _, m := range strings.Split(value, ",") {
				if m = strings.TrimSpace(m); m != "" {
					opts.Classifier.StdlibMarkers = append(opts.Classifier.StdlibMarkers, m)
				}
			}
		default:
			return opts, fmt.Errorf("unknown argument %q", key)
		}
	}
	return opts, nil
}

type transform struct {
	opts Options
}

func (transform) MinPhase() command.Phase { return command.Phase3 }

func (t transform) Transform(ctx context.Context, tree *ast.Tree, st *command.State) (*ast.Tree, error) {
	opts := t.opts
	opts.Reporter = st.Reporter
	res, err := Run(ctx, tree, opts)
	if err != nil {
		return nil, err
	}
	if st.Timer != nil {
		st.Timer.Merge(CommandName+"/", res.Timer)
	}
	s := res.Stats
	st.Record("generated containers", s.Generated)
	st.Record("routing decisions", s.Decisions)
	st.Record("items inserted", s.Inserted)
	st.Record("stdlib items", s.StdlibItems)
	st.Record("duplicates skipped", s.Skipped)
	st.Record("segments renamed", s.SegmentsRenamed)
	st.Record("containers removed", s.ContainersRemoved)
	st.Record("foreign items purged", s.ForeignPurged)
	st.Record("imports purged", s.ImportsPurged)
	return res.Tree, nil
}
