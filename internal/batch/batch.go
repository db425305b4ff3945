package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reorg/internal/ast"
	"reorg/internal/astio"
	"reorg/internal/command"
	"reorg/internal/diag"
	"reorg/internal/observ"
	"reorg/internal/source"
	"reorg/internal/trace"
)

// Request describes one batch run of a registered command over tree files.
type Request struct {
	Files    []string
	Registry *command.Registry
	Command  string
	Args     []string
	Phase    command.Phase

	// Out names the output file and is only valid with a single input.
	// OutDir receives one output per input, named after it. With neither,
	// results stay in memory.
	Out    string
	OutDir string
	// Format is the output codec; empty keeps each input's format.
	Format string

	Jobs           int
	MaxDiagnostics int
	Progress       ProgressSink
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path   string
	Output string // written path, empty when kept in memory
	Tree   *ast.Tree
	Bag    *diag.Bag
	Stats  []command.Stat
	Timer  *observ.Timer
	Err    error
}

// Run processes req.Files concurrently, at most req.Jobs at a time. A failing
// file is recorded in its FileResult and does not stop the others; only
// cancellation aborts the batch.
func Run(ctx context.Context, req *Request) ([]FileResult, error) {
	if req == nil || req.Registry == nil {
		return nil, errors.New("batch: missing request or registry")
	}
	if req.Out != "" && len(req.Files) > 1 {
		return nil, fmt.Errorf("batch: --out takes a single input, got %d", len(req.Files))
	}
	if req.Out != "" && req.OutDir != "" {
		return nil, errors.New("batch: --out and --out-dir are exclusive")
	}
	var outFormat *astio.Format
	if req.Format != "" {
		f, err := astio.ParseFormat(req.Format)
		if err != nil {
			return nil, err
		}
		outFormat = &f
	}
	sink := req.Progress
	if sink == nil {
		sink = nopSink{}
	}
	for _, f := range req.Files {
		sink.OnEvent(Event{File: f, Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(req.Files))
	if len(req.Files) == 0 {
		return results, nil
	}

	tracer := trace.FromContext(ctx)
	batchSpan := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx).SpanID)
	defer batchSpan.End(fmt.Sprintf("%d files", len(req.Files)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fctx := trace.WithSpanContext(gctx, trace.SpanContext{SpanID: batchSpan.ID()})
			results[i] = runFile(fctx, req, path, outFormat, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runFile(ctx context.Context, req *Request, path string, outFormat *astio.Format, sink ProgressSink) FileResult {
	res := FileResult{
		Path:  path,
		Bag:   diag.NewBag(req.MaxDiagnostics),
		Timer: observ.NewTimer(),
	}
	stage := func(s Stage, fn func() error) bool {
		start := time.Now()
		sink.OnEvent(Event{File: path, Stage: s, Status: StatusWorking})
		idx := res.Timer.Begin(string(s))
		err := fn()
		res.Timer.End(idx, "")
		if err != nil {
			res.Err = err
			sink.OnEvent(Event{File: path, Stage: s, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			return false
		}
		return true
	}

	var tree *ast.Tree
	ok := stage(StageDecode, func() error {
		var err error
		tree, err = astio.ReadFile(path)
		if err != nil {
			res.Bag.Add(diag.NewError(diag.IOLoadTreeError, source.Span{}, "failed to load tree: "+err.Error()).WithSubject(path))
		}
		return err
	})
	if !ok {
		return res
	}

	ok = stage(StageTransform, func() error {
		st := &command.State{
			Phase:    req.Phase,
			Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
			Timer:    res.Timer,
		}
		out, err := req.Registry.Run(ctx, req.Command, req.Args, tree, st)
		if err != nil {
			return err
		}
		res.Tree = out
		res.Stats = st.Stats
		return nil
	})
	if !ok {
		return res
	}

	dest := outputPath(req, path, outFormat)
	if dest != "" {
		ok = stage(StageEncode, func() error {
			f, err := formatFor(dest, outFormat)
			if err != nil {
				return err
			}
			if err := astio.WriteFile(dest, res.Tree, f); err != nil {
				return err
			}
			res.Output = dest
			return nil
		})
		if !ok {
			return res
		}
	}
	sink.OnEvent(Event{File: path, Status: StatusDone})
	return res
}

func outputPath(req *Request, path string, outFormat *astio.Format) string {
	switch {
	case req.Out != "":
		return req.Out
	case req.OutDir != "":
		base := filepath.Base(path)
		ext := filepath.Ext(base)
		if outFormat != nil {
			base = strings.TrimSuffix(base, ext) + outFormat.Ext()
		}
		return filepath.Join(req.OutDir, base)
	default:
		return ""
	}
}

func formatFor(dest string, outFormat *astio.Format) (astio.Format, error) {
	if outFormat != nil {
		return *outFormat, nil
	}
	return astio.FormatFromPath(dest)
}

// Failed counts results with an error.
func Failed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
