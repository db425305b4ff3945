package reorganize

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"reorg/internal/ast"
	"reorg/internal/diag"
	"reorg/internal/observ"
	"reorg/internal/trace"
)

// Stats counts what each pass did.
type Stats struct {
	Generated         int `yaml:"generated"`
	Decisions         int `yaml:"decisions"`
	PathsCleansed     int `yaml:"paths_cleansed"`
	Inserted          int `yaml:"inserted"`
	StdlibItems       int `yaml:"stdlib_items"`
	Skipped           int `yaml:"skipped"`
	SegmentsRenamed   int `yaml:"segments_renamed"`
	ContainersRemoved int `yaml:"containers_removed"`
	ForeignPurged     int `yaml:"foreign_purged"`
	ImportsPurged     int `yaml:"imports_purged"`
}

// Result is the outcome of one run.
type Result struct {
	Tree  *ast.Tree
	Info  *ModuleInfo
	Plan  *MergePlan
	Stats Stats
	Timer *observ.Timer
}

// Run reorganizes in and returns the rewritten tree; in is left untouched.
// Passes run in a fixed order: cleanse, snapshot and match, plan, insert,
// synthesize, rename, purge generated containers, re-snapshot, purge foreign
// duplicates, purge dead imports.
func Run(ctx context.Context, in *ast.Tree, opts Options) (*Result, error) {
	if in == nil || in.Node(in.Root) == nil {
		return nil, errors.New("reorganize: tree has no root")
	}
	if root := in.Node(in.Root); root.Kind != ast.NodeContainer {
		return nil, fmt.Errorf("reorganize: root is %s, want container", root.Kind)
	}
	opts = opts.withDefaults()
	tracer := trace.FromContext(ctx)
	top := trace.Begin(tracer, trace.ScopeDriver, "reorganize_modules", trace.CurrentSpan(ctx).SpanID)
	timer := observ.NewTimer()
	res := &Result{Timer: timer}

	work := in.Clone()
	stdlibID := work.Reserve()

	pass := func(name string, fn func() int) {
		sp := trace.Begin(tracer, trace.ScopePass, name, top.ID())
		count := 0
		timer.Measure(name, func() string {
			count = fn()
			return strconv.Itoa(count)
		})
		sp.WithExtra("count", strconv.Itoa(count)).End("")
	}

	pass("cleanse", func() (n int) {
		work, n = CleansePaths(work)
		res.Stats.PathsCleansed = n
		return n
	})

	var info *ModuleInfo
	pass("match", func() int {
		info = NewModuleInfo(work, stdlibID, opts.Classifier)
		for _, id := range work.Containers() {
			if info.Provenance(work.Node(id)).Generated() {
				res.Stats.Generated++
			}
		}
		m := &Matcher{
			TieBreak:   opts.TieBreak,
			StdlibName: opts.StdlibName,
			Reporter:   opts.Reporter,
			Tracer:     tracer,
			SpanID:     top.ID(),
		}
		m.Match(work, info)
		res.Stats.Decisions = info.DeclDestination.Len()
		return res.Stats.Decisions
	})

	var plan *MergePlan
	pass("plan", func() int {
		plan = Plan(info, opts.Reporter)
		res.Stats.Skipped = plan.Skipped
		return plan.Len()
	})

	pass("insert", func() (n int) {
		work, n = Insert(work, plan, info.ItemMap)
		res.Stats.Inserted = n
		return n
	})

	pass("synthesize", func() (n int) {
		work, n = Synthesize(work, plan, info, opts.StdlibName)
		res.Stats.StdlibItems = n
		return n
	})

	pass("rename", func() (n int) {
		work, n = Rename(work, info)
		res.Stats.SegmentsRenamed = n
		return n
	})

	pass("purge_generated", func() (n int) {
		work, n = PurgeGenerated(work, info)
		info.Resnapshot(work)
		res.Stats.ContainersRemoved = n
		return n
	})

	pass("purge_foreign", func() (n int) {
		work, n = PurgeForeignDuplicates(work, info.ItemMap)
		res.Stats.ForeignPurged = n
		return n
	})

	pass("purge_imports", func() (n int) {
		work, n = PurgeDeadImports(work)
		res.Stats.ImportsPurged = n
		return n
	})

	summarize(opts.Reporter, in, res.Stats)

	top.WithExtra("unit", in.Unit).End(fmt.Sprintf("%d nodes", work.Reachable()))
	res.Tree = work
	res.Info = info
	res.Plan = plan
	return res, nil
}

func summarize(r diag.Reporter, in *ast.Tree, st Stats) {
	span := in.Node(in.Root).Span
	counts := []struct {
		code diag.Code
		n    int
		what string
	}{
		{diag.MrgDuplicateSkipped, st.Skipped, "structural duplicates not inserted"},
		{diag.MrgGeneratedRemoved, st.ContainersRemoved, "generated containers removed"},
		{diag.MrgForeignPurged, st.ForeignPurged, "foreign declarations removed"},
		{diag.MrgImportPurged, st.ImportsPurged, "imports removed"},
	}
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		diag.ReportInfo(r, c.code, span, fmt.Sprintf("%d %s", c.n, c.what)).WithSubject(in.Unit).Emit()
	}
}
