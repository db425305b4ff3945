package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reorg/internal/astio"
	"reorg/internal/batch"
	"reorg/internal/command"
	"reorg/internal/reorganize"
	"reorg/internal/ui"
)

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize [flags] <tree-file>...",
	Short: "Move header-generated declarations into their owning modules",
	Long: `reorganize decodes each tree file, runs the reorganize_modules transform
and writes the result. With a single input and no --out/--out-dir the rewritten
tree goes to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReorganize,
}

func init() {
	flags := reorganizeCmd.Flags()
	flags.StringP("out", "o", "", "output file (single input only)")
	flags.String("out-dir", "", "directory receiving one output per input")
	flags.String("format", "", "output format (yaml|json|msgpack); default keeps the input's")
	flags.IntP("jobs", "j", 0, "files processed concurrently (0 = GOMAXPROCS)")
	flags.Bool("dry-run", false, "rewrite in memory and report without writing trees")
	flags.Int("phase", int(command.Phase3), "pipeline phase the transform runs in (1-3)")
	flags.String("ui", "off", "progress view (auto|on|off)")

	flags.String("tie-break", "", "destination choice when several containers match (last|first|longest)")
	flags.String("stdlib-name", "", "name of the synthesized standard-library container")
	flags.String("source-header", "", "attribute identifier that marks header-generated containers")
	flags.StringSlice("stdlib-markers", nil, "substrings of header paths that mark the standard library")
}

// reorganizeSettings is what the flags and reorg.toml resolve to.
type reorganizeSettings struct {
	out, outDir string
	format      string
	jobs        int
	dryRun      bool
	phase       command.Phase
	ui          uiMode
	args        []string
	quiet       bool
	timings     bool
	maxDiags    int
}

func readReorganizeSettings(cmd *cobra.Command, cfg projectConfig) (reorganizeSettings, error) {
	var s reorganizeSettings
	flags := cmd.Flags()
	var err error
	if s.out, err = flags.GetString("out"); err != nil {
		return s, err
	}
	if s.outDir, err = flags.GetString("out-dir"); err != nil {
		return s, err
	}
	if s.format, err = flags.GetString("format"); err != nil {
		return s, err
	}
	if !flags.Changed("format") {
		s.format = cfg.Output.Format
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, err
	}
	if !flags.Changed("jobs") {
		s.jobs = cfg.Output.Jobs
	}
	if s.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return s, err
	}
	phase, err := flags.GetInt("phase")
	if err != nil {
		return s, err
	}
	if phase < int(command.Phase1) || phase > int(command.Phase3) {
		return s, fmt.Errorf("invalid --phase %d (expected 1-3)", phase)
	}
	s.phase = command.Phase(phase)
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, err
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}

	// flags override reorg.toml through the transform's own arguments
	for _, name := range []string{"tie-break", "stdlib-name", "source-header"} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return s, err
		}
		s.args = append(s.args, name+"="+v)
	}
	if flags.Changed("stdlib-markers") {
		markers, err := flags.GetStringSlice("stdlib-markers")
		if err != nil {
			return s, err
		}
		s.args = append(s.args, "stdlib-markers="+strings.Join(markers, ","))
	}

	root := cmd.Root().PersistentFlags()
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return s, err
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return s, err
	}
	if s.maxDiags, err = root.GetInt("max-diagnostics"); err != nil {
		return s, err
	}
	return s, nil
}

func (s reorganizeSettings) toStdout() bool {
	return s.out == "" && s.outDir == "" && !s.dryRun
}

func runReorganize(cmd *cobra.Command, files []string) error {
	cfg := currentConfig()
	settings, err := readReorganizeSettings(cmd, cfg.Config)
	if err != nil {
		return err
	}
	if settings.toStdout() && len(files) > 1 {
		return errors.New("several inputs need --out-dir or --dry-run")
	}
	if settings.dryRun && (settings.out != "" || settings.outDir != "") {
		return errors.New("--dry-run does not write; drop --out/--out-dir")
	}

	registry := command.NewRegistry()
	reorganize.Register(registry, cfg.Config.options())

	req := &batch.Request{
		Files:          files,
		Registry:       registry,
		Command:        reorganize.CommandName,
		Args:           settings.args,
		Phase:          settings.phase,
		Out:            settings.out,
		OutDir:         settings.outDir,
		Format:         settings.format,
		Jobs:           settings.jobs,
		MaxDiagnostics: settings.maxDiags,
	}

	var results []batch.FileResult
	if shouldUseTUI(settings.ui) {
		results, err = runBatchWithUI(cmd.Context(), "reorganize", req)
	} else {
		results, err = batch.Run(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	reportResults(stderr, results, settings)

	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	if settings.toStdout() {
		return writeTreeToStdout(cmd.OutOrStdout(), results[0], settings.format)
	}
	return nil
}

func reportResults(w io.Writer, results []batch.FileResult, s reorganizeSettings) {
	for _, r := range results {
		printDiagnostics(w, r.Bag, r.Path, s.quiet)
		if r.Err != nil && (r.Bag == nil || !r.Bag.HasErrors()) {
			fmt.Fprintf(w, "%s %s: %v\n", errorLabel.Sprint("error"), r.Path, r.Err)
		}
	}
	if !s.quiet {
		if err := ui.RenderSummary(w, results, ui.SummaryOptions{Color: !color.NoColor}); err != nil {
			fmt.Fprintf(w, "failed to render summary: %v\n", err)
		}
	}
	if s.timings {
		for _, r := range results {
			if r.Timer == nil {
				continue
			}
			fmt.Fprintf(w, "%s\n%s", r.Path, r.Timer.Summary())
		}
	}
}

func writeTreeToStdout(w io.Writer, r batch.FileResult, format string) error {
	f := astio.FormatYAML
	if format != "" {
		parsed, err := astio.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	} else if inFormat, err := astio.FormatFromPath(r.Path); err == nil {
		f = inFormat
	}
	return astio.Encode(w, r.Tree, f)
}
