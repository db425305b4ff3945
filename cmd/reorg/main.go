package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reorg/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "reorg",
	Short: "Reorganize modules of transpiled C units",
	Long: `reorg moves the declarations that a C-to-Rust transpiler emitted into
header-generated modules back into the modules that own them.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepareRun,
}

var (
	activeConfig *loadedConfig
	cleanups     []func()
)

func init() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(reorganizeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(transformsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(filecheckCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)

	addPersistentFlags(rootCmd)
}

func main() {
	err := rootCmd.Execute()
	runCleanups()
	if err != nil {
		os.Exit(1)
	}
}

func addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file")
	flags.String("config", "", "path to reorg.toml (default: nearest one above the working directory)")

	flags.String("trace", "", "write trace events to this file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")

	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func prepareRun(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath, ".")
	if err != nil {
		return err
	}
	activeConfig = cfg

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiling)

	stopTracing, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopTracing)
	return nil
}

// runCleanups runs the registered cleanups in reverse order.
func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stderr)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

func currentConfig() *loadedConfig {
	if activeConfig == nil {
		return &loadedConfig{}
	}
	return activeConfig
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
