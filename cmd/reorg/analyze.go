package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reorg/internal/harness"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <unit.rs>...",
	Short: "Run the analysis tool over Rust units",
	Long: `analyze runs the analysis binary through cargo on each unit. The combined
output of a unit is written next to it as <unit>.analysis.txt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("manifest", "", "Cargo.toml of the analysis tool ([harness].manifest)")
	analyzeCmd.Flags().StringP("lib-dir", "L", "", "library search directory ([harness].lib_dir)")
	analyzeCmd.Flags().String("crate-type", "", "crate type passed to the tool ([harness].crate_type, default rlib)")
}

func runAnalyze(cmd *cobra.Command, units []string) error {
	cfg := currentConfig()
	manifest, _ := cmd.Flags().GetString("manifest")
	if !cmd.Flags().Changed("manifest") {
		manifest = cfg.resolve(cfg.Config.Harness.Manifest)
	}
	if manifest == "" {
		return errors.New("no analysis manifest: pass --manifest or set [harness].manifest")
	}
	libDir, _ := cmd.Flags().GetString("lib-dir")
	if !cmd.Flags().Changed("lib-dir") {
		libDir = cfg.resolve(cfg.Config.Harness.LibDir)
	}

	analyzer := harness.CargoAnalyzer(manifest, libDir)
	crateType, _ := cmd.Flags().GetString("crate-type")
	if crateType == "" {
		crateType = cfg.Config.Harness.CrateType
	}
	if crateType != "" {
		analyzer.CrateType = crateType
	}
	// units are named relative to where reorg runs, not the tool's directory
	analyzer.Dir = ""

	failed := 0
	for _, unit := range units {
		outPath, err := analyzer.Run(cmd.Context(), unit)
		var exitErr *harness.ExitError
		switch {
		case errors.As(err, &exitErr):
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %s (see %s)\n", errorLabel.Sprint("error"), unit, exitErr.Status, exitErr.OutputPath)
		case err != nil:
			return err
		default:
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d units failed analysis: %w", failed, len(units), harness.ErrToolFailed)
	}
	return nil
}
