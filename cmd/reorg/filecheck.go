package main

import (
	"github.com/spf13/cobra"

	"reorg/internal/harness"
)

var filecheckCmd = &cobra.Command{
	Use:   "filecheck <checks> <input>",
	Short: "Run LLVM FileCheck on an input file",
	Long: `filecheck feeds <input> to FileCheck with <checks> as the check file.
FileCheck is taken from [harness].filecheck, $FILECHECK, or the bin directory
reported by llvm-config.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		var fc *harness.FileCheck
		if p := cfg.resolve(cfg.Config.Harness.FileCheck); p != "" {
			fc = &harness.FileCheck{Path: p}
		} else {
			resolved, err := harness.ResolveFileCheck(cmd.Context())
			if err != nil {
				return err
			}
			fc = resolved
		}
		return fc.Run(cmd.Context(), args[0], args[1])
	},
}
