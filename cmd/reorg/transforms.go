package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"reorg/internal/command"
	"reorg/internal/reorganize"
)

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "List the registered transforms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry := command.NewRegistry()
		reorganize.Register(registry, currentConfig().Config.options())

		entries := registry.Entries()
		width := 0
		for _, e := range entries {
			width = max(width, runewidth.StringWidth(e.Name))
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %s  %s\n", runewidth.FillRight(e.Name, width), e.MinPhase, e.Help)
		}
		return nil
	},
}
