package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reorg/internal/ast"
	"reorg/internal/astio"
	"reorg/internal/testkit"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <tree-file>",
	Short: "Print a tree as an outline or re-encode it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		as, err := cmd.Flags().GetString("as")
		if err != nil {
			return err
		}
		check, err := cmd.Flags().GetBool("check")
		if err != nil {
			return err
		}
		tree, err := astio.ReadFile(args[0])
		if err != nil {
			return err
		}
		if check {
			if err := testkit.CheckTreeInvariants(tree); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
		}
		if strings.EqualFold(as, "outline") {
			return ast.Fprint(cmd.OutOrStdout(), tree)
		}
		f, err := astio.ParseFormat(as)
		if err != nil {
			return err
		}
		return astio.Encode(cmd.OutOrStdout(), tree, f)
	},
}

func init() {
	showCmd.Flags().String("as", "outline", "output (outline|yaml|json|msgpack)")
	showCmd.Flags().Bool("check", false, "verify the tree's structural invariants first")
}
