package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"reorg/internal/harness"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [flags] <pointwise.log> <unmodified.log>",
	Short: "Compare per-function build results of pointwise and unmodified code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pointwise, err := readFuncErrors(args[0])
		if err != nil {
			return err
		}
		unmodified, err := readFuncErrors(args[1])
		if err != nil {
			return err
		}
		m, err := harness.ComparePointwise(pointwise, unmodified)
		if err != nil {
			return err
		}
		asYAML, err := cmd.Flags().GetBool("yaml")
		if err != nil {
			return err
		}
		if asYAML {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(m); err != nil {
				return err
			}
			return enc.Close()
		}
		return m.Fprint(cmd.OutOrStdout())
	},
}

func init() {
	metricsCmd.Flags().Bool("yaml", false, "print the full comparison, including function names, as YAML")
}

func readFuncErrors(path string) (harness.FuncErrors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fe, err := harness.ReadFuncErrors(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fe, nil
}
