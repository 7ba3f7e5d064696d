package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/brokerscore/internal/domain/benchmark"
)

func newBenchmarkCmd(c *cli) *cobra.Command {
	var (
		format string
		from   string
	)
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Print the benchmark snapshot, or derive one from a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var stats benchmark.Statistics
			if from != "" {
				rows, err := c.workbook(from).Fetch(ctx)
				if err != nil {
					return err
				}
				evals, _, err := c.normalizer().NormalizeAll(ctx, rows)
				if err != nil {
					return err
				}
				if stats, err = benchmark.FromPopulation(evals); err != nil {
					return err
				}
			} else {
				p, err := c.benchmark(ctx)
				if err != nil {
					return err
				}
				stats = p.Get()
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(stats); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(stats); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVar(&from, "from", "", "derive the benchmark from this workbook instead")
	return cmd
}
