package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/brokerscore/internal/domain/model"
)

// scoredRow is one line of `score --json`.
type scoredRow struct {
	Rank int `json:"rank"`
	model.Evaluation
}

func newScoreCmd(c *cli) *cobra.Command {
	var (
		top      int
		asJSON   bool
		problems bool
	)
	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Normalize a workbook and print the ranked scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := c.service(ctx, args[0])
			if err != nil {
				return err
			}
			report, err := svc.Load(ctx)
			if err != nil {
				return err
			}

			n := report.Rows
			if top > 0 && top < n {
				n = top
			}
			entries, err := svc.TopN(ctx, n)
			if err != nil {
				return err
			}
			rows := make([]scoredRow, 0, len(entries))
			for _, entry := range entries {
				e, err := svc.GetByID(ctx, entry.ID)
				if err != nil {
					return err
				}
				rows = append(rows, scoredRow{Rank: entry.Rank, Evaluation: e})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			} else {
				writeRow(out, "#", "Imobiliária", "RT", "QA", "IMV", "FU", "EXP", "TOTAL")
				for _, r := range rows {
					cat := r.Categories
					writeRow(out, strconv.Itoa(r.Rank), r.Name,
						score(cat.ResponseTime), score(cat.ServiceQuality), score(cat.ListingPresentation),
						score(cat.FollowUp), score(cat.ClientExperience), score(r.TotalScore))
				}
			}

			errOut := cmd.ErrOrStderr()
			fmt.Fprintf(errOut, "%d evaluations, %d missing fields, %d malformed values (dataset %s)\n",
				report.Rows, report.Missing, report.Malformed, report.DatasetID)
			if problems {
				for _, d := range report.Problems {
					fmt.Fprintf(errOut, "  row %d: %s %s %q\n", d.Row, d.Field, d.Kind, d.Raw)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "print only the best N evaluations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&problems, "problems", false, "list malformed values on stderr")
	return cmd
}
