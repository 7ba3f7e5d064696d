package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/brokerscore/internal/domain/benchmark"
	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/ranking"
	"github.com/okian/brokerscore/internal/domain/scoring"
)

// standing is the `rank --json` payload.
type standing struct {
	Evaluation model.Evaluation      `json:"evaluation"`
	Position   ranking.Position      `json:"position"`
	Summary    scoring.Summary       `json:"summary"`
	Latency    scoring.LatencyGrades `json:"latency"`
	Quartile   string                `json:"quartile"`
	Market     float64               `json:"market_total"`
	Top        float64               `json:"top_quintile_total"`
}

func newRankCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rank <file> <name>",
		Short: "Show where one brokerage stands among its peers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := c.service(ctx, args[0])
			if err != nil {
				return err
			}
			if _, err := svc.Load(ctx); err != nil {
				return err
			}
			e, err := svc.GetByName(ctx, args[1])
			if err != nil {
				return err
			}
			summary, err := svc.Summary(ctx, e.ID)
			if err != nil {
				return err
			}
			bench := svc.Benchmark(ctx)
			st := standing{
				Evaluation: e,
				Position:   svc.Locate(ctx, e),
				Summary:    summary,
				Latency:    scoring.GradeEvaluation(e),
				Quartile:   quartileBand(e.TotalScore, bench.Quartiles),
				Market:     bench.Market.Total,
				Top:        bench.TopQuintile.Total,
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(st); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				return nil
			}
			writeStanding(out, st)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeStanding(w io.Writer, st standing) {
	p := st.Position
	fmt.Fprintln(w, st.Evaluation.Name)
	rank := fmt.Sprintf("%d of %d", p.Rank, p.Of)
	if p.Estimated {
		rank += " (estimated)"
	}
	fmt.Fprintf(w, "  rank       %s\n", rank)
	fmt.Fprintf(w, "  total      %s  (market %s, top 20%% %s)\n", score(p.Total), score(st.Market), score(st.Top))
	fmt.Fprintf(w, "  quartile   %s\n", st.Quartile)
	fmt.Fprintf(w, "  latency    first response %s (%s), handoff %s (%s)\n",
		st.Evaluation.FirstResponseDuration, st.Latency.FirstResponse,
		st.Evaluation.BrokerHandoffDuration, st.Latency.BrokerHandoff)
	fmt.Fprintf(w, "  strongest  %s\n", shares(st.Summary.Strongest))
	fmt.Fprintf(w, "  weakest    %s\n", shares(st.Summary.Weakest))
}

func shares(list []scoring.Share) string {
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = fmt.Sprintf("%s %s/%s (%.0f%%)", s.Category, score(s.Score), score(s.Max), s.Percent)
	}
	return strings.Join(parts, ", ")
}

// quartileBand places total against the benchmark quartiles.
func quartileBand(total float64, q benchmark.Quartiles) string {
	switch {
	case total < q.Q1:
		return "bottom quartile"
	case total < q.Q2:
		return "second quartile"
	case total < q.Q3:
		return "third quartile"
	default:
		return "top quartile"
	}
}
