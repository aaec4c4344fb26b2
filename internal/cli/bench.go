package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/gopar/internal/bench"
	"github.com/kbukum/gopar/validation"
)

func newBenchCmd(st *state) *cobra.Command {
	var (
		size   int
		rounds int
		ops    []string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time engine calls against sequential loops",
		Example: `  parbench bench --size 200000 --ops sum,filter
  parbench bench --parallelism 2 --rounds 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validation.New().
				Min("size", size, 1).
				Range("rounds", rounds, 1, 100).
				Err()
			if err != nil {
				return st.fail(cmd, err)
			}
			selected, err := bench.Select(ops)
			if err != nil {
				return st.fail(cmd, err)
			}
			return st.app.RunTask(cmd.Context(), func(ctx context.Context) error {
				runner := &bench.Runner{
					Engine: st.engine,
					Log:    st.app.Logger.WithComponent("bench"),
					Size:   size,
					Rounds: rounds,
				}
				report, err := runner.Run(ctx, selected)
				if err != nil {
					return st.fail(cmd, err)
				}
				return st.render(cmd, report)
			})
		},
	}

	cmd.Flags().IntVar(&size, "size", 100_000, "number of elements per call")
	cmd.Flags().IntVar(&rounds, "rounds", 3, "measured rounds per operation; the best is reported")
	cmd.Flags().StringSliceVar(&ops, "ops", []string{"all"}, "operations to time (all or a list of: sum, count, filter, map, max, any, first)")
	return cmd
}
