package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/gopar/internal/verify"
	"github.com/kbukum/gopar/validation"
)

func newVerifyCmd(st *state) *cobra.Command {
	var (
		size   int
		seed   uint64
		checks []string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the engine against sequential baselines",
		Long: `Run fixed scenarios and randomized property checks. Property checks
compare every operation with its sequential equivalent over sized and
unsized sources and several concurrency and segment settings.`,
		Example: `  parbench verify
  parbench verify --size 5000 --seed 7 --checks sum,find-lowest-index -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.New().Min("size", size, 0).Err(); err != nil {
				return st.fail(cmd, err)
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			return st.app.RunTask(cmd.Context(), func(ctx context.Context) error {
				selected, err := verify.Select(verify.Catalog(), checks)
				if err != nil {
					return st.fail(cmd, err)
				}
				runner := &verify.Runner{
					Engine: st.engine,
					Log:    st.app.Logger.WithComponent("verify"),
					Size:   size,
					Seed:   seed,
				}
				report, err := runner.Run(ctx, selected)
				if err != nil {
					return st.fail(cmd, err)
				}
				if err := st.render(cmd, report); err != nil {
					return err
				}
				if n := report.Failed(); n > 0 {
					return fmt.Errorf("%d of %d checks failed (seed %d)", n, len(report.Results), report.Seed)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&size, "size", 1000, "number of random elements for property checks")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringSliceVar(&checks, "checks", nil, "checks to run (comma-separated, empty means all)")
	return cmd
}
