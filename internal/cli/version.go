package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/gopar/internal/output"
	"github.com/kbukum/gopar/version"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no config, telemetry or engine.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			switch output.Format(format) {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(output.Format(format)).Format(cmd.OutOrStdout(), version.GetVersionInfo())
			}
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "parbench %s\n", version.Full())
			return err
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
