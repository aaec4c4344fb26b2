package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kbukum/gopar/bootstrap"
	"github.com/kbukum/gopar/config"
	"github.com/kbukum/gopar/errors"
	"github.com/kbukum/gopar/internal/output"
	"github.com/kbukum/gopar/logger"
	"github.com/kbukum/gopar/observability"
	"github.com/kbukum/gopar/parallel"
	"github.com/kbukum/gopar/version"
)

const (
	serviceName = "parbench"
	envPrefix   = "PARBENCH"
)

// state is shared by the commands of one root command.
type state struct {
	v       *viper.Viper
	cfgFile string
	app     *bootstrap.App[*Config]
	engine  *parallel.Engine
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	return newRoot(&state{v: viper.New()})
}

func newRoot(st *state) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   serviceName,
		Short: "parbench - verify and benchmark the gopar parallel engine",
		Long: `parbench exercises the gopar fork-join engine.

verify runs fixed scenarios and randomized property checks against
sequential baselines; bench times engine calls against sequential loops.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&st.cfgFile, "config", "", "config file (default is ./parbench.yml or $HOME/.parbench/config.yml)")
	flags.Int("parallelism", 0, "default width of sized sources and search waves (0 means GOMAXPROCS)")
	flags.Int("segment-length", 0, "batch size for unsized sources (0 means 10)")
	flags.Int("max-in-flight", 0, "running task bound for unsized sources (0 means parallelism)")
	flags.StringP("output", "o", "", "output format (table, json, yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("otlp-endpoint", "", "OTLP/HTTP endpoint for traces and metrics, host:port")

	for key, flag := range map[string]string{
		"parallel.parallelism":    "parallelism",
		"parallel.segment_length": "segment-length",
		"parallel.max_in_flight":  "max-in-flight",
		"output":                  "output",
		"no_color":                "no-color",
		"logging.level":           "log-level",
		"observability.endpoint":  "otlp-endpoint",
	} {
		_ = st.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newVerifyCmd(st))
	rootCmd.AddCommand(newBenchCmd(st))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads the config, starts the app and telemetry, and builds the
// engine every subcommand runs on.
func (st *state) setup(cmd *cobra.Command) error {
	var cfg Config
	err := config.Load(serviceName, &cfg,
		config.WithViper(st.v),
		config.WithConfigFile(st.cfgFile),
		config.WithEnvPrefix(envPrefix),
		config.WithDefaults(map[string]any{
			"name":    serviceName,
			"version": version.Short(),
		}),
	)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	st.app = app

	ctx := cmd.Context()
	shutdown, err := observability.Init(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return err
	}
	app.OnStop(bootstrap.Hook(shutdown))

	metrics, err := observability.NewEngineMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return err
	}
	engine, err := parallel.New(cfg.Parallel,
		parallel.WithLogger(app.Logger.WithComponent("parallel")),
		parallel.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}
	st.engine = engine

	app.Logger.Debug("engine configured", logger.Fields(
		"parallelism", cfg.Parallel.Parallelism,
		logger.FieldSegmentLength, cfg.Parallel.SegmentLength,
		"max_in_flight", cfg.Parallel.MaxInFlight,
		"otlp", cfg.Observability.Enabled,
	))
	return nil
}

// render writes a report in the configured format.
func (st *state) render(cmd *cobra.Command, report any) error {
	cfg := st.app.Cfg
	f := output.NewFormatter(output.Format(cfg.Output), output.WithNoColor(cfg.NoColor))
	return f.Format(cmd.OutOrStdout(), report)
}

// fail reports err as a structured error body when the output is not a
// table, and returns it.
func (st *state) fail(cmd *cobra.Command, err error) error {
	if st.app == nil || st.app.Cfg.Output == string(output.FormatTable) {
		return err
	}
	f := output.NewFormatter(output.Format(st.app.Cfg.Output))
	_ = f.Format(cmd.ErrOrStderr(), errors.ToResponse(err))
	return err
}
