// Package bootstrap runs gopar binaries with a uniform lifecycle.
//
// An App applies config defaults, validates the config, initializes the
// global logger and runs one finite task. The task context is cancelled on
// SIGINT or SIGTERM; OnStop hooks flush telemetry within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStop(shutdownTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return verify(ctx, app.Cfg)
//	})
package bootstrap
