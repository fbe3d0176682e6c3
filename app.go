package main

import (
	"io"

	"github.com/rs/zerolog"

	"runpad/internal/config"
	"runpad/internal/lang"
	"runpad/internal/logging"
	"runpad/internal/metrics"
	"runpad/internal/runner"
)

// app wires configuration, logging, metrics and the runner together.
type app struct {
	cfg      *config.AppConfig
	logger   *zerolog.Logger
	metrics  *metrics.Metrics
	registry *lang.Registry
	runner   *runner.Runner
}

// newApp loads the configuration and builds the shared components. Logs go
// to logOut.
func newApp(envFile string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logOut, cfg.LogLevel)
	m := metrics.New(cfg.MetricsFile, logger)
	registry := lang.NewRegistry(cfg.Toolchain)

	r := runner.New(registry, cfg.Runner,
		runner.WithLogger(logger),
		runner.WithRecorder(m),
	)

	logger.Debug().
		Str("workdir", cfg.Runner.WorkDir).
		Bool("isolate", cfg.Runner.Isolate).
		Dur("run_timeout", r.Config().RunTimeout).
		Dur("compile_timeout", r.Config().CompileTimeout).
		Msg("runner configured")

	return &app{cfg: cfg, logger: logger, metrics: m, registry: registry, runner: r}, nil
}

// close flushes anything the metrics throttle held back.
func (a *app) close() {
	if err := a.metrics.Flush(); err != nil {
		a.logger.Warn().Err(err).Str("path", a.cfg.MetricsFile).Msg("failed to write metrics textfile")
	}
}
