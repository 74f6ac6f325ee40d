package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/junseong2im/Esports/internal/app"
	"github.com/junseong2im/Esports/internal/config"
	"github.com/junseong2im/Esports/internal/observability"
	"github.com/junseong2im/Esports/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownUptrace(ctx)
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = stopProfiler()
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = observability.StopPprofServer(pprofSrv, logger, 5*time.Second)
	}()

	runner := NewRunner(RunnerOpts{
		Services: app.NewServices(cfg, logger),
		Logger:   logger,
		PageSize: cfg.PageSize,
	})

	root := &cli.Command{
		Name:     "lckwatch",
		Usage:    "LCK match schedules, refreshes and Discord alerts from the terminal",
		Version:  cfg.ServiceVersion,
		Commands: runner.register(),
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "lckwatch: %v\n", err)
		os.Exit(1)
	}
}
