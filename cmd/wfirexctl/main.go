package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/wfirexctl/internal/appliance"
	"github.com/danmuck/wfirexctl/internal/logging"
	"github.com/danmuck/wfirexctl/internal/observability"
	"github.com/danmuck/wfirexctl/internal/server"
	"github.com/danmuck/wfirexctl/internal/waveform"
)

const defaultConfigPath = "config.toml"

func main() {
	path := defaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "wfirexctl: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	logging.ConfigureRuntime()

	cfg, found, err := loadServiceConfig(path)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Warning: '%s' not found. Using default values.\n", path)
	}
	levelOK := logging.SetLevel(cfg.Log.Level)

	logger, closer, err := observability.InitLogger("wfirexctl", observability.LoggerOptions{LogFile: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()
	if !levelOK {
		logger.Warn().Str("log_level", cfg.Log.Level).Msg("unknown log level, using info")
	}
	logger.Info().Str("config", path).Msg("starting wfirexctl")

	registry, err := waveform.Load(cfg.Appliance.WaveformsPath)
	if err != nil {
		return err
	}
	logger.Info().Int("devices", len(registry.DeviceNames())).Str("path", cfg.Appliance.WaveformsPath).Msg("waveform table loaded")

	observability.RegisterMetrics()
	gateway := server.New(registry, appliance.NewClient(cfg.Appliance.Timeouts), server.Config{
		ApplianceAddr: cfg.ApplianceAddr(),
		CorsOrigins:   cfg.App.CorsOrigins,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.NewService(cfg.ListenAddr(), gateway).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to start the server")
		return err
	}
	return nil
}
