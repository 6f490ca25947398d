package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/aleister1102/tixwatch/internal/detector"
	"github.com/aleister1102/tixwatch/internal/fetcher"
	"github.com/aleister1102/tixwatch/internal/interval"
	"github.com/aleister1102/tixwatch/internal/logger"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/aleister1102/tixwatch/internal/monitor"
	"github.com/aleister1102/tixwatch/internal/notifier"
	"github.com/aleister1102/tixwatch/internal/rslimiter"
)

const (
	exitOK          = 0
	exitConfigError = 1
)

// run wires the application and blocks until monitoring stops. It returns the process exit code.
func run(ctx context.Context, flags AppFlags, stdin io.Reader, stdout, stderr io.Writer) int {
	configPath := config.GetConfigPath(flags.ConfigFile)

	gCfg, err := config.LoadOrCreate(configPath)
	if errors.Is(err, config.ErrConfigCreated) {
		fmt.Fprintf(stdout, "Created default configuration at '%s'. Edit it with your event URL and keyword, then run tixwatch again.\n", configPath)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] Could not load config '%s': %v\n", configPath, err)
		return exitConfigError
	}

	if err := applyOverrides(gCfg, flags); err != nil {
		fmt.Fprintf(stderr, "[FATAL] %v\n", err)
		return exitConfigError
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] Could not initialize logger: %v\n", err)
		return exitConfigError
	}
	zLogger.Info().Str("config", configPath).Msg("Configuration loaded")

	dispatcher, err := notifier.NewDispatcherFromConfig(gCfg.NotificationConfig, gCfg.HTTPConfig, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to set up notifications")
		return exitConfigError
	}
	zLogger.Info().Strs("channels", dispatcher.Channels()).Msg("Notification channels ready")

	loop, err := monitor.NewLoop(gCfg.MonitorConfig, monitor.Dependencies{
		Factory:    fetcher.NewFactory(gCfg, zLogger),
		Detector:   detector.NewDetector(detector.PatternsFromConfig(gCfg.DetectorConfig), zLogger),
		Policy:     interval.NewPolicy(),
		Dispatcher: dispatcher,
		Decider:    monitor.NewConsoleDecider(stdin, stdout),
	}, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to create monitor loop")
		return exitConfigError
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	if gCfg.ResourceConfig.Enabled {
		limiter := rslimiter.NewResourceLimiter(rslimiter.FromConfig(gCfg.ResourceConfig), zLogger)
		limiter.SetShutdownCallback(func(reason string) {
			zLogger.Warn().Str("reason", reason).Msg("Stopping monitoring due to resource limits")
			cancelRun()
		})
		limiter.Start(runCtx)
		defer limiter.Stop()
	}

	result, err := loop.Run(runCtx)
	if err != nil {
		zLogger.Error().Err(err).Msg("Monitoring could not start")
		return exitConfigError
	}

	switch result.Reason {
	case monitor.StopInterrupted:
		fmt.Fprintln(stdout, "\nMonitoring stopped by user")
	case monitor.StopOperator:
		fmt.Fprintln(stdout, "Monitoring stopped")
	}
	return exitOK
}

// applyOverrides folds command-line flags into the loaded config and revalidates it
func applyOverrides(gCfg *config.GlobalConfig, flags AppFlags) error {
	if flags.Mode != "" {
		mode, err := models.ParseDetectionMode(flags.Mode)
		if err != nil {
			return common.NewConfigError("mode", "invalid -mode flag", err)
		}
		gCfg.MonitorConfig.DetectionMode = mode.String()
	}
	if flags.LogLevel != "" {
		gCfg.LogConfig.LogLevel = flags.LogLevel
	}
	if flags.Once {
		gCfg.MonitorConfig.MaxAttempts = 1
	}
	return config.ValidateConfig(gCfg)
}
