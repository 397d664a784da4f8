package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hookkit/internal/config"
)

// appState is the per-invocation state shared by subcommands.
type appState struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
	color      bool
	quiet      bool
	timings    bool
}

var app = appState{cfg: config.Default(), logger: zap.NewNop()}

// setupRun loads the project config, applies flag overrides and builds the logger.
func setupRun(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	explicit, _ := flags.GetString("config")
	cfg, path, err := loadConfig(explicit)
	if err != nil {
		return err
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	mode, err := readColorMode(cfg.Color)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger, err := newLogger(level)
	if err != nil {
		return err
	}

	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")
	app = appState{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		color:      shouldUseColor(mode, os.Stdout),
		quiet:      quiet,
		timings:    timings,
	}
	if path != "" {
		logger.Debug("loaded config", zap.String("path", path))
	}
	return nil
}

// loadConfig reads an explicit config file, which must exist, or discovers
// the nearest one from the working directory.
func loadConfig(explicit string) (*config.Config, string, error) {
	if explicit == "" {
		return config.Discover(".")
	}
	if _, err := os.Stat(explicit); err != nil {
		return nil, "", fmt.Errorf("config: %w", err)
	}
	cfg, err := config.Load(explicit)
	return cfg, explicit, err
}

// newLogger builds the stderr logger used for operator diagnostics.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
