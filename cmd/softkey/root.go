package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"softkey/internal/config"
	"softkey/internal/logging"
	"softkey/internal/settings"
)

// app carries what the subcommands share once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg      *config.Config
	logger   *logging.Logger
	settings *settings.Provider
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "softkey",
		Short: "Replay keystroke traces through input transactions",
		Long: `softkey rebuilds one input transaction per recorded keystroke, applies the
shift update requests each pipeline stage made, and reports whether the
keyboard had to refresh its shift state now, later, or not at all.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return a.logger.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (default "+config.ConfigPath()+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "override log format (text, json)")

	root.AddCommand(
		newReplayCmd(a),
		newValidateCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads config, builds the logger and the settings provider.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	logger, err := newLogger(cfg.Logging, cmd)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	a.settings = settings.NewProvider(cfg, logger)
	return nil
}

// newLogger maps the logging section of the config onto a logger. Console
// output goes to the command's error stream so tests can capture it.
func newLogger(lc config.LoggingConfig, cmd *cobra.Command) (*logging.Logger, error) {
	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(lc.Format)
	if err != nil {
		return nil, err
	}

	lcfg := logging.DefaultConfig()
	lcfg.Level = level
	lcfg.Format = format
	lcfg.Output = lc.Output
	lcfg.FilePath = lc.FilePath
	lcfg.MaxSize = int64(lc.MaxSizeMB)
	lcfg.MaxBackups = lc.MaxBackups
	lcfg.AddSource = lc.AddSource
	if lc.Output == "stderr" {
		lcfg.Writer = cmd.ErrOrStderr()
	}

	logger, err := logging.New(lcfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}
