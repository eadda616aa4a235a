package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"softkey/internal/config"
	"softkey/internal/replay"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <trace>...",
		Short: "Check traces against the trace schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				trace, err := replay.LoadTrace(path)
				if err != nil {
					failed++
					a.logger.Error("trace rejected", "path", path, "error", err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d keystrokes)\n", path, len(trace.Keystrokes))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d traces invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			if force {
				if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				return nil
			}
			_, created, err := config.LoadOrCreate(path)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = configFormat(a.configPath)
			}
			data, err := config.Encode(a.cfg, "."+format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "", "output format (toml, json, yaml); defaults to the config file's")

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of softkey",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "softkey version %s\n", Version)
		},
	}
}

// configFormat infers the encoding from a config path. An empty path means
// the default TOML file.
func configFormat(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}
