// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var configPath string
	var debug bool

	cmd := &cobra.Command{
		Use:   "jsonfmt [flags] [file ...]",
		Short: "Reformat, minify, or validate JSON text",
		Long: `Reformat, minify, or validate JSON text.

With no files, jsonfmt reads standard input and writes standard output.
Settings may be read from a YAML config file; flags given on the command
line take precedence over the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(debug)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			run := cfg
			if configPath != "" {
				run, err = loadConfig(configPath, cfg, cmd.Flags())
			} else {
				err = cfg.validate()
			}
			if err != nil {
				return err
			}
			logger.Debug("starting",
				zap.Int("files", len(args)),
				zap.Int("workers", run.Workers),
				zap.Bool("pretty", run.Pretty),
				zap.Bool("check", run.Check),
				zap.Strings("select", run.Select),
			)

			if len(args) == 0 {
				if run.Write {
					return fmt.Errorf("--write requires file arguments")
				}
				return run.processStream(os.Stdin, os.Stdout)
			}
			return run.processFiles(logger, args, os.Stdout)
		},
	}
	cfg.bindFlags(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "Path of a YAML config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}
