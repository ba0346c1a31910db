package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eitbwatch/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage eitbwatch configuration",
	}

	var initPath string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := initPath
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&initPath, "path", "", "Destination path (defaults to the standard config location)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "database_path = %s\n", cfg.Paths.DatabasePath)
			fmt.Fprintf(out, "output_dir = %s\n", cfg.Paths.OutputDir)
			fmt.Fprintf(out, "log_dir = %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "default_platform = %s\n", cfg.Catalog.DefaultPlatform)
			fmt.Fprintf(out, "batch_size = %d\n", cfg.Migration.BatchSize)
			fmt.Fprintf(out, "log_format = %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "log_level = %s\n", cfg.Logging.Level)
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	cmd.AddCommand(showCmd)
	return cmd
}
