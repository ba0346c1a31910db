package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eitbwatch/internal/catalog"
	"eitbwatch/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var dbFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write content.json, statistics.json, and geo-restricted.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dbPath := cfg.Paths.DatabasePath
			if dbFlag != "" {
				dbPath = dbFlag
			}
			outputDir := cfg.Paths.OutputDir
			if outputFlag != "" {
				outputDir = outputFlag
			}

			store, err := catalog.OpenExisting(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			exporter := export.New(store, outputDir, cfg.Catalog.DefaultPlatform, logger)

			all, err := exporter.ExportAll(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := exporter.ExportStatistics(cmd.Context()); err != nil {
				return err
			}
			restricted, err := exporter.ExportRestricted(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items (%d geo-restricted) to %s\n",
				all.ItemsExported, restricted.ItemsExported, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbFlag, "db", "", "Catalog database path (overrides config)")
	cmd.Flags().StringVar(&outputFlag, "output-dir", "", "Output directory (overrides config)")
	return cmd
}
