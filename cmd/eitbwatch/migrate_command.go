package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eitbwatch/internal/catalog"
	"eitbwatch/internal/migrate"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var dbFlag string
	var batchSizeFlag int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Backfill derived catalog columns",
	}
	cmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Catalog database path (overrides config)")
	cmd.PersistentFlags().IntVar(&batchSizeFlag, "batch-size", 0, "Rows per committed window (overrides config)")

	openStore := func() (*catalog.Store, int, error) {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return nil, 0, err
		}
		dbPath := cfg.Paths.DatabasePath
		if dbFlag != "" {
			dbPath = dbFlag
		}
		batchSize := cfg.Migration.BatchSize
		if batchSizeFlag > 0 {
			batchSize = batchSizeFlag
		}
		store, err := catalog.OpenExisting(dbPath)
		if err != nil {
			return nil, 0, err
		}
		return store, batchSize, nil
	}

	datesCmd := &cobra.Command{
		Use:   "dates",
		Short: "Populate available_until and publication_date from raw payloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, batchSize, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := migrate.PopulateDates(cmd.Context(), store, batchSize, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d, skipped %d, errors %d\n",
				report.Updated, report.Skipped, report.Errors)
			if report.Errors > 0 {
				return fmt.Errorf("%d payloads failed to process", report.Errors)
			}
			return nil
		},
	}

	seasonsCmd := &cobra.Command{
		Use:   "seasons",
		Short: "Assign normalized season numbers per series",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := migrate.NormalizeSeasons(cmd.Context(), store, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Normalized %d episodes across %d series\n",
				report.Updated, report.Processed)
			return nil
		},
	}

	cmd.AddCommand(datesCmd)
	cmd.AddCommand(seasonsCmd)
	return cmd
}
