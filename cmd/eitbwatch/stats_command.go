package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"eitbwatch/internal/catalog"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var dbFlag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dbPath := cfg.Paths.DatabasePath
			if dbFlag != "" {
				dbPath = dbFlag
			}

			store, err := catalog.OpenExisting(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if file, ok := out.(*os.File); ok && !isatty.IsTerminal(file.Fd()) {
				printStatsPlain(cmd, stats)
				return nil
			}

			rows := [][]string{
				{"Total content", strconv.Itoa(stats.TotalContent)},
				{"Geo-restricted", strconv.Itoa(stats.GeoRestrictedCount)},
				{"Accessible", strconv.Itoa(stats.AccessibleCount)},
				{"Unknown", strconv.Itoa(stats.UnknownCount)},
				{"Restricted %", fmt.Sprintf("%.1f", stats.GeoRestrictedPercentage)},
			}
			for _, contentType := range sortedTypes(stats.ByType) {
				rows = append(rows, []string{"  " + contentType, strconv.Itoa(stats.ByType[contentType])})
			}
			if stats.LastCheck != nil {
				rows = append(rows, []string{"Last check", *stats.LastCheck})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbFlag, "db", "", "Catalog database path (overrides config)")
	return cmd
}

func printStatsPlain(cmd *cobra.Command, stats catalog.Statistics) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "total_content=%d\n", stats.TotalContent)
	fmt.Fprintf(out, "geo_restricted=%d\n", stats.GeoRestrictedCount)
	fmt.Fprintf(out, "accessible=%d\n", stats.AccessibleCount)
	fmt.Fprintf(out, "unknown=%d\n", stats.UnknownCount)
	fmt.Fprintf(out, "geo_restricted_percentage=%.1f\n", stats.GeoRestrictedPercentage)
	for _, contentType := range sortedTypes(stats.ByType) {
		fmt.Fprintf(out, "type_%s=%d\n", contentType, stats.ByType[contentType])
	}
	if stats.LastCheck != nil {
		fmt.Fprintf(out, "last_check=%s\n", *stats.LastCheck)
	}
}

func sortedTypes(byType map[string]int) []string {
	types := make([]string, 0, len(byType))
	for contentType := range byType {
		types = append(types, contentType)
	}
	sort.Strings(types)
	return types
}
