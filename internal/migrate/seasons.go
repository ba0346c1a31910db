package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"eitbwatch/internal/catalog"
)

// NormalizeSeasons assigns season_number_normalized for episodes that lack
// it. Within each series, distinct raw season numbers map to their 1-based
// dense rank in ascending raw order, so raw seasons {2, 5, 1} become {2, 3, 1}.
// Episodes sharing a raw season number receive the same normalized value.
// Each series commits in its own transaction.
func NormalizeSeasons(ctx context.Context, store *catalog.Store, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "migrate", "run", uuid.NewString())

	var report Report
	series, err := store.SeriesNeedingSeasons(ctx)
	if err != nil {
		return report, err
	}
	report.Total = len(series)
	logger.Info("season normalization starting", "series", len(series))

	for _, slug := range series {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		seasons, err := store.DistinctRawSeasons(ctx, slug)
		if err != nil {
			return report, err
		}
		if len(seasons) == 0 {
			report.Processed++
			report.Skipped++
			continue
		}

		// Dense rank over distinct raw values, ascending.
		ranks := make(map[int]int, len(seasons))
		for i, raw := range seasons {
			ranks[raw] = i + 1
		}

		updated, err := store.ApplySeasonRanks(ctx, slug, ranks)
		if err != nil {
			return report, fmt.Errorf("normalize series %s: %w", slug, err)
		}
		report.Processed++
		report.Updated += int(updated)

		if report.Processed%50 == 0 {
			logger.Info("progress",
				"series", report.Processed,
				"total", report.Total,
				"percent", fmt.Sprintf("%.1f", report.Percentage()),
				"episodes_updated", report.Updated,
			)
		}
	}

	logger.Info("season normalization complete",
		"series", report.Processed, "episodes_updated", report.Updated)
	return report, nil
}
