package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"eitbwatch/internal/catalog"
)

// errorLogLimit bounds how many malformed payloads are logged individually;
// the rest are only counted.
const errorLogLimit = 5

// Report accumulates running totals across migration windows.
type Report struct {
	Total     int
	Processed int
	Updated   int
	Skipped   int
	Errors    int
}

// Percentage returns run completion as 0-100.
func (r Report) Percentage() float64 {
	if r.Total == 0 {
		return 100
	}
	return float64(r.Processed) / float64(r.Total) * 100
}

// PopulateDates derives available_until and publication_date from the raw
// metadata payload for every row that lacks both. available_until comes
// straight from the payload; publication_date prefers the payload-level
// creation date and falls back to the earliest per-image creation date.
func PopulateDates(ctx context.Context, store *catalog.Store, batchSize int, logger *slog.Logger) (Report, error) {
	if batchSize < 1 {
		return Report{}, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "migrate", "run", uuid.NewString())

	var report Report
	total, err := store.MissingDateCount(ctx)
	if err != nil {
		return report, err
	}
	report.Total = total
	logger.Info("date backfill starting", "pending", total, "batch_size", batchSize)

	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		window, err := store.MissingDateWindow(ctx, afterID, batchSize)
		if err != nil {
			return report, err
		}
		if len(window) == 0 {
			break
		}

		var updates []catalog.DateUpdate
		for _, row := range window {
			report.Processed++
			if row.Metadata == "" {
				report.Skipped++
				continue
			}

			var payload map[string]any
			if err := json.Unmarshal([]byte(row.Metadata), &payload); err != nil {
				report.Errors++
				if report.Errors <= errorLogLimit {
					logger.Warn("malformed payload", "id", row.ID, "error", err)
				}
				continue
			}

			update := deriveDates(row.ID, payload)
			if update == nil {
				report.Skipped++
				continue
			}
			updates = append(updates, *update)
			report.Updated++
		}

		if err := store.ApplyDerivedDates(ctx, updates); err != nil {
			return report, err
		}

		afterID = window[len(window)-1].ID
		logger.Info("window committed",
			"processed", report.Processed,
			"total", report.Total,
			"percent", fmt.Sprintf("%.1f", report.Percentage()),
			"updated", report.Updated,
			"skipped", report.Skipped,
			"errors", report.Errors,
		)
	}

	logger.Info("date backfill complete",
		"updated", report.Updated, "skipped", report.Skipped, "errors", report.Errors)
	return report, nil
}

// deriveDates computes the derived columns for one payload, or nil when
// neither date is present.
func deriveDates(id int64, payload map[string]any) *catalog.DateUpdate {
	update := catalog.DateUpdate{ID: id}

	if value, ok := payload["available_until"].(string); ok && value != "" {
		update.AvailableUntil = &value
	}

	if value, ok := payload["date_created"].(string); ok && value != "" {
		update.PublicationDate = &value
	} else if images, ok := payload["images"].([]any); ok {
		var earliest string
		for _, entry := range images {
			image, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			created, ok := image["date_created"].(string)
			if !ok || created == "" {
				continue
			}
			if earliest == "" || created < earliest {
				earliest = created
			}
		}
		if earliest != "" {
			update.PublicationDate = &earliest
		}
	}

	if update.AvailableUntil == nil && update.PublicationDate == nil {
		return nil
	}
	return &update
}
