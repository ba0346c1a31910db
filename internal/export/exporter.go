package export

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"eitbwatch/internal/catalog"
	"eitbwatch/internal/metadata"
)

// Exporter writes dashboard JSON artifacts from catalog state.
type Exporter struct {
	store           *catalog.Store
	outputDir       string
	defaultPlatform string
	logger          *slog.Logger
}

// Summary describes the outcome of one export call.
type Summary struct {
	File          string
	ItemsExported int
	ExportDate    string
}

// New constructs an exporter writing into outputDir.
func New(store *catalog.Store, outputDir, defaultPlatform string, logger *slog.Logger) *Exporter {
	if defaultPlatform == "" {
		defaultPlatform = metadata.DefaultPlatform
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		store:           store,
		outputDir:       outputDir,
		defaultPlatform: defaultPlatform,
		logger:          logger.With("component", "export"),
	}
}

// ExportAll streams the full catalog into content.json.
func (e *Exporter) ExportAll(ctx context.Context) (Summary, error) {
	stats, err := e.store.Stats(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load statistics: %w", err)
	}

	return e.streamDocument(ctx, "content.json", "statistics", stats, catalog.ContentFilter{},
		func(rec *catalog.ContentRecord) (any, error) {
			return projectItem(rec, e.defaultPlatform)
		})
}

// ExportRestricted streams only geo-restricted items into geo-restricted.json.
func (e *Exporter) ExportRestricted(ctx context.Context) (Summary, error) {
	stats, err := e.store.Stats(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load statistics: %w", err)
	}

	return e.streamDocument(ctx, "geo-restricted.json", "count", stats.GeoRestrictedCount,
		catalog.ContentFilter{RestrictedOnly: true},
		func(rec *catalog.ContentRecord) (any, error) {
			return projectRestrictedItem(rec, e.defaultPlatform)
		})
}

// ExportStatistics writes the aggregate-only statistics.json document.
func (e *Exporter) ExportStatistics(ctx context.Context) (Summary, error) {
	stats, err := e.store.Stats(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load statistics: %w", err)
	}

	exportDate := time.Now().UTC().Format(time.RFC3339)
	doc := struct {
		ExportDate string             `json:"export_date"`
		Statistics catalog.Statistics `json:"statistics"`
	}{ExportDate: exportDate, Statistics: stats}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Summary{}, fmt.Errorf("marshal statistics: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(e.outputDir, "statistics.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Summary{}, fmt.Errorf("write statistics: %w", err)
	}

	e.logger.Info("exported statistics", "file", path)
	return Summary{File: path, ExportDate: exportDate}, nil
}

// streamDocument writes {"export_date", <headerKey>: <headerValue>,
// "content": [...]} incrementally. Each row is projected and appended with
// comma separation; a projection failure skips the row and the document stays
// syntactically valid.
func (e *Exporter) streamDocument(
	ctx context.Context,
	filename, headerKey string,
	headerValue any,
	filter catalog.ContentFilter,
	project func(*catalog.ContentRecord) (any, error),
) (Summary, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("ensure output directory: %w", err)
	}

	path := filepath.Join(e.outputDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return Summary{}, fmt.Errorf("create %s: %w", filename, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	exportDate := time.Now().UTC().Format(time.RFC3339)
	logger := e.logger.With("file", filename, "run", uuid.NewString())

	headerJSON, err := json.MarshalIndent(headerValue, "  ", "  ")
	if err != nil {
		return Summary{}, fmt.Errorf("marshal %s header: %w", headerKey, err)
	}

	fmt.Fprintf(writer, "{\n  %q: %q,\n  %q: %s,\n  \"content\": [\n", "export_date", exportDate, headerKey, headerJSON)

	count := 0
	skipped := 0
	first := true
	err = e.store.ForEachContent(ctx, filter, func(rec *catalog.ContentRecord) error {
		item, err := project(rec)
		if err != nil {
			skipped++
			logger.Warn("skipping record", "slug", rec.Slug, "error", err)
			return nil
		}
		itemJSON, err := json.MarshalIndent(item, "    ", "  ")
		if err != nil {
			skipped++
			logger.Warn("skipping record", "slug", rec.Slug, "error", err)
			return nil
		}
		if !first {
			writer.WriteString(",\n")
		}
		first = false
		writer.WriteString("    ")
		writer.Write(itemJSON)
		count++
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("stream %s: %w", filename, err)
	}

	writer.WriteString("\n  ]\n}\n")
	if err := writer.Flush(); err != nil {
		return Summary{}, fmt.Errorf("flush %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return Summary{}, fmt.Errorf("close %s: %w", filename, err)
	}

	logger.Info("export complete", "items", count, "skipped", skipped)
	return Summary{File: path, ItemsExported: count, ExportDate: exportDate}, nil
}
