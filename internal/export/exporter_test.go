package export_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"eitbwatch/internal/catalog"
	"eitbwatch/internal/export"
	"eitbwatch/internal/testsupport"
)

type contentDocument struct {
	ExportDate string             `json:"export_date"`
	Statistics catalog.Statistics `json:"statistics"`
	Content    []export.Item      `json:"content"`
}

type restrictedDocument struct {
	ExportDate string                  `json:"export_date"`
	Count      int                     `json:"count"`
	Content    []export.RestrictedItem `json:"content"`
}

func readJSON(t *testing.T, path string, target any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("decode %s: %v\n%s", path, err, data)
	}
}

func TestExportAllEmptyCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	exporter := export.New(store, cfg.Paths.OutputDir, "", nil)

	summary, err := exporter.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if summary.ItemsExported != 0 {
		t.Fatalf("expected zero items, got %d", summary.ItemsExported)
	}

	var doc contentDocument
	readJSON(t, summary.File, &doc)
	if doc.ExportDate == "" {
		t.Fatal("expected export_date in document")
	}
	if doc.Statistics.TotalContent != 0 {
		t.Fatalf("expected zero statistics, got %+v", doc.Statistics)
	}
	if len(doc.Content) != 0 {
		t.Fatalf("expected empty content array, got %d items", len(doc.Content))
	}
}

func TestExportAllProjectsRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.Upsert(t, store, catalog.Observation{
		Slug:          "zorion",
		Title:         "Zoriontasuna",
		Type:          "movie",
		Genres:        []string{"drama"},
		GeoRestricted: testsupport.BoolPtr(true),
		Platforms:     []string{"makusi.eus"},
		Metadata: `{
			"description": "film luzea",
			"images": [{"file": "poster.jpg"}],
			"age_rating": {"label": "12", "age": 12},
			"audios": [{"code": "eu"}],
			"media_type": "vod"
		}`,
	})
	testsupport.Upsert(t, store, catalog.Observation{
		Slug:          "goazen-2x01",
		Title:         "Atala bat",
		Type:          "episode",
		SeriesSlug:    "goazen",
		SeriesTitle:   "Goazen",
		SeasonNumber:  testsupport.IntPtr(2),
		EpisodeNumber: testsupport.IntPtr(1),
		Platforms:     []string{"makusi.eus"},
	})
	if _, err := store.ApplySeasonRanks(ctx, "goazen", map[int]int{2: 1}); err != nil {
		t.Fatalf("ApplySeasonRanks: %v", err)
	}

	exporter := export.New(store, cfg.Paths.OutputDir, "", nil)
	summary, err := exporter.ExportAll(ctx)
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if summary.ItemsExported != 2 {
		t.Fatalf("expected 2 items, got %d", summary.ItemsExported)
	}

	var doc contentDocument
	readJSON(t, summary.File, &doc)
	if len(doc.Content) != 2 {
		t.Fatalf("expected 2 content items, got %d", len(doc.Content))
	}

	// Rows stream in title order.
	episode, movie := doc.Content[0], doc.Content[1]
	if episode.Slug != "goazen-2x01" || movie.Slug != "zorion" {
		t.Fatalf("unexpected ordering: %s, %s", episode.Slug, movie.Slug)
	}

	if movie.Thumbnail != "poster.jpg" {
		t.Fatalf("thumbnail = %v", movie.Thumbnail)
	}
	if movie.AgeRating != "12" {
		t.Fatalf("age_rating = %v", movie.AgeRating)
	}
	if movie.MediaType != "vod" {
		t.Fatalf("media_type = %v", movie.MediaType)
	}
	if len(movie.Languages) != 1 || movie.Languages[0] != "eu" {
		t.Fatalf("languages = %v", movie.Languages)
	}
	if len(movie.Genres) != 1 || movie.Genres[0] != "drama" {
		t.Fatalf("genres = %v", movie.Genres)
	}
	if movie.GeoRestricted == nil || !*movie.GeoRestricted {
		t.Fatal("expected movie flagged geo restricted")
	}
	if movie.ContentURL != "https://makusi.eus/ikusi/m/zorion" {
		t.Fatalf("movie content_url = %q", movie.ContentURL)
	}

	if episode.ContentURL != "https://makusi.eus/ikusi/w/goazen-2x01" {
		t.Fatalf("episode content_url = %q", episode.ContentURL)
	}
	if episode.SeasonNumber == nil || *episode.SeasonNumber != 1 {
		t.Fatalf("expected normalized season 1, got %v", episode.SeasonNumber)
	}
	if episode.Genres == nil || len(episode.Genres) != 0 {
		t.Fatalf("expected empty genres list, got %v", episode.Genres)
	}
}

func TestExportRestrictedOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.Upsert(t, store, catalog.Observation{
		Slug: "blocked", Title: "Blocked", Type: "movie",
		GeoRestricted: testsupport.BoolPtr(true),
	})
	testsupport.Upsert(t, store, catalog.Observation{
		Slug: "open", Title: "Open", Type: "movie",
		GeoRestricted: testsupport.BoolPtr(false),
	})

	exporter := export.New(store, cfg.Paths.OutputDir, "", nil)
	summary, err := exporter.ExportRestricted(context.Background())
	if err != nil {
		t.Fatalf("ExportRestricted failed: %v", err)
	}
	if summary.ItemsExported != 1 {
		t.Fatalf("expected 1 restricted item, got %d", summary.ItemsExported)
	}

	var doc restrictedDocument
	readJSON(t, summary.File, &doc)
	if doc.Count != 1 {
		t.Fatalf("count header = %d", doc.Count)
	}
	if len(doc.Content) != 1 || doc.Content[0].Slug != "blocked" {
		t.Fatalf("unexpected content: %+v", doc.Content)
	}
}

func TestExportSkipsMalformedGenres(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.Upsert(t, store, catalog.Observation{Slug: "good", Title: "Good", Type: "movie"})
	testsupport.Upsert(t, store, catalog.Observation{Slug: "bad", Title: "Bad", Type: "movie"})

	// Corrupt one stored genre list behind the store's back.
	db, err := sql.Open("sqlite", cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatalf("open raw database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`UPDATE content SET genres = '{broken' WHERE slug = 'bad'`); err != nil {
		t.Fatalf("corrupt genres: %v", err)
	}

	exporter := export.New(store, cfg.Paths.OutputDir, "", nil)
	summary, err := exporter.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if summary.ItemsExported != 1 {
		t.Fatalf("expected malformed row skipped, got %d items", summary.ItemsExported)
	}

	// Document stays valid JSON despite the skip.
	var doc contentDocument
	readJSON(t, summary.File, &doc)
	if len(doc.Content) != 1 || doc.Content[0].Slug != "good" {
		t.Fatalf("unexpected content: %+v", doc.Content)
	}
}

func TestExportStatisticsDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.Upsert(t, store, catalog.Observation{
		Slug: "a", Title: "A", Type: "movie",
		GeoRestricted: testsupport.BoolPtr(true),
	})
	testsupport.Upsert(t, store, catalog.Observation{
		Slug: "b", Title: "B", Type: "episode",
		GeoRestricted: testsupport.BoolPtr(false),
	})

	exporter := export.New(store, cfg.Paths.OutputDir, "", nil)
	summary, err := exporter.ExportStatistics(context.Background())
	if err != nil {
		t.Fatalf("ExportStatistics failed: %v", err)
	}
	if filepath.Base(summary.File) != "statistics.json" {
		t.Fatalf("unexpected file %q", summary.File)
	}

	var doc struct {
		ExportDate string             `json:"export_date"`
		Statistics catalog.Statistics `json:"statistics"`
	}
	readJSON(t, summary.File, &doc)
	if doc.Statistics.TotalContent != 2 {
		t.Fatalf("total = %d", doc.Statistics.TotalContent)
	}
	if doc.Statistics.GeoRestrictedPercentage != 50 {
		t.Fatalf("percentage = %f", doc.Statistics.GeoRestrictedPercentage)
	}
}
