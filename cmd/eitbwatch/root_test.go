package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eitbwatch/internal/catalog"
	"eitbwatch/internal/testsupport"
)

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	content := `
[paths]
database_path = "` + filepath.Join(dir, "catalog.db") + `"
output_dir = "` + filepath.Join(dir, "export") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
`
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runCommand(t)
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	for _, sub := range []string{"export", "migrate", "stats", "config"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("help missing %q subcommand:\n%s", sub, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)

	store, err := catalog.Open(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	testsupport.Upsert(t, store, catalog.Observation{
		Slug: "zorion", Title: "Zoriontasuna", Type: "movie",
		GeoRestricted: testsupport.BoolPtr(true),
	})
	store.Close()

	out, err := runCommand(t, "--config", configPath, "export")
	if err != nil {
		t.Fatalf("export command failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Exported 1 items (1 geo-restricted)") {
		t.Fatalf("unexpected output: %s", out)
	}

	for _, name := range []string{"content.json", "statistics.json", "geo-restricted.json"} {
		if _, err := os.Stat(filepath.Join(dir, "export", name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}
}

func TestExportCommandMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)

	_, err := runCommand(t, "--config", configPath, "export")
	if !errors.Is(err, catalog.ErrMissingDatabase) {
		t.Fatalf("expected missing-database error, got %v", err)
	}
}

func TestMigrateDatesCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)

	store, err := catalog.Open(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	testsupport.Upsert(t, store, catalog.Observation{
		Slug: "zorion", Title: "Zoriontasuna", Type: "movie",
		Metadata: `{"available_until": "2026-01-01T00:00:00Z"}`,
	})
	store.Close()

	out, err := runCommand(t, "--config", configPath, "migrate", "dates")
	if err != nil {
		t.Fatalf("migrate dates failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Updated 1") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}
}
