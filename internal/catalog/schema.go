package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS content (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT UNIQUE NOT NULL,
    title TEXT,
    type TEXT NOT NULL,
    duration INTEGER,
    year INTEGER,
    genres TEXT,
    series_slug TEXT,
    series_title TEXT,
    season_number INTEGER,
    episode_number INTEGER,
    is_geo_restricted BOOLEAN,
    restriction_type TEXT,
    last_checked TEXT,
    metadata TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS check_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL,
    checked_at TEXT NOT NULL,
    was_restricted BOOLEAN,
    status_code INTEGER,
    method_used TEXT,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_content_type ON content(type);
CREATE INDEX IF NOT EXISTS idx_content_geo_restricted ON content(is_geo_restricted);
CREATE INDEX IF NOT EXISTS idx_content_series_slug ON content(series_slug);
CREATE INDEX IF NOT EXISTS idx_check_history_slug ON check_history(slug);
CREATE INDEX IF NOT EXISTS idx_check_history_checked_at ON check_history(checked_at);
`

// addedColumns are columns introduced after the initial schema. They are added
// with ALTER TABLE only when introspection shows them missing, so re-opening
// an old database upgrades it without disturbing existing rows.
var addedColumns = []struct {
	name string
	ddl  string
}{
	{"platform", "ALTER TABLE content ADD COLUMN platform TEXT"},
	{"season_number_normalized", "ALTER TABLE content ADD COLUMN season_number_normalized INTEGER"},
	{"available_until", "ALTER TABLE content ADD COLUMN available_until TEXT"},
	{"publication_date", "ALTER TABLE content ADD COLUMN publication_date TEXT"},
}

var addedIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_content_available_until ON content(available_until)",
	"CREATE INDEX IF NOT EXISTS idx_content_publication_date ON content(publication_date)",
}

// ensureSchema creates the base tables and applies additive column upgrades.
// Safe to invoke on every open.
func (s *Store) ensureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	existing, err := tableColumns(ctx, tx, "content")
	if err != nil {
		return err
	}
	for _, col := range addedColumns {
		if _, ok := existing[col.name]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, col.ddl); err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}
	for _, ddl := range addedIndexes {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var (
			cid     int
			name    string
			typeStr string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typeStr, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		columns[strings.ToLower(name)] = struct{}{}
	}
	return columns, rows.Err()
}
