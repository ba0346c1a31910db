package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordCheck appends one immutable audit row for a restriction probe.
func (s *Store) RecordCheck(ctx context.Context, slug string, result CheckResult) error {
	if slug == "" {
		return fmt.Errorf("record check: slug is required")
	}
	method := result.Method
	if method == "" {
		method = "manifest_check"
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO check_history (slug, checked_at, was_restricted, status_code, method_used, error)
         VALUES (?, ?, ?, ?, ?, ?)`,
		slug,
		time.Now().UTC().Format(time.RFC3339Nano),
		nullableBool(result.WasRestricted),
		nullableInt(result.StatusCode),
		method,
		nullableString(result.Error),
	)
	if err != nil {
		return fmt.Errorf("insert check history: %w", err)
	}
	return nil
}

// HistoryBySlug returns the most recent check rows for a slug, newest first.
// A non-positive limit returns the full history.
func (s *Store) HistoryBySlug(ctx context.Context, slug string, limit int) ([]HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM check_history WHERE slug = ? ORDER BY checked_at DESC`
	args := []any{slug}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history by slug: %w", err)
	}
	defer rows.Close()
	return collectHistory(rows)
}

// HistoryRange returns check rows within [from, to), oldest first.
func (s *Store) HistoryRange(ctx context.Context, from, to time.Time) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+historyColumns+` FROM check_history WHERE checked_at >= ? AND checked_at < ? ORDER BY checked_at`,
		from.UTC().Format(time.RFC3339Nano),
		to.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("query history range: %w", err)
	}
	defer rows.Close()
	return collectHistory(rows)
}

const historyColumns = "id, slug, checked_at, was_restricted, status_code, method_used, error"

func collectHistory(rows *sql.Rows) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for rows.Next() {
		var (
			entry      HistoryEntry
			checkedRaw string
			restricted sql.NullInt64
			statusCode sql.NullInt64
			method     sql.NullString
			errText    sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Slug, &checkedRaw, &restricted, &statusCode, &method, &errText); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if checked, err := parseTimeString(checkedRaw); err == nil {
			entry.CheckedAt = checked
		}
		entry.WasRestricted = boolPtr(restricted)
		entry.StatusCode = intPtr(statusCode)
		entry.Method = method.String
		entry.Error = errText.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
