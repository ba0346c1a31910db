package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats computes aggregate counts over current catalog state. All queries run
// inside one read transaction so the counts describe a single snapshot.
func (s *Store) Stats(ctx context.Context) (Statistics, error) {
	stats := Statistics{ByType: make(map[string]int)}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return stats, fmt.Errorf("begin stats tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM content`).Scan(&stats.TotalContent); err != nil {
		return stats, fmt.Errorf("count content: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT type, COUNT(*) FROM content GROUP BY type`)
	if err != nil {
		return stats, fmt.Errorf("count by type: %w", err)
	}
	for rows.Next() {
		var (
			contentType string
			count       int
		)
		if err := rows.Scan(&contentType, &count); err != nil {
			rows.Close()
			return stats, fmt.Errorf("scan type count: %w", err)
		}
		stats.ByType[contentType] = count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return stats, err
	}
	rows.Close()

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM content WHERE is_geo_restricted = 1`, &stats.GeoRestrictedCount},
		{`SELECT COUNT(*) FROM content WHERE is_geo_restricted = 0`, &stats.AccessibleCount},
		{`SELECT COUNT(*) FROM content WHERE is_geo_restricted IS NULL`, &stats.UnknownCount},
	}
	for _, c := range counts {
		if err := tx.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return stats, fmt.Errorf("count restriction split: %w", err)
		}
	}

	if stats.TotalContent > 0 {
		stats.GeoRestrictedPercentage = float64(stats.GeoRestrictedCount) / float64(stats.TotalContent) * 100
	}

	var lastCheck sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT MAX(last_checked) FROM content`).Scan(&lastCheck); err != nil {
		return stats, fmt.Errorf("max last_checked: %w", err)
	}
	stats.LastCheck = stringPtr(lastCheck)

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit stats tx: %w", err)
	}
	return stats, nil
}
