package catalog

import (
	"context"
	"fmt"
)

// PayloadRow carries the raw metadata payload of one content row through a
// backfill window.
type PayloadRow struct {
	ID       int64
	Metadata string
}

// DateUpdate is one derived-date assignment produced by the date backfill.
type DateUpdate struct {
	ID              int64
	AvailableUntil  *string
	PublicationDate *string
}

// ContentCount returns the total number of catalog rows.
func (s *Store) ContentCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return count, nil
}

// MissingDateCount returns how many rows still lack both derived date columns.
func (s *Store) MissingDateCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE available_until IS NULL AND publication_date IS NULL`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count missing dates: %w", err)
	}
	return count, nil
}

// MissingDateWindow returns the next window of rows lacking derived dates,
// keyset-paginated on the primary key so already-processed rows are never
// rescanned.
func (s *Store) MissingDateWindow(ctx context.Context, afterID int64, limit int) ([]PayloadRow, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, metadata FROM content
         WHERE available_until IS NULL AND publication_date IS NULL AND id > ?
         ORDER BY id LIMIT ?`,
		afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query date window: %w", err)
	}
	defer rows.Close()

	var window []PayloadRow
	for rows.Next() {
		var (
			row      PayloadRow
			metadata any
		)
		if err := rows.Scan(&row.ID, &metadata); err != nil {
			return nil, fmt.Errorf("scan date window row: %w", err)
		}
		if text, ok := metadata.(string); ok {
			row.Metadata = text
		}
		window = append(window, row)
	}
	return window, rows.Err()
}

// ApplyDerivedDates writes one window of derived-date assignments in a single
// transaction. The guard predicate keeps the update idempotent if a window is
// replayed after an interrupted run.
func (s *Store) ApplyDerivedDates(ctx context.Context, updates []DateUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin date window tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE content SET available_until = ?, publication_date = ?
         WHERE id = ? AND available_until IS NULL AND publication_date IS NULL`)
	if err != nil {
		return fmt.Errorf("prepare date update: %w", err)
	}
	defer stmt.Close()

	for _, update := range updates {
		var availableUntil, publicationDate any
		if update.AvailableUntil != nil {
			availableUntil = *update.AvailableUntil
		}
		if update.PublicationDate != nil {
			publicationDate = *update.PublicationDate
		}
		if _, err := stmt.ExecContext(ctx, availableUntil, publicationDate, update.ID); err != nil {
			return fmt.Errorf("update dates for id %d: %w", update.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit date window: %w", err)
	}
	return nil
}

// SeriesNeedingSeasons returns the series slugs that still have episodes
// without a normalized season number.
func (s *Store) SeriesNeedingSeasons(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT series_slug FROM content
         WHERE type = 'episode' AND series_slug IS NOT NULL AND series_slug != ''
           AND season_number IS NOT NULL AND season_number_normalized IS NULL
         ORDER BY series_slug`)
	if err != nil {
		return nil, fmt.Errorf("query series needing seasons: %w", err)
	}
	defer rows.Close()

	var series []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan series slug: %w", err)
		}
		series = append(series, slug)
	}
	return series, rows.Err()
}

// DistinctRawSeasons returns the distinct raw season numbers of a series in
// ascending order, across all of its episodes. Already-normalized rows are
// included so rank assignment stays consistent on re-runs.
func (s *Store) DistinctRawSeasons(ctx context.Context, seriesSlug string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT season_number FROM content
         WHERE type = 'episode' AND series_slug = ? AND season_number IS NOT NULL
         ORDER BY season_number`,
		seriesSlug)
	if err != nil {
		return nil, fmt.Errorf("query distinct seasons: %w", err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("scan season number: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// ApplySeasonRanks assigns normalized season numbers for one series in a
// single transaction. Rows already carrying a normalized value are left
// untouched. Returns the number of rows updated.
func (s *Store) ApplySeasonRanks(ctx context.Context, seriesSlug string, ranks map[int]int) (int64, error) {
	if len(ranks) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin season tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE content SET season_number_normalized = ?
         WHERE type = 'episode' AND series_slug = ? AND season_number = ?
           AND season_number_normalized IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("prepare season update: %w", err)
	}
	defer stmt.Close()

	var updated int64
	for raw, rank := range ranks {
		res, err := stmt.ExecContext(ctx, rank, seriesSlug, raw)
		if err != nil {
			return updated, fmt.Errorf("update season %d for %s: %w", raw, seriesSlug, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return updated, fmt.Errorf("rows affected: %w", err)
		}
		updated += affected
	}

	if err := tx.Commit(); err != nil {
		return updated, fmt.Errorf("commit season tx: %w", err)
	}
	return updated, nil
}
