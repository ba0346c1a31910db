package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Upsert merges an observation into the catalog keyed by slug. First sighting
// inserts a new row; repeat sightings overwrite every mutable field with the
// new values while preserving created_at. Returns the row identifier.
func (s *Store) Upsert(ctx context.Context, obs Observation) (int64, error) {
	if obs.Slug == "" {
		return 0, errors.New("observation slug is required")
	}
	contentType := obs.Type
	if contentType == "" {
		contentType = "unknown"
	}

	genres, err := encodeGenres(obs.Genres)
	if err != nil {
		return 0, fmt.Errorf("encode genres: %w", err)
	}
	metadata, err := encodeMetadata(obs.Metadata)
	if err != nil {
		return 0, fmt.Errorf("encode metadata: %w", err)
	}
	platform, err := encodePlatforms(obs.Platforms)
	if err != nil {
		return 0, fmt.Errorf("encode platforms: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	var id int64
	err = s.db.QueryRowContext(
		ctx,
		`INSERT INTO content (
            slug, title, type, duration, year, genres,
            series_slug, series_title, season_number, episode_number,
            is_geo_restricted, restriction_type, platform, last_checked, metadata,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(slug) DO UPDATE SET
            title = excluded.title,
            type = excluded.type,
            duration = excluded.duration,
            year = excluded.year,
            genres = excluded.genres,
            series_slug = excluded.series_slug,
            series_title = excluded.series_title,
            season_number = excluded.season_number,
            episode_number = excluded.episode_number,
            is_geo_restricted = excluded.is_geo_restricted,
            restriction_type = excluded.restriction_type,
            platform = excluded.platform,
            last_checked = excluded.last_checked,
            metadata = excluded.metadata,
            updated_at = excluded.updated_at
        RETURNING id`,
		obs.Slug,
		nullableString(obs.Title),
		contentType,
		nullableInt(obs.Duration),
		nullableInt(obs.Year),
		genres,
		nullableString(obs.SeriesSlug),
		nullableString(obs.SeriesTitle),
		nullableInt(obs.SeasonNumber),
		nullableInt(obs.EpisodeNumber),
		nullableBool(obs.GeoRestricted),
		nullableString(obs.RestrictionType),
		platform,
		now,
		metadata,
		now,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert content: %w", err)
	}
	return id, nil
}

// GetBySlug fetches a content record by slug. Returns nil when absent.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*ContentRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content WHERE slug = ?`, slug)
	rec, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	return rec, nil
}

// RestrictionStatus returns the stored restriction state for a slug, or nil
// when the slug has never been observed. Scraper collaborators consult this
// before deciding whether to re-probe an item.
func (s *Store) RestrictionStatus(ctx context.Context, slug string) (*RestrictionState, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT is_geo_restricted, restriction_type FROM content WHERE slug = ?`, slug)
	var (
		restricted sql.NullInt64
		kind       sql.NullString
	)
	err := row.Scan(&restricted, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restriction status: %w", err)
	}
	return &RestrictionState{GeoRestricted: boolPtr(restricted), RestrictionType: kind.String}, nil
}

// ForEachContent streams catalog rows ordered by title through fn, applying
// the filter. Rows are fetched lazily from the driver, so the full result set
// never materializes in memory. Iteration stops on the first error fn returns.
func (s *Store) ForEachContent(ctx context.Context, filter ContentFilter, fn func(*ContentRecord) error) error {
	query := `SELECT ` + contentColumns + ` FROM content WHERE 1=1`
	var args []any
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if filter.RestrictedOnly {
		query += ` AND is_geo_restricted = 1`
	}
	query += ` ORDER BY title`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanContent(rows)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

const contentColumns = "id, slug, title, type, duration, year, genres, series_slug, series_title, " +
	"season_number, season_number_normalized, episode_number, is_geo_restricted, restriction_type, " +
	"platform, last_checked, metadata, available_until, publication_date, created_at, updated_at"

func scanContent(scanner interface{ Scan(dest ...any) error }) (*ContentRecord, error) {
	var (
		id               int64
		slug             string
		title            sql.NullString
		contentType      string
		duration         sql.NullInt64
		year             sql.NullInt64
		genres           sql.NullString
		seriesSlug       sql.NullString
		seriesTitle      sql.NullString
		seasonNumber     sql.NullInt64
		seasonNormalized sql.NullInt64
		episodeNumber    sql.NullInt64
		geoRestricted    sql.NullInt64
		restrictionType  sql.NullString
		platform         sql.NullString
		lastCheckedRaw   sql.NullString
		metadata         sql.NullString
		availableUntil   sql.NullString
		publicationDate  sql.NullString
		createdRaw       sql.NullString
		updatedRaw       sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&slug,
		&title,
		&contentType,
		&duration,
		&year,
		&genres,
		&seriesSlug,
		&seriesTitle,
		&seasonNumber,
		&seasonNormalized,
		&episodeNumber,
		&geoRestricted,
		&restrictionType,
		&platform,
		&lastCheckedRaw,
		&metadata,
		&availableUntil,
		&publicationDate,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	rec := &ContentRecord{
		ID:                     id,
		Slug:                   slug,
		Title:                  title.String,
		Type:                   contentType,
		Duration:               intPtr(duration),
		Year:                   intPtr(year),
		GenresJSON:             stringPtr(genres),
		SeriesSlug:             seriesSlug.String,
		SeriesTitle:            seriesTitle.String,
		SeasonNumber:           intPtr(seasonNumber),
		SeasonNumberNormalized: intPtr(seasonNormalized),
		EpisodeNumber:          intPtr(episodeNumber),
		GeoRestricted:          boolPtr(geoRestricted),
		RestrictionType:        restrictionType.String,
		Platform:               stringPtr(platform),
		MetadataJSON:           metadata.String,
		AvailableUntil:         stringPtr(availableUntil),
		PublicationDate:        stringPtr(publicationDate),
	}
	if lastCheckedRaw.Valid {
		if checked, err := parseTimeString(lastCheckedRaw.String); err == nil {
			rec.LastChecked = &checked
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		rec.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		rec.UpdatedAt = updated
	}
	return rec, nil
}

// encodeGenres preserves the nil/empty distinction: a missing genre list is
// stored as NULL, an empty one as "[]".
func encodeGenres(genres []string) (any, error) {
	if genres == nil {
		return nil, nil
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func encodeMetadata(payload any) (any, error) {
	switch v := payload.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return v, nil
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
}

func encodePlatforms(platforms []string) (any, error) {
	if len(platforms) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(platforms)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
