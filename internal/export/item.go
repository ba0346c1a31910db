package export

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"eitbwatch/internal/catalog"
	"eitbwatch/internal/metadata"
	"eitbwatch/internal/weburl"
)

// Item is the dashboard-facing projection of one catalog row. Metadata-derived
// fields are typed any because payload shapes vary across platforms; absent
// values serialize as null.
type Item struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Duration        *int     `json:"duration"`
	Year            *int     `json:"year"`
	Genres          []string `json:"genres"`
	SeriesSlug      *string  `json:"series_slug"`
	SeriesTitle     *string  `json:"series_title"`
	SeasonNumber    *int     `json:"season_number"`
	EpisodeNumber   *int     `json:"episode_number"`
	GeoRestricted   *bool    `json:"is_geo_restricted"`
	RestrictionType *string  `json:"restriction_type"`
	LastChecked     *string  `json:"last_checked"`
	Description     any      `json:"description"`
	Thumbnail       any      `json:"thumbnail"`
	AgeRating       any      `json:"age_rating"`
	AccessRestriction any    `json:"access_restriction"`
	AvailableUntil  *string  `json:"available_until"`
	PublicationDate *string  `json:"publication_date"`
	Languages       []string `json:"languages"`
	Platform        []string `json:"platform"`
	MediaType       any      `json:"media_type"`
	ContentURL      string   `json:"content_url"`
}

// RestrictedItem is the reduced projection used by the restricted-only view.
type RestrictedItem struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	SeriesTitle     *string  `json:"series_title"`
	SeasonNumber    *int     `json:"season_number"`
	EpisodeNumber   *int     `json:"episode_number"`
	LastChecked     *string  `json:"last_checked"`
	Description     any      `json:"description"`
	Thumbnail       any      `json:"thumbnail"`
	AgeRating       any      `json:"age_rating"`
	AccessRestriction any    `json:"access_restriction"`
	AvailableUntil  *string  `json:"available_until"`
	PublicationDate *string  `json:"publication_date"`
	Languages       []string `json:"languages"`
	Platform        []string `json:"platform"`
	MediaType       any      `json:"media_type"`
	ContentURL      string   `json:"content_url"`
}

func projectItem(rec *catalog.ContentRecord, defaultPlatform string) (Item, error) {
	genres, err := decodeGenres(rec.GenresJSON)
	if err != nil {
		return Item{}, err
	}
	platforms := metadata.Platforms(rec.Platform, defaultPlatform)

	item := Item{
		Slug:              rec.Slug,
		Title:             rec.Title,
		Type:              rec.Type,
		Duration:          rec.Duration,
		Year:              rec.Year,
		Genres:            genres,
		SeriesSlug:        optional(rec.SeriesSlug),
		SeriesTitle:       optional(rec.SeriesTitle),
		SeasonNumber:      seasonNumber(rec),
		EpisodeNumber:     rec.EpisodeNumber,
		GeoRestricted:     rec.GeoRestricted,
		RestrictionType:   optional(rec.RestrictionType),
		LastChecked:       timestamp(rec.LastChecked),
		Description:       metadata.Extract(rec.MetadataJSON, "description", nil),
		Thumbnail:         metadata.Extract(rec.MetadataJSON, "images[0].file", nil),
		AgeRating:         ageRating(rec.MetadataJSON),
		AccessRestriction: metadata.Extract(rec.MetadataJSON, "access_restriction", nil),
		AvailableUntil:    rec.AvailableUntil,
		PublicationDate:   rec.PublicationDate,
		Languages:         metadata.Languages(rec.MetadataJSON),
		Platform:          platforms,
		MediaType:         metadata.Extract(rec.MetadataJSON, "media_type", nil),
		ContentURL:        contentURL(rec, platforms),
	}
	return item, nil
}

func projectRestrictedItem(rec *catalog.ContentRecord, defaultPlatform string) (RestrictedItem, error) {
	full, err := projectItem(rec, defaultPlatform)
	if err != nil {
		return RestrictedItem{}, err
	}
	return RestrictedItem{
		Slug:              full.Slug,
		Title:             full.Title,
		Type:              full.Type,
		SeriesTitle:       full.SeriesTitle,
		SeasonNumber:      full.SeasonNumber,
		EpisodeNumber:     full.EpisodeNumber,
		LastChecked:       full.LastChecked,
		Description:       full.Description,
		Thumbnail:         full.Thumbnail,
		AgeRating:         full.AgeRating,
		AccessRestriction: full.AccessRestriction,
		AvailableUntil:    full.AvailableUntil,
		PublicationDate:   full.PublicationDate,
		Languages:         full.Languages,
		Platform:          full.Platform,
		MediaType:         full.MediaType,
		ContentURL:        full.ContentURL,
	}, nil
}

// seasonNumber prefers the normalized column over the raw one.
func seasonNumber(rec *catalog.ContentRecord) *int {
	if rec.SeasonNumberNormalized != nil {
		return rec.SeasonNumberNormalized
	}
	return rec.SeasonNumber
}

// ageRating prefers the rating label over the bare age value.
func ageRating(payload string) any {
	if label := metadata.Extract(payload, "age_rating.label", nil); label != nil {
		return label
	}
	return metadata.Extract(payload, "age_rating.age", nil)
}

func contentURL(rec *catalog.ContentRecord, platforms []string) string {
	return weburl.ContentURL(weburl.Item{
		Slug:         rec.Slug,
		Type:         rec.Type,
		SeriesSlug:   rec.SeriesSlug,
		Platforms:    platforms,
		PlatformURLs: platformURLMap(rec.MetadataJSON),
	})
}

func platformURLMap(payload string) map[string]string {
	raw, ok := metadata.Extract(payload, "platform_urls", nil).(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	urls := make(map[string]string, len(raw))
	for platform, value := range raw {
		if url, ok := value.(string); ok && url != "" {
			urls[platform] = url
		}
	}
	return urls
}

// decodeGenres maps both NULL and "[]" to an empty list for the dashboard; a
// malformed stored value is a per-record error.
func decodeGenres(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return []string{}, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(*raw), &genres); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func timestamp(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.UTC().Format(time.RFC3339)
	return &formatted
}
