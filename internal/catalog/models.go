package catalog

import "time"

// Observation is one harvested sighting of a catalog item, as delivered by
// the platform API clients. Optional attributes are pointers so absent values
// persist as NULL rather than zero.
type Observation struct {
	Slug          string
	Title         string
	Type          string
	Duration      *int
	Year          *int
	Genres        []string
	SeriesSlug    string
	SeriesTitle   string
	SeasonNumber  *int
	EpisodeNumber *int
	GeoRestricted *bool
	RestrictionType string
	Platforms     []string
	// Metadata is the raw API payload. Accepted as a JSON string, raw bytes,
	// or an already-structured value; stored verbatim either way.
	Metadata any
}

// ContentRecord is one row of the content table.
type ContentRecord struct {
	ID                    int64
	Slug                  string
	Title                 string
	Type                  string
	Duration              *int
	Year                  *int
	GenresJSON            *string
	SeriesSlug            string
	SeriesTitle           string
	SeasonNumber          *int
	SeasonNumberNormalized *int
	EpisodeNumber         *int
	GeoRestricted         *bool
	RestrictionType       string
	Platform              *string
	LastChecked           *time.Time
	MetadataJSON          string
	AvailableUntil        *string
	PublicationDate       *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CheckResult is the outcome of a single geo-restriction probe.
type CheckResult struct {
	WasRestricted *bool
	StatusCode    *int
	Method        string
	Error         string
}

// HistoryEntry is one row of the append-only check_history table.
type HistoryEntry struct {
	ID            int64
	Slug          string
	CheckedAt     time.Time
	WasRestricted *bool
	StatusCode    *int
	Method        string
	Error         string
}

// RestrictionState is the stored restriction status of a single item.
type RestrictionState struct {
	GeoRestricted   *bool
	RestrictionType string
}

// ContentFilter narrows catalog iteration.
type ContentFilter struct {
	Type           string
	RestrictedOnly bool
}

// Statistics aggregates current catalog state for the dashboard. Field names
// match the JSON contract of the exported statistics document.
type Statistics struct {
	TotalContent            int            `json:"total_content"`
	ByType                  map[string]int `json:"by_type"`
	GeoRestrictedCount      int            `json:"geo_restricted_count"`
	AccessibleCount         int            `json:"accessible_count"`
	UnknownCount            int            `json:"unknown_count"`
	GeoRestrictedPercentage float64        `json:"geo_restricted_percentage"`
	LastCheck               *string        `json:"last_check"`
}
