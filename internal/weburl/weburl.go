// Package weburl derives the canonical public URL for a catalog item.
package weburl

import (
	"fmt"
	"strings"
)

// Item carries the fields URL synthesis depends on. PlatformURLs is the
// per-platform link table some payloads embed; when the first listed platform
// has an entry there, that URL wins over the generated patterns.
type Item struct {
	Slug         string
	Type         string
	SeriesSlug   string
	Platforms    []string
	PlatformURLs map[string]string
}

// ContentURL resolves the public URL for an item. The embedded URL map is
// preferred; otherwise the per-platform, per-type pattern table applies, with
// primeran.eus as the pattern for unrecognized platforms.
func ContentURL(item Item) string {
	platform := ""
	if len(item.Platforms) > 0 {
		platform = item.Platforms[0]
	}

	if len(item.PlatformURLs) > 0 && platform != "" {
		if url, ok := item.PlatformURLs[platform]; ok && url != "" {
			return url
		}
	}

	switch platform {
	case "makusi.eus":
		return makusiURL(item)
	case "etbon.eus":
		return etbonURL(item)
	default:
		return fmt.Sprintf("https://primeran.eus/m/%s", item.Slug)
	}
}

func makusiURL(item Item) string {
	seriesLike := strings.Contains(strings.ToLower(item.Type), "series")
	switch {
	case item.Type == "episode":
		return fmt.Sprintf("https://makusi.eus/ikusi/w/%s", item.Slug)
	case seriesLike || item.SeriesSlug != "":
		// Series linkage pointing elsewhere means this row is an episode of
		// that series; linkage to itself means the series row proper.
		if item.SeriesSlug != "" && item.SeriesSlug != item.Slug {
			return fmt.Sprintf("https://makusi.eus/ikusi/w/%s", item.Slug)
		}
		return fmt.Sprintf("https://makusi.eus/ikusi/s/%s", item.Slug)
	default:
		return fmt.Sprintf("https://makusi.eus/ikusi/m/%s", item.Slug)
	}
}

func etbonURL(item Item) string {
	switch {
	case item.Type == "live":
		return fmt.Sprintf("https://etbon.eus/ch/%s", item.Slug)
	case strings.Contains(strings.ToLower(item.Type), "series"):
		return fmt.Sprintf("https://etbon.eus/s/%s", item.Slug)
	default:
		// etbon uses /m/ for movies and episodes alike.
		return fmt.Sprintf("https://etbon.eus/m/%s", item.Slug)
	}
}
