package weburl

import "testing"

func TestContentURLPatterns(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			"makusi episode",
			Item{Slug: "foo", Type: "episode", Platforms: []string{"makusi.eus"}},
			"https://makusi.eus/ikusi/w/foo",
		},
		{
			"makusi episode via series linkage",
			Item{Slug: "foo-1x01", Type: "unknown", SeriesSlug: "foo", Platforms: []string{"makusi.eus"}},
			"https://makusi.eus/ikusi/w/foo-1x01",
		},
		{
			"makusi series itself",
			Item{Slug: "foo", Type: "series", SeriesSlug: "foo", Platforms: []string{"makusi.eus"}},
			"https://makusi.eus/ikusi/s/foo",
		},
		{
			"makusi plain media",
			Item{Slug: "foo", Type: "movie", Platforms: []string{"makusi.eus"}},
			"https://makusi.eus/ikusi/m/foo",
		},
		{
			"etbon live channel",
			Item{Slug: "etb1", Type: "live", Platforms: []string{"etbon.eus"}},
			"https://etbon.eus/ch/etb1",
		},
		{
			"etbon series",
			Item{Slug: "foo", Type: "series", Platforms: []string{"etbon.eus"}},
			"https://etbon.eus/s/foo",
		},
		{
			"etbon episode uses media pattern",
			Item{Slug: "foo", Type: "episode", Platforms: []string{"etbon.eus"}},
			"https://etbon.eus/m/foo",
		},
		{
			"primeran",
			Item{Slug: "bar", Type: "movie", Platforms: []string{"primeran.eus"}},
			"https://primeran.eus/m/bar",
		},
		{
			"unrecognized platform falls back to primeran",
			Item{Slug: "bar", Type: "movie", Platforms: []string{"example.org"}},
			"https://primeran.eus/m/bar",
		},
		{
			"no platforms at all",
			Item{Slug: "bar", Type: "movie"},
			"https://primeran.eus/m/bar",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContentURL(tc.item); got != tc.want {
				t.Fatalf("ContentURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestContentURLPrefersEmbeddedMap(t *testing.T) {
	item := Item{
		Slug:      "foo",
		Type:      "episode",
		Platforms: []string{"makusi.eus", "primeran.eus"},
		PlatformURLs: map[string]string{
			"makusi.eus": "https://makusi.eus/ikusi/w/foo?utm=direct",
		},
	}
	if got := ContentURL(item); got != "https://makusi.eus/ikusi/w/foo?utm=direct" {
		t.Fatalf("expected embedded URL, got %q", got)
	}

	// First platform not in the map: fall through to patterns.
	item.Platforms = []string{"primeran.eus", "makusi.eus"}
	if got := ContentURL(item); got != "https://primeran.eus/m/foo" {
		t.Fatalf("expected pattern URL, got %q", got)
	}
}
