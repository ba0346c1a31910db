package metadata

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	payload := map[string]any{
		"description": "film luzea",
		"images": []any{
			map[string]any{"file": "a.jpg"},
			map[string]any{"file": "b.jpg"},
		},
		"age_rating": map[string]any{"label": "12", "age": float64(12)},
		"empty":      nil,
	}

	tests := []struct {
		name string
		path string
		def  any
		want any
	}{
		{"scalar", "description", nil, "film luzea"},
		{"indexed nested", "images[0].file", nil, "a.jpg"},
		{"second index", "images[1].file", nil, "b.jpg"},
		{"nested map", "age_rating.label", nil, "12"},
		{"out of range", "images[5].file", nil, nil},
		{"missing key", "producer", "unknown", "unknown"},
		{"null value", "empty", "fallback", "fallback"},
		{"non-container intermediate", "description.more", nil, nil},
		{"index on non-array", "description[0]", nil, nil},
		{"negative index", "images[-1].file", nil, nil},
		{"malformed segment", "images[x].file", nil, nil},
		{"empty path", "", "def", "def"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(payload, tc.path, tc.def)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestExtractPayloadShapes(t *testing.T) {
	jsonText := `{"images":[{"file":"a.jpg"}]}`

	if got := Extract(jsonText, "images[0].file", nil); got != "a.jpg" {
		t.Fatalf("string payload: got %v", got)
	}
	if got := Extract([]byte(jsonText), "images[0].file", nil); got != "a.jpg" {
		t.Fatalf("byte payload: got %v", got)
	}
	if got := Extract("{broken", "images[0].file", "def"); got != "def" {
		t.Fatalf("malformed payload: got %v", got)
	}
	if got := Extract(nil, "images[0].file", "def"); got != "def" {
		t.Fatalf("nil payload: got %v", got)
	}
	if got := Extract("", "images[0].file", "def"); got != "def" {
		t.Fatalf("empty payload: got %v", got)
	}
	if got := Extract(42, "images[0].file", "def"); got != "def" {
		t.Fatalf("scalar payload: got %v", got)
	}
}

func TestExtractString(t *testing.T) {
	payload := `{"media_type":"vod","duration":3600}`

	if got := ExtractString(payload, "media_type", ""); got != "vod" {
		t.Fatalf("got %q", got)
	}
	// Non-string values fall back to the default.
	if got := ExtractString(payload, "duration", "none"); got != "none" {
		t.Fatalf("got %q", got)
	}
}
