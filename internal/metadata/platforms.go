package metadata

import (
	"strings"

	"github.com/goccy/go-json"
)

// DefaultPlatform is assumed when an item carries no usable platform value.
const DefaultPlatform = "primeran.eus"

// Platforms normalizes a stored platform value into a non-empty ordered list.
// Legacy databases hold the column as a bare string, a JSON-encoded string,
// or a JSON list; all three are accepted. An absent or unparseable value
// yields [def] (or [DefaultPlatform] when def is empty).
func Platforms(value any, def string) []string {
	if strings.TrimSpace(def) == "" {
		def = DefaultPlatform
	}

	switch v := value.(type) {
	case nil:
		return []string{def}
	case []string:
		if list := cleanList(v); len(list) > 0 {
			return list
		}
		return []string{def}
	case []any:
		var list []string
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				list = append(list, s)
			}
		}
		if list = cleanList(list); len(list) > 0 {
			return list
		}
		return []string{def}
	case string:
		return platformsFromString(v, def)
	case *string:
		if v == nil {
			return []string{def}
		}
		return platformsFromString(*v, def)
	default:
		return []string{def}
	}
}

func platformsFromString(value, def string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []string{def}
	}

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		switch p := parsed.(type) {
		case []any:
			var list []string
			for _, entry := range p {
				if s, ok := entry.(string); ok {
					list = append(list, s)
				}
			}
			if list = cleanList(list); len(list) > 0 {
				return list
			}
			return []string{def}
		case string:
			if s := strings.TrimSpace(p); s != "" {
				return []string{s}
			}
			return []string{def}
		}
	}
	// Not JSON at all: a bare platform name.
	return []string{trimmed}
}

func cleanList(values []string) []string {
	var list []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			list = append(list, s)
		}
	}
	return list
}
