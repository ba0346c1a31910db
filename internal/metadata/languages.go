package metadata

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Languages extracts the ordered set of language codes available for an item.
// Audio-track codes win; subtitle-track codes are the fallback when no audio
// languages are present. The result is deduplicated, canonicalized, and
// sorted ascending.
func Languages(payload any) []string {
	doc, ok := decodePayload(payload)
	if !ok {
		return []string{}
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return []string{}
	}

	var codes []string
	if audios, ok := root["audios"].([]any); ok {
		for _, entry := range audios {
			audio, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if code, ok := audio["code"].(string); ok && code != "" {
				codes = append(codes, code)
			}
		}
	}

	if len(codes) == 0 {
		if subtitles, ok := root["subtitle"].([]any); ok {
			for _, entry := range subtitles {
				sub, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				lang, ok := sub["language"].(map[string]any)
				if !ok {
					continue
				}
				if code, ok := lang["code"].(string); ok && code != "" {
					codes = append(codes, code)
				}
			}
		}
	}

	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		canonical := canonicalCode(code)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		result = append(result, canonical)
	}
	sort.Strings(result)
	return result
}

// canonicalCode normalizes a language code through BCP 47 parsing so casing
// variants ("EU", "eu") collapse to one entry. Unrecognized codes pass
// through lowercased rather than being dropped.
func canonicalCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	if tag, err := language.Parse(trimmed); err == nil {
		return tag.String()
	}
	return strings.ToLower(trimmed)
}
