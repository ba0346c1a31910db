package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// step is one parsed segment of a projection path: a field name with an
// optional single-level array index, e.g. "images[0]".
type step struct {
	field    string
	index    int
	hasIndex bool
}

// parsePath tokenizes a dot-separated path expression into steps.
func parsePath(path string) ([]step, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty path")
	}
	segments := strings.Split(path, ".")
	steps := make([]step, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("empty segment in path %q", path)
		}
		open := strings.IndexByte(segment, '[')
		if open < 0 {
			if strings.ContainsAny(segment, "[]") {
				return nil, fmt.Errorf("unbalanced brackets in segment %q", segment)
			}
			steps = append(steps, step{field: segment})
			continue
		}
		if open == 0 || !strings.HasSuffix(segment, "]") {
			return nil, fmt.Errorf("malformed segment %q", segment)
		}
		index, err := strconv.Atoi(segment[open+1 : len(segment)-1])
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid index in segment %q", segment)
		}
		steps = append(steps, step{field: segment[:open], index: index, hasIndex: true})
	}
	return steps, nil
}

// Extract resolves a path expression against a payload and returns the value
// found, or def when resolution fails at any point. The payload may be
// already-structured data (maps and slices), a JSON string, or raw bytes.
func Extract(payload any, path string, def any) any {
	doc, ok := decodePayload(payload)
	if !ok {
		return def
	}
	steps, err := parsePath(path)
	if err != nil {
		return def
	}

	current := doc
	for _, st := range steps {
		container, ok := current.(map[string]any)
		if !ok {
			return def
		}
		value, ok := container[st.field]
		if !ok || value == nil {
			return def
		}
		if st.hasIndex {
			list, ok := value.([]any)
			if !ok || st.index >= len(list) {
				return def
			}
			value = list[st.index]
			if value == nil {
				return def
			}
		}
		current = value
	}
	return current
}

// ExtractString is Extract narrowed to string results; non-string values
// yield the default.
func ExtractString(payload any, path, def string) string {
	value, ok := Extract(payload, path, nil).(string)
	if !ok {
		return def
	}
	return value
}

// decodePayload normalizes the accepted payload shapes into structured data.
func decodePayload(payload any) (any, bool) {
	switch v := payload.(type) {
	case nil:
		return nil, false
	case string:
		return unmarshalDoc([]byte(v))
	case []byte:
		return unmarshalDoc(v)
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}

func unmarshalDoc(data []byte) (any, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	if doc == nil {
		return nil, false
	}
	return doc, true
}
