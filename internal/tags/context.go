package tags

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// A Context is the environment a tag is rendered against. It is never
// mutated by tags.
type Context struct {
	Page map[string]any
	Site map[string]any
}

// Lookup resolves a dotted path such as "page.image.0.url" against the
// context. Map keys and slice indexes are both path segments. It returns nil
// when any segment is missing.
func (c Context) Lookup(path string) any {
	segments := strings.Split(path, ".")

	var cur any

	switch segments[0] {
	case "page":
		cur = c.Page
	case "site":
		cur = c.Site
	default:
		return nil
	}

	for _, seg := range segments[1:] {
		cur = step(cur, seg)
		if cur == nil {
			return nil
		}
	}

	return cur
}

// String resolves path and coerces the value to a string. Missing values
// become the empty string.
func (c Context) String(path string) string {
	v := c.Lookup(path)
	if v == nil {
		return ""
	}

	return cast.ToString(v)
}

func step(cur any, seg string) any {
	switch v := cur.(type) {
	case map[string]any:
		return v[seg]
	case map[any]any:
		return v[seg]
	case map[string]string:
		s, ok := v[seg]
		if !ok {
			return nil
		}

		return s
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(v) {
			return nil
		}

		return v[i]
	case []map[string]any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(v) {
			return nil
		}

		return v[i]
	default:
		return nil
	}
}
