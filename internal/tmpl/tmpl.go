// Package tmpl fills {name} placeholders in nested configuration structures.
package tmpl

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/vk/eva/internal/config"
)

// Fill returns a deep copy of v with every {name} placeholder in string
// values replaced from vars. Placeholders with no matching key are left
// untouched. Mappings, sequences and scalars are handled recursively; the
// input is never mutated.
func Fill(v any, vars map[string]string) any {
	switch t := v.(type) {
	case string:
		return fillString(t, vars)
	case *config.Config:
		pairs := make([]config.Pair, 0, t.Len())
		for _, key := range t.Keys() {
			val, _ := t.Get(key)
			pairs = append(pairs, config.Pair{Key: key, Value: Fill(val, vars)})
		}
		return config.FromPairs(pairs)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Fill(e, vars)
		}
		return out
	default:
		return t
	}
}

// FillConfig is Fill specialized to a configuration mapping.
func FillConfig(c *config.Config, vars map[string]string) *config.Config {
	return Fill(c, vars).(*config.Config)
}

// FillList is Fill specialized to a configuration sequence.
func FillList(l []any, vars map[string]string) []any {
	return Fill(l, vars).([]any)
}

func fillString(s string, vars map[string]string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	return fasttemplate.ExecuteFuncString(s, "{", "}", func(w io.Writer, tag string) (int, error) {
		if val, ok := vars[tag]; ok {
			return io.WriteString(w, val)
		}
		return io.WriteString(w, "{"+tag+"}")
	})
}
