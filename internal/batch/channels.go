package batch

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChannelList expands a channel specification into an ordered list of
// channel numbers. The specification may be a single number, a list of
// numbers, or a string of comma-separated values and "a-b" ranges, e.g.
// "1-3,8". A nil specification yields an empty list.
func ParseChannelList(v any) ([]int, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case int:
		return []int{t}, nil
	case string:
		return parseRanges(t)
	case []any:
		var out []int
		for _, e := range t {
			channels, err := ParseChannelList(e)
			if err != nil {
				return nil, err
			}
			out = append(out, channels...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("channels must be a number, a list, or a range string, got %T", v)
	}
}

func parseRanges(s string) ([]int, error) {
	var out []int
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(token, "-")
		if !isRange {
			ch, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("invalid channel %q", token)
			}
			out = append(out, ch)
			continue
		}
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid channel range %q", token)
		}
		last, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil || last < first {
			return nil, fmt.Errorf("invalid channel range %q", token)
		}
		for ch := first; ch <= last; ch++ {
			out = append(out, ch)
		}
	}
	return out, nil
}
