package engine

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// ParseRupiah converts a raw cell value into whole rupiah. It accepts the
// Indonesian export formats: "Rp94.500" and "94.500" both mean 94500 (dot is
// a thousands separator), and everything from the first comma onward is a
// decimal fraction that rupiah amounts do not carry, so it is discarded
// rather than rounded. Values that are already numeric are rounded to the
// nearest integer. Anything unparsable degrades to 0; ParseRupiah never
// fails a batch.
func ParseRupiah(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(math.Round(v))
	case float32:
		return int64(math.Round(float64(v)))
	case string:
		return parseRupiahText(v)
	default:
		return parseRupiahText(fmt.Sprint(v))
	}
}

func parseRupiahText(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Strip the currency prefix (with or without its trailing dot) and all
	// whitespace, then the thousands-separator dots.
	s = strings.ReplaceAll(s, "Rp.", "")
	s = strings.ReplaceAll(s, "Rp", "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ".", "")

	// Truncate the decimal fraction.
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}

	return leadingInt(s)
}

// leadingInt parses an optional sign followed by a run of leading digits,
// ignoring trailing garbage. No digits, or overflow, yields 0.
func leadingInt(s string) int64 {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	start := i
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0
		}
		n = n*10 + d
	}
	if i == start {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// ParseQuantity reads an item quantity from a cell. Quantities that are
// missing or unparsable default to 1 so an order line always counts at least
// one unit. Unlike ParseRupiah it does not strip separators: "1.5" is one
// unit, not fifteen.
func ParseQuantity(value any) int {
	var n int64
	switch v := value.(type) {
	case nil:
		n = 0
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		n = int64(v)
	case string:
		n = leadingInt(strings.TrimSpace(v))
	default:
		n = leadingInt(strings.TrimSpace(fmt.Sprint(v)))
	}
	if n <= 0 {
		return 1
	}
	return int(n)
}
