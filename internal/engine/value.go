package engine

import (
	"fmt"
	"strconv"
)

// cellText renders a raw cell value for passthrough into output rows. Empty
// cells become "". Numeric cells are rendered in plain notation so order ids
// and phone numbers never come out in scientific form.
func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
