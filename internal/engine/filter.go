package engine

import "strings"

// CancellationRule classifies an order row as active or cancelled/returned.
type CancellationRule struct {
	// Keywords are matched as substrings of the lower-cased status value.
	Keywords []string
	// ReasonField names an optional canonical field; a non-empty value there
	// cancels the row regardless of status (Shopee carries a separate
	// "Status Pembatalan/Pengembalian" column).
	ReasonField string
}

// Cancelled reports whether a row with the given status and cancellation
// reason is inactive and must be excluded from the orders pipeline.
func (r CancellationRule) Cancelled(status, reason string) bool {
	s := strings.ToLower(status)
	for _, kw := range r.Keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return r.ReasonField != "" && strings.TrimSpace(reason) != ""
}
