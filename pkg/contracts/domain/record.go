package domain

// RawRecord is one spreadsheet data row, keyed by the literal column header
// text of the export it came from. Values are whatever the reader yielded for
// the cell: string, a numeric type, or nil for an empty cell. Records are
// never mutated once built.
type RawRecord map[string]any

// Has reports whether the record carries the given literal header.
func (r RawRecord) Has(header string) bool {
	_, ok := r[header]
	return ok
}

// Value returns the cell under the given literal header, or nil when the
// header is absent.
func (r RawRecord) Value(header string) any {
	return r[header]
}
