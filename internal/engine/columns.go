package engine

import (
	"strings"

	"pasarcli/pkg/contracts/domain"
)

// FieldSpec declares one canonical, marketplace-independent field and the
// literal header spellings that may carry it in an export. Aliases are tried
// in order; the first one present in the representative row wins. Label is
// the human-facing name used in missing-column messages; it defaults to the
// first alias so operators see the header they expect in the source file.
type FieldSpec struct {
	Name     string
	Label    string
	Aliases  []string
	Required bool
}

func (f FieldSpec) displayName() string {
	if f.Label != "" {
		return f.Label
	}
	if len(f.Aliases) > 0 {
		return f.Aliases[0]
	}
	return f.Name
}

// ColumnMap is the per-batch resolution of canonical field names to the
// literal headers of this particular export. It is resolved once against the
// batch's first row and applied uniformly to every row; headers are not
// re-resolved per row.
type ColumnMap map[string]string

// ResolveColumns maps each field to the first alias present as a key of the
// representative record. With fold set, header matching is case-insensitive
// on trimmed text (for exports whose header spelling drifts); without it the
// header scheme is fixed and aliases must match exactly. If any required
// field has no matching alias the batch fails with every missing field name
// listed, not just the first.
func ResolveColumns(rep domain.RawRecord, fields []FieldSpec, fold bool) (ColumnMap, error) {
	cols := make(ColumnMap, len(fields))
	var missing []string

	var keys []string
	if fold {
		keys = make([]string, 0, len(rep))
		for k := range rep {
			keys = append(keys, k)
		}
	}

	for _, f := range fields {
		header, ok := findHeader(rep, keys, f.Aliases, fold)
		if ok {
			cols[f.Name] = header
		} else if f.Required {
			missing = append(missing, f.displayName())
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Fields: missing}
	}
	return cols, nil
}

func findHeader(rep domain.RawRecord, keys []string, aliases []string, fold bool) (string, bool) {
	for _, alias := range aliases {
		if !fold {
			if rep.Has(alias) {
				return alias, true
			}
			continue
		}
		want := strings.ToLower(strings.TrimSpace(alias))
		for _, k := range keys {
			if strings.ToLower(strings.TrimSpace(k)) == want {
				return k, true
			}
		}
	}
	return "", false
}

// Lookup returns the raw cell value of a canonical field for the given row,
// or nil when the field resolved to no header (optional fields).
func (c ColumnMap) Lookup(row domain.RawRecord, field string) any {
	header, ok := c[field]
	if !ok {
		return nil
	}
	return row.Value(header)
}

// Text returns the cell value of a canonical field rendered as a string,
// with nil cells becoming "".
func (c ColumnMap) Text(row domain.RawRecord, field string) string {
	return cellText(c.Lookup(row, field))
}
