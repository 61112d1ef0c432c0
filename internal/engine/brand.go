package engine

import (
	"fmt"
	"strings"

	"pasarcli/pkg/contracts/domain"
)

// DefaultBrand is the sentinel returned for SKUs that have no entry in the
// brand table. It is the house brand of the shop the exports come from.
const DefaultBrand = "ZANEVA"

// BrandTable resolves product SKUs to brands. Lookup keys and stored brands
// are normalized on construction; the table is read-only afterwards and safe
// for concurrent use.
type BrandTable struct {
	byKey    map[string]string
	fallback string
}

// NewBrandTable builds a table from externally supplied mappings. Keys are
// trimmed and lower-cased, brands trimmed and upper-cased. An empty fallback
// selects DefaultBrand.
func NewBrandTable(mappings []domain.BrandMapping, fallback string) *BrandTable {
	if fallback == "" {
		fallback = DefaultBrand
	}
	byKey := make(map[string]string, len(mappings))
	for _, m := range mappings {
		key := strings.ToLower(strings.TrimSpace(m.ProductName))
		if key == "" {
			continue
		}
		byKey[key] = strings.ToUpper(strings.TrimSpace(m.Brand))
	}
	return &BrandTable{byKey: byKey, fallback: fallback}
}

// BrandOf resolves a SKU to its brand, defaulting to the table's fallback
// brand when no entry matches.
func (t *BrandTable) BrandOf(sku string) string {
	if b, ok := t.byKey[strings.ToLower(strings.TrimSpace(sku))]; ok {
		return b
	}
	return t.fallback
}

// Len returns the number of entries in the table.
func (t *BrandTable) Len() int {
	return len(t.byKey)
}

// FormatPlatform attaches the resolved brand to the operator-selected
// platform label. Platforms in the suppressed list keep their bare name when
// the brand resolves to the table's fallback; every other combination gets
// the brand appended in parentheses.
func FormatPlatform(platform, sku string, brands *BrandTable, suppressed []string) string {
	brand := brands.BrandOf(sku)
	if brand == brands.fallback {
		for _, p := range suppressed {
			if p == platform {
				return platform
			}
		}
	}
	return fmt.Sprintf("%s (%s)", platform, brand)
}
