package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pasarcli/pkg/contracts/domain"
)

func testBrandTable() *BrandTable {
	return NewBrandTable([]domain.BrandMapping{
		{ProductName: "  Gamis Oberbe Premium ", Brand: "oberbe"},
		{ProductName: "HIJAB-01", Brand: "Besyari"},
	}, "")
}

func TestBrandTableLookup(t *testing.T) {
	brands := testBrandTable()

	tests := []struct {
		name string
		sku  string
		want string
	}{
		{name: "exact key", sku: "HIJAB-01", want: "BESYARI"},
		{name: "lookup is case-insensitive", sku: "hijab-01", want: "BESYARI"},
		{name: "lookup trims", sku: "  gamis oberbe premium ", want: "OBERBE"},
		{name: "unmapped sku falls back", sku: "SKU-UNKNOWN", want: "ZANEVA"},
		{name: "empty sku falls back", sku: "", want: "ZANEVA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, brands.BrandOf(tt.sku))
		})
	}

	assert.Equal(t, 2, brands.Len())
}

func TestFormatPlatform(t *testing.T) {
	brands := testBrandTable()
	shopee := Shopee().Orders.SuppressedPlatforms
	tiktok := TikTok().Orders.SuppressedPlatforms

	tests := []struct {
		name       string
		platform   string
		sku        string
		suppressed []string
		want       string
	}{
		{
			name:       "suppressed platform keeps bare label for fallback brand",
			platform:   "MP SHOPEE ZANEVA",
			sku:        "SKU-UNKNOWN",
			suppressed: shopee,
			want:       "MP SHOPEE ZANEVA",
		},
		{
			name:       "unlisted platform gets fallback brand suffix",
			platform:   "MP SHOPEE OBERBE",
			sku:        "SKU-UNKNOWN",
			suppressed: shopee,
			want:       "MP SHOPEE OBERBE (ZANEVA)",
		},
		{
			name:       "suppressed platform still gets mapped brand suffix",
			platform:   "MP SHOPEE YUNI",
			sku:        "HIJAB-01",
			suppressed: shopee,
			want:       "MP SHOPEE YUNI (BESYARI)",
		},
		{
			name:       "tiktok bare platform suppressed",
			platform:   "MP TIKTOK",
			sku:        "SKU-UNKNOWN",
			suppressed: tiktok,
			want:       "MP TIKTOK",
		},
		{
			name:       "tiktok named platform keeps suffix",
			platform:   "MP TIKTOK OBERBE",
			sku:        "SKU-UNKNOWN",
			suppressed: tiktok,
			want:       "MP TIKTOK OBERBE (ZANEVA)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPlatform(tt.platform, tt.sku, brands, tt.suppressed))
		})
	}
}
