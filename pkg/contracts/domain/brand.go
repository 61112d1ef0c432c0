package domain

// BrandMapping is one entry of the externally supplied product-to-brand
// table. ProductName is matched against SKU strings after trimming and
// lower-casing both sides.
type BrandMapping struct {
	ProductName string `json:"nama_barang" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
}
