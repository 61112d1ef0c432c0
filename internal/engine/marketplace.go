package engine

import "pasarcli/pkg/contracts/domain"

// Canonical field names shared by both pipelines. Marketplace adapters bind
// them to the literal headers of their exports.
const (
	FieldOrderID       = "order_id"
	FieldStatus        = "status"
	FieldTracking      = "tracking_number"
	FieldCreatedAt     = "created_at"
	FieldPaymentMethod = "payment_method"
	FieldSKU           = "sku"
	FieldPrice         = "price"
	FieldQuantity      = "quantity"
	FieldCity          = "city"
	FieldProvince      = "province"
	FieldBuyer         = "buyer_username"
	FieldRecipient     = "recipient"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldVoucher       = "voucher"
	FieldShippingFee   = "shipping_fee"
	FieldCancelReason  = "cancel_reason"

	FieldSettledAt    = "settled_at"
	FieldNetIncome    = "net_income"
	FieldTotalFees    = "total_fees"
	FieldAffiliateFee = "affiliate_fee"
)

// OrderSpec is the orders-pipeline half of a marketplace adapter.
type OrderSpec struct {
	Fields       []FieldSpec
	FoldHeaders  bool
	Cancellation CancellationRule

	// PoolField names the per-order amount tracked as the maximum across the
	// order's rows (seller voucher on Shopee, shipping fee on TikTok) and
	// then split across the order's leaf items.
	PoolField string

	// PoolToShipping attaches each leaf's pool share to the shipping fee
	// column and leaves the price as the final price. Without it the share
	// is deducted: final = price share × quantity − pool share.
	PoolToShipping bool

	// SuppressedPlatforms keep their bare label when the brand resolves to
	// the table's fallback brand.
	SuppressedPlatforms []string
}

// IncomeSpec is the settlement-pipeline half of a marketplace adapter.
type IncomeSpec struct {
	Fields      []FieldSpec
	FoldHeaders bool

	// FeeColumns are literal fee-category headers whose absolute values sum
	// into the platform fee. Absent columns contribute zero.
	FeeColumns []string

	// AffiliateFields name optional canonical fields whose absolute values
	// sum into the affiliate fee. When empty, the affiliate fee is the
	// absolute value of the FieldAffiliateFee column instead.
	AffiliateFields []string

	// DerivePlatformFee computes the platform fee as
	// |total fees − affiliate fee| instead of summing FeeColumns.
	DerivePlatformFee bool

	// AbsoluteNet normalizes the settlement amount by absolute value. The
	// Shopee statement keeps the sign; whether TikTok adjustments should is
	// unresolved upstream, so the legacy absolute-value rule is kept as is.
	AbsoluteNet bool
}

// Marketplace bundles everything platform-specific the generic engine needs:
// column aliases, cancellation keywords, brand suffix suppression and fee
// column lists. Adapters are plain values so tests can substitute fixtures.
type Marketplace struct {
	ID     domain.MarketplaceID
	Orders OrderSpec
	Income IncomeSpec
}

// Shopee returns the adapter for Shopee order and income ("Dana
// Dilepaskan") exports. The order export headers are fixed, so aliases match
// exactly.
func Shopee() Marketplace {
	return Marketplace{
		ID: domain.MarketplaceShopee,
		Orders: OrderSpec{
			Fields: []FieldSpec{
				{Name: FieldOrderID, Aliases: []string{"No. Pesanan"}, Required: true},
				{Name: FieldStatus, Aliases: []string{"Status Pesanan"}, Required: true},
				{Name: FieldTracking, Aliases: []string{"No. Resi"}, Required: true},
				{Name: FieldCreatedAt, Aliases: []string{"Waktu Pesanan Dibuat"}, Required: true},
				{Name: FieldSKU, Aliases: []string{"Nomor Referensi SKU"}, Required: true},
				{Name: FieldPrice, Aliases: []string{"Harga Setelah Diskon"}, Required: true},
				{Name: FieldQuantity, Aliases: []string{"Jumlah"}, Required: true},
				{Name: FieldCity, Aliases: []string{"Kota/Kabupaten"}, Required: true},
				{Name: FieldProvince, Aliases: []string{"Provinsi"}, Required: true},
				{Name: FieldBuyer, Aliases: []string{"Username (Pembeli)"}, Required: true},
				{Name: FieldRecipient, Aliases: []string{"Nama Penerima"}, Required: true},
				{Name: FieldPhone, Aliases: []string{"No. Telepon"}, Required: true},
				{Name: FieldAddress, Aliases: []string{"Alamat Pengiriman"}, Required: true},
				{Name: FieldVoucher, Aliases: []string{"Voucher Ditanggung Penjual"}},
				{Name: FieldCancelReason, Aliases: []string{"Status Pembatalan/Pengembalian"}},
			},
			Cancellation: CancellationRule{
				Keywords:    []string{"batal", "dibatalkan"},
				ReasonField: FieldCancelReason,
			},
			PoolField: FieldVoucher,
			SuppressedPlatforms: []string{
				"MP SHOPEE YUNI",
				"MP SHOPEE DITA",
				"MP SHOPEE TRINDA",
				"MP SHOPEE DILLA",
				"MP SHOPEE ZANEVA",
			},
		},
		Income: IncomeSpec{
			Fields: []FieldSpec{
				{Name: FieldOrderID, Label: "No. Pesanan", Aliases: []string{"No. Pesanan", "No Pesanan"}, Required: true},
				{Name: FieldSettledAt, Label: "Tanggal Dana Dilepaskan", Aliases: []string{"Tanggal Dana Dilepaskan", "Tanggal Dana", "Tanggal Pelepasan Dana"}, Required: true},
				{Name: FieldNetIncome, Label: "Total Penghasilan", Aliases: []string{"Total Penghasilan", "Total Penghasilan (Rp)"}, Required: true},
				{Name: FieldAffiliateFee, Label: "Biaya Komisi AMS", Aliases: []string{"Biaya Komisi AMS", "Komisi AMS", "AMS"}, Required: true},
			},
			FeeColumns: []string{
				"Ongkos Kirim Pengembalian Barang",
				"Kembali ke Biaya Pengiriman Pengirim",
				"Pengembalian Biaya Kirim",
				"Biaya Administrasi (termasuk PPN 11%)",
				"Biaya Layanan",
				"Biaya Proses Pesanan",
				"Premi",
				"Biaya Program Hemat Biaya Kirim",
				"Biaya Transaksi",
				"Biaya Kampanye",
				"Bea Masuk, PPN & PPh",
				"Biaya Isi Saldo Otomatis (dari Penghasilan)",
			},
		},
	}
}

// TikTok returns the adapter for TikTok Shop order and settlement exports.
// Order exports sometimes arrive with a blank header row, so every field
// carries the positional "__EMPTY_n" alias the raw sheet yields alongside
// the named header.
func TikTok() Marketplace {
	return Marketplace{
		ID: domain.MarketplaceTikTok,
		Orders: OrderSpec{
			Fields: []FieldSpec{
				{Name: FieldOrderID, Aliases: []string{"Order ID", "__EMPTY"}, Required: true},
				{Name: FieldStatus, Aliases: []string{"Order Status", "__EMPTY_1"}, Required: true},
				{Name: FieldSKU, Aliases: []string{"Seller SKU", "__EMPTY_6"}, Required: true},
				{Name: FieldQuantity, Aliases: []string{"Quantity", "__EMPTY_9"}, Required: true},
				{Name: FieldPrice, Aliases: []string{"SKU Subtotal After Discount", "__EMPTY_15"}, Required: true},
				{Name: FieldShippingFee, Aliases: []string{"Shipping Fee After Discount", "__EMPTY_16"}},
				{Name: FieldCreatedAt, Aliases: []string{"Created Time", "__EMPTY_29"}},
				{Name: FieldTracking, Aliases: []string{"Tracking ID", "__EMPTY_39"}},
				{Name: FieldBuyer, Aliases: []string{"Buyer Username", "__EMPTY_43"}},
				{Name: FieldRecipient, Aliases: []string{"Recipient", "__EMPTY_44"}},
				{Name: FieldPhone, Aliases: []string{"Phone #", "__EMPTY_45"}},
				{Name: FieldProvince, Aliases: []string{"Province", "__EMPTY_48"}},
				{Name: FieldCity, Aliases: []string{"Regency and City", "__EMPTY_49"}},
				{Name: FieldAddress, Aliases: []string{"Detail Address", "__EMPTY_75"}},
				{Name: FieldPaymentMethod, Aliases: []string{"Payment Method", "__EMPTY_77"}},
			},
			Cancellation: CancellationRule{
				Keywords: []string{"batal", "dibatalkan", "cancel", "cancelled", "refund", "returned"},
			},
			PoolField:           FieldShippingFee,
			PoolToShipping:      true,
			SuppressedPlatforms: []string{"MP TIKTOK"},
		},
		Income: IncomeSpec{
			FoldHeaders: true,
			Fields: []FieldSpec{
				{Name: FieldOrderID, Label: "Order/adjustment ID", Aliases: []string{"Order/adjustment ID", "Order ID", "Adjustment ID", "Order / Adjustment ID"}, Required: true},
				{Name: FieldSettledAt, Label: "Order settled time", Aliases: []string{"Order settled time", "Settled time", "Settlement time", "Order Settled Time"}, Required: true},
				{Name: FieldTotalFees, Label: "Total Fees", Aliases: []string{"Total Fees", "Total fees", "Total Fee"}, Required: true},
				{Name: FieldNetIncome, Label: "Total settlement amount", Aliases: []string{"Total settlement amount", "Settlement amount", "Total Settlement Amount", "Settlement Amount"}, Required: true},
				{Name: "affiliate_commission", Aliases: []string{"Affiliate Commission"}},
				{Name: "affiliate_partner_commission", Aliases: []string{"Affiliate partner commission"}},
				{Name: "affiliate_shop_ads_commission", Aliases: []string{"Affiliate Shop Ads commission"}},
				{Name: "affiliate_partner_shop_ads_commission", Aliases: []string{"Affiliate Partner shop ads commission"}},
			},
			AffiliateFields: []string{
				"affiliate_commission",
				"affiliate_partner_commission",
				"affiliate_shop_ads_commission",
				"affiliate_partner_shop_ads_commission",
			},
			DerivePlatformFee: true,
			AbsoluteNet:       true,
		},
	}
}

// ByID returns the adapter for a marketplace identifier.
func ByID(id domain.MarketplaceID) (Marketplace, bool) {
	switch id {
	case domain.MarketplaceShopee:
		return Shopee(), true
	case domain.MarketplaceTikTok:
		return TikTok(), true
	default:
		return Marketplace{}, false
	}
}
