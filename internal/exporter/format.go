// Package exporter serializes normalized rows back into downloadable
// tabular files. The column layout and cell formatting reproduce the legacy
// output files byte for byte: downstream shipping and accounting sheets are
// keyed to these exact headers.
package exporter

import (
	"strconv"

	"pasarcli/pkg/contracts/domain"
)

// orderHeaders is the fixed output layout of the orders pipeline. TikTok
// appends a blank ship-date column the warehouse fills in by hand.
var orderHeaders = []string{
	"No Pesanan",
	"Status Pesanan",
	"No. Resi",
	"Waktu Pesanan Dibuat",
	"Metode Pembayaran",
	"Nomor Referensi SKU",
	"Harga Setelah Diskon",
	"ONGKIR",
	"HARGA AKHIR",
	"Jumlah",
	"Kota/Kabupaten",
	"Provinsi",
	"Platform",
	"Username (Pembeli)",
	"Nama Penerima",
	"No. Telepon",
	"Alamat Pengiriman",
	"PLN/INPUT",
}

var incomeHeaders = []string{
	"No. Pesanan",
	"Tanggal Dana Dilepaskan",
	"Biaya Platform",
	"Biaya Komisi AMS",
	"Total Penghasilan",
}

// OrderHeaders returns the output column order for a marketplace.
func OrderHeaders(id domain.MarketplaceID) []string {
	if id == domain.MarketplaceTikTok {
		return append(append([]string{}, orderHeaders...), "Tgl Kirim")
	}
	return orderHeaders
}

// IncomeHeaders returns the output column order of the income pipeline.
func IncomeHeaders() []string {
	return incomeHeaders
}

// OrderCells renders one normalized order row in OrderHeaders order. The
// Shopee layout leaves the shipping column empty; TikTok carries the leaf's
// shipping fee share there.
func OrderCells(row domain.OrderRow) []string {
	shipping := ""
	if row.Marketplace == domain.MarketplaceTikTok {
		shipping = strconv.FormatInt(row.ShippingFee, 10)
	}
	cells := []string{
		row.OrderID,
		row.Status,
		row.TrackingNumber,
		row.CreatedAt,
		row.PaymentMethod,
		row.SKU,
		strconv.FormatInt(row.Price, 10),
		shipping,
		strconv.FormatInt(row.FinalPrice, 10),
		strconv.Itoa(row.Quantity),
		row.City,
		row.Province,
		row.Platform,
		row.BuyerUsername,
		row.Recipient,
		row.Phone,
		row.Address,
		row.OperatorTag,
	}
	if row.Marketplace == domain.MarketplaceTikTok {
		cells = append(cells, "")
	}
	return cells
}

// IncomeCells renders one normalized income row in IncomeHeaders order.
func IncomeCells(row domain.IncomeRow) []string {
	return []string{
		row.OrderID,
		row.SettledAt,
		strconv.FormatInt(row.PlatformFee, 10),
		strconv.FormatInt(row.AffiliateFee, 10),
		strconv.FormatInt(row.NetIncome, 10),
	}
}

// OrderSheetName returns the workbook sheet name of the orders output.
func OrderSheetName(id domain.MarketplaceID) string {
	if id == domain.MarketplaceTikTok {
		return "Tiktok_Orders_Clean"
	}
	return "Orders"
}

// IncomeSheetName returns the workbook sheet name of the income output.
func IncomeSheetName() string {
	return "Income"
}
