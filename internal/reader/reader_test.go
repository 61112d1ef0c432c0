package reader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	require.NoError(t, wb.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadCSV(t *testing.T) {
	csv := "\ufeffNo. Pesanan,Status Pesanan,Jumlah\n" +
		"ORD-1,Perlu Dikirim,2\n" +
		",,\n" + // fully blank row is skipped
		"ORD-2,Batal,1\n"

	r := New(nil)
	records, err := r.Read(strings.NewReader(csv), "orders.csv", ShopeeOrders())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// BOM must not leak into the first header.
	assert.Equal(t, "ORD-1", records[0].Value("No. Pesanan"))
	assert.Equal(t, "Perlu Dikirim", records[0].Value("Status Pesanan"))
	assert.Equal(t, "1", records[1].Value("Jumlah"))
}

func TestReadExcelFirstSheet(t *testing.T) {
	buf := workbookBytes(t, "orders", [][]any{
		{"No. Pesanan", "Nomor Referensi SKU", "Harga Setelah Diskon"},
		{"ORD-1", "A + B", "Rp94.500"},
	})

	r := New(nil)
	records, err := r.Read(buf, "orders.xlsx", ShopeeOrders())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A + B", records[0].Value("Nomor Referensi SKU"))
}

func TestReadExcelIncomeHeaderOnRowSix(t *testing.T) {
	buf := workbookBytes(t, "Income", [][]any{
		{"Laporan Penghasilan"},
		{"Periode: Juni 2024"},
		{},
		{},
		{},
		{"No. Pesanan", "Tanggal Dana Dilepaskan", "Total Penghasilan", "Biaya Komisi AMS"},
		{"ORD-1", "2024-06-10", "90.000", "-500"},
		{"ORD-2", "2024-06-11", "45.000", "0"},
	})

	r := New(nil)
	records, err := r.Read(buf, "income.xlsx", ShopeeIncome())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "90.000", records[0].Value("Total Penghasilan"))
	assert.Equal(t, "ORD-2", records[1].Value("No. Pesanan"))
}

func TestReadExcelHeaderRowMissing(t *testing.T) {
	buf := workbookBytes(t, "Income", [][]any{
		{"Laporan Penghasilan"},
	})

	r := New(nil)
	_, err := r.Read(buf, "income.xlsx", ShopeeIncome())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baris ke-6")
}

func TestReadExcelBlankHeadersGetPositionalNames(t *testing.T) {
	buf := workbookBytes(t, "orders", [][]any{
		{"", "", "", ""},
		{"TT-1", "To ship", "x", "y"},
	})

	r := New(nil)
	records, err := r.Read(buf, "tiktok.xlsx", TikTokOrders())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "TT-1", records[0].Value("__EMPTY"))
	assert.Equal(t, "To ship", records[0].Value("__EMPTY_1"))
	assert.Equal(t, "y", records[0].Value("__EMPTY_3"))
}

func TestPickSheet(t *testing.T) {
	tests := []struct {
		name      string
		sheets    []string
		preferred []string
		want      string
	}{
		{name: "exact preference", sheets: []string{"Summary", "Income"}, preferred: []string{"Income"}, want: "Income"},
		{name: "case-insensitive preference", sheets: []string{"order details", "Other"}, preferred: []string{"Order details"}, want: "order details"},
		{name: "fallback to first sheet", sheets: []string{"Sheet1", "Sheet2"}, preferred: []string{"Income"}, want: "Sheet1"},
		{name: "no preference", sheets: []string{"Data"}, want: "Data"},
		{name: "empty workbook", sheets: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickSheet(tt.sheets, tt.preferred))
		})
	}
}
