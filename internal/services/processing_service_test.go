package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pasarcli/internal/brandstore"
	"pasarcli/internal/engine"
	"pasarcli/internal/observability"
	"pasarcli/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func csvFile(name, content string) InputFile {
	return InputFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

const shopeeOrderHeader = `"No. Pesanan","Status Pesanan","No. Resi","Waktu Pesanan Dibuat","Nomor Referensi SKU","Harga Setelah Diskon","Jumlah","Kota/Kabupaten","Provinsi","Username (Pembeli)","Nama Penerima","No. Telepon","Alamat Pengiriman","Voucher Ditanggung Penjual","Status Pembatalan/Pengembalian"`

func shopeeOrderLine(id, status, sku, price, qty, voucher, cancelReason string) string {
	return fmt.Sprintf(`"%s","%s","JX1","2024-06-15 10:00","%s","%s","%s","Surabaya","Jawa Timur","buyer","Budi","0812","Jl. Mawar 1","%s","%s"`,
		id, status, sku, price, qty, voucher, cancelReason)
}

func TestProcessOrdersShopee(t *testing.T) {
	svc := NewProcessingService(discardLogger(), nil, nil, nil)

	fileA := csvFile("orders-a.csv", strings.Join([]string{
		shopeeOrderHeader,
		shopeeOrderLine("ORD-1", "Selesai", "KWH-01", "Rp50.000", "1", "Rp10.000", ""),
		shopeeOrderLine("ORD-1", "Selesai", "TOKEN-20", "Rp30.000", "2", "Rp10.000", ""),
	}, "\n"))
	fileB := csvFile("orders-b.csv", strings.Join([]string{
		shopeeOrderHeader,
		shopeeOrderLine("ORD-2", "Dibatalkan", "KWH-01", "Rp20.000", "1", "0", ""),
		shopeeOrderLine("ORD-3", "Selesai", "TOKEN-50", "Rp25.000", "1", "0", ""),
	}, "\n"))

	result, err := svc.ProcessOrders(context.Background(), OrderRequest{
		Marketplace: domain.MarketplaceShopee,
		Platform:    "MP SHOPEE YUNI",
		Operator:    "PLN",
	}, []InputFile{fileA, fileB})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.InputRows)
	assert.Equal(t, 1, result.Stats.DeletedRows)
	assert.Equal(t, 2, result.Stats.TotalOrders)
	assert.Equal(t, 3, result.Stats.OutputRows)
	require.Len(t, result.Rows, 3)

	// Orders come out in first-seen order across files.
	assert.Equal(t, "ORD-1", result.Rows[0].OrderID)
	assert.Equal(t, "ORD-3", result.Rows[2].OrderID)
	assert.Equal(t, "PLN", result.Rows[0].OperatorTag)
	assert.Equal(t, "MP SHOPEE YUNI", result.Rows[0].Platform)

	// Voucher is split across the order's rows and deducted.
	var final int64
	for _, row := range result.Rows[:2] {
		final += row.FinalPrice
	}
	assert.Equal(t, int64(50000*1+30000*2-10000), final)
}

func TestProcessOrdersUsesBrandTable(t *testing.T) {
	brands := brandstore.New(discardLogger(), "")
	require.NoError(t, brands.Replace(context.Background(), []domain.BrandMapping{
		{ProductName: "KWH-01", Brand: "OBERBE"},
	}))

	svc := NewProcessingService(discardLogger(), brands, nil, nil)

	file := csvFile("orders.csv", strings.Join([]string{
		shopeeOrderHeader,
		shopeeOrderLine("ORD-1", "Selesai", "KWH-01", "Rp50.000", "1", "0", ""),
	}, "\n"))

	result, err := svc.ProcessOrders(context.Background(), OrderRequest{
		Marketplace: domain.MarketplaceShopee,
		Platform:    "MP SHOPEE YUNI",
		Operator:    "PLN",
	}, []InputFile{file})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "MP SHOPEE YUNI (OBERBE)", result.Rows[0].Platform)
}

func TestProcessOrdersUnknownMarketplace(t *testing.T) {
	svc := NewProcessingService(discardLogger(), nil, nil, nil)

	_, err := svc.ProcessOrders(context.Background(), OrderRequest{Marketplace: "tokopedia"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestProcessOrdersEmptyBatch(t *testing.T) {
	svc := NewProcessingService(discardLogger(), nil, nil, nil)

	file := csvFile("empty.csv", shopeeOrderHeader)
	_, err := svc.ProcessOrders(context.Background(), OrderRequest{
		Marketplace: domain.MarketplaceShopee,
		Platform:    "MP SHOPEE YUNI",
		Operator:    "PLN",
	}, []InputFile{file})
	assert.ErrorIs(t, err, engine.ErrEmptyBatch)
}

func TestProcessOrdersFileOpenError(t *testing.T) {
	svc := NewProcessingService(discardLogger(), nil, nil, nil)

	broken := InputFile{
		Name: "broken.csv",
		Open: func() (io.ReadCloser, error) {
			return nil, fmt.Errorf("disk gone")
		},
	}
	_, err := svc.ProcessOrders(context.Background(), OrderRequest{
		Marketplace: domain.MarketplaceShopee,
		Platform:    "MP SHOPEE YUNI",
		Operator:    "PLN",
	}, []InputFile{broken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.csv")
}

func shopeeIncomeFile(t *testing.T) InputFile {
	t.Helper()
	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetName("Sheet1", "Income"))

	// The statement carries five banner rows before the header.
	header := []any{"No. Pesanan", "Tanggal Dana Dilepaskan", "Total Penghasilan", "Biaya Komisi AMS", "Biaya Layanan"}
	require.NoError(t, wb.SetSheetRow("Income", "A6", &header))
	row1 := []any{"ORD-1", "2024-06-20", "94500", "-1000", "-2500"}
	require.NoError(t, wb.SetSheetRow("Income", "A7", &row1))

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	data := buf.Bytes()

	return InputFile{
		Name: "income.xlsx",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func TestProcessIncomeShopee(t *testing.T) {
	svc := NewProcessingService(discardLogger(), nil, nil, nil)

	result, err := svc.ProcessIncome(context.Background(), domain.MarketplaceShopee, []InputFile{shopeeIncomeFile(t)})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "ORD-1", row.OrderID)
	assert.Equal(t, "2024-06-20", row.SettledAt)
	assert.Equal(t, int64(94500), row.NetIncome)
	assert.Equal(t, int64(1000), row.AffiliateFee)
	assert.Equal(t, int64(2500), row.PlatformFee)
}

func TestProcessIncomeUnknownMarketplace(t *testing.T) {
	svc := NewProcessingService(discardLogger(), nil, nil, nil)
	_, err := svc.ProcessIncome(context.Background(), "bukalapak", nil)
	require.Error(t, err)
}

func TestProcessOrdersRecordsUploadMetrics(t *testing.T) {
	providers, err := observability.Initialize(discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { providers.Shutdown(context.Background()) })

	svc := NewProcessingService(discardLogger(), nil, nil, providers.Metrics)

	file := csvFile("orders.csv", strings.Join([]string{
		shopeeOrderHeader,
		shopeeOrderLine("ORD-1", "Selesai", "KWH-01", "Rp50.000", "1", "0", ""),
	}, "\n"))

	_, err = svc.ProcessOrders(context.Background(), OrderRequest{
		Marketplace: domain.MarketplaceShopee,
		Platform:    "MP SHOPEE YUNI",
		Operator:    "cs1.zaneva@gmail.com",
	}, []InputFile{file})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "upload_bytes")
	assert.Contains(t, body, "batches_processed")
}
