package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pasarcli/pkg/contracts/domain"
)

func TestExcelWriterWriteOrders(t *testing.T) {
	w := NewExcelWriter(nil)
	var buf bytes.Buffer

	rows := []domain.OrderRow{
		{OrderID: "2406150001", SKU: "KWH-01", Price: 31500, FinalPrice: 29500, Quantity: 2, Phone: "0812345", Marketplace: domain.MarketplaceShopee},
		{OrderID: "2406150002", SKU: "TOKEN-20", Price: 20000, FinalPrice: 20000, Quantity: 1, Marketplace: domain.MarketplaceShopee},
	}
	require.NoError(t, w.WriteOrders(&buf, domain.MarketplaceShopee, rows))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Orders"}, wb.GetSheetList())

	got, err := wb.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, OrderHeaders(domain.MarketplaceShopee), got[0])
	assert.Equal(t, "2406150001", got[1][0])
	assert.Equal(t, "0812345", got[1][15], "phone must keep its leading zero")
	assert.Equal(t, "29500", got[1][8])
}

func TestExcelWriterWriteOrdersTikTokSheet(t *testing.T) {
	w := NewExcelWriter(nil)
	var buf bytes.Buffer

	rows := []domain.OrderRow{
		{OrderID: "T-1", SKU: "KWH-01", Price: 5000, FinalPrice: 5000, ShippingFee: 1200, Quantity: 1, Marketplace: domain.MarketplaceTikTok},
	}
	require.NoError(t, w.WriteOrders(&buf, domain.MarketplaceTikTok, rows))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Tiktok_Orders_Clean"}, wb.GetSheetList())

	got, err := wb.GetRows("Tiktok_Orders_Clean")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tgl Kirim", got[0][18])
	assert.Equal(t, "1200", got[1][7])
}

func TestExcelWriterWriteIncome(t *testing.T) {
	w := NewExcelWriter(nil)
	var buf bytes.Buffer

	rows := []domain.IncomeRow{
		{OrderID: "2406150001", SettledAt: "2024-06-20", PlatformFee: 5200, AffiliateFee: 1100, NetIncome: 94500},
	}
	require.NoError(t, w.WriteIncome(&buf, rows))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	got, err := wb.GetRows("Income")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, IncomeHeaders(), got[0])
	assert.Equal(t, []string{"2406150001", "2024-06-20", "5200", "1100", "94500"}, got[1])
}
