package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarcli/pkg/contracts/domain"
)

func TestCSVWriterWrite(t *testing.T) {
	w := NewCSVWriter(nil)

	t.Run("starts with UTF-8 BOM", func(t *testing.T) {
		var buf bytes.Buffer
		err := w.Write(&buf, []string{"a"}, nil)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	})

	t.Run("quotes every field with CRLF line endings", func(t *testing.T) {
		var buf bytes.Buffer
		err := w.Write(&buf, []string{"No Pesanan", "Kota"}, [][]string{
			{"2406150001", "Surabaya"},
		})
		require.NoError(t, err)
		got := strings.TrimPrefix(buf.String(), "\ufeff")
		assert.Equal(t, "\"No Pesanan\",\"Kota\"\r\n\"2406150001\",\"Surabaya\"\r\n", got)
	})

	t.Run("doubles embedded quotes", func(t *testing.T) {
		var buf bytes.Buffer
		err := w.Write(&buf, []string{"Alamat"}, [][]string{{`Jl. "Mawar" 1`}})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"Jl. ""Mawar"" 1"`)
	})
}

func TestCSVWriterWriteFile(t *testing.T) {
	w := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "nested", "orders.csv")

	err := w.WriteFile(path, []string{"h"}, [][]string{{"v"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\ufeff\"h\"\r\n\"v\"\r\n", string(data))
}

func TestCSVWriterWriteOrders(t *testing.T) {
	w := NewCSVWriter(nil)
	var buf bytes.Buffer

	err := w.WriteOrders(&buf, domain.MarketplaceShopee, []domain.OrderRow{
		{OrderID: "A-1", SKU: "KWH-01", Price: 100, FinalPrice: 90, Quantity: 1, Marketplace: domain.MarketplaceShopee},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"No Pesanan"`)
	assert.Contains(t, lines[1], `"A-1"`)
}

func TestCSVWriterWriteIncome(t *testing.T) {
	w := NewCSVWriter(nil)
	var buf bytes.Buffer

	err := w.WriteIncome(&buf, []domain.IncomeRow{
		{OrderID: "A-1", SettledAt: "2024-06-20", PlatformFee: 500, NetIncome: 9500},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Total Penghasilan"`)
	assert.Contains(t, buf.String(), `"9500"`)
}
