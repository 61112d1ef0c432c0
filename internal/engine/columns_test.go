package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarcli/pkg/contracts/domain"
)

func TestResolveColumns(t *testing.T) {
	rep := domain.RawRecord{
		"No. Pesanan":    "2406ABC",
		"Status Pesanan": "Perlu Dikirim",
		"Jumlah":         "2",
	}

	fields := []FieldSpec{
		{Name: FieldOrderID, Aliases: []string{"No. Pesanan", "No Pesanan"}, Required: true},
		{Name: FieldStatus, Aliases: []string{"Status Pesanan"}, Required: true},
		{Name: FieldQuantity, Aliases: []string{"Jumlah"}, Required: true},
		{Name: FieldVoucher, Aliases: []string{"Voucher Ditanggung Penjual"}},
	}

	cols, err := ResolveColumns(rep, fields, false)
	require.NoError(t, err)
	assert.Equal(t, "No. Pesanan", cols[FieldOrderID])
	assert.Equal(t, "Jumlah", cols[FieldQuantity])

	// Optional field absent: not an error, lookups yield empty values.
	_, ok := cols[FieldVoucher]
	assert.False(t, ok)
	assert.Nil(t, cols.Lookup(rep, FieldVoucher))
	assert.Equal(t, "", cols.Text(rep, FieldVoucher))
}

func TestResolveColumnsAliasOrder(t *testing.T) {
	rep := domain.RawRecord{
		"No Pesanan":  "A",
		"No. Pesanan": "B",
	}
	fields := []FieldSpec{
		{Name: FieldOrderID, Aliases: []string{"No. Pesanan", "No Pesanan"}, Required: true},
	}

	cols, err := ResolveColumns(rep, fields, false)
	require.NoError(t, err)
	// First alias wins even when a later one also matches.
	assert.Equal(t, "No. Pesanan", cols[FieldOrderID])
}

func TestResolveColumnsCaseInsensitive(t *testing.T) {
	rep := domain.RawRecord{
		"  total FEES ": "1000",
		"order id":      "X1",
	}
	fields := []FieldSpec{
		{Name: FieldTotalFees, Aliases: []string{"Total Fees"}, Required: true},
		{Name: FieldOrderID, Aliases: []string{"Order/adjustment ID", "Order ID"}, Required: true},
	}

	cols, err := ResolveColumns(rep, fields, true)
	require.NoError(t, err)
	assert.Equal(t, "  total FEES ", cols[FieldTotalFees])
	assert.Equal(t, "order id", cols[FieldOrderID])

	// Exact matching would have missed both.
	_, err = ResolveColumns(rep, fields, false)
	require.Error(t, err)
}

func TestResolveColumnsReportsAllMissing(t *testing.T) {
	rep := domain.RawRecord{"No. Pesanan": "X"}
	fields := []FieldSpec{
		{Name: FieldOrderID, Aliases: []string{"No. Pesanan"}, Required: true},
		{Name: FieldNetIncome, Label: "Total Penghasilan", Aliases: []string{"Total Penghasilan", "Total Penghasilan (Rp)"}, Required: true},
		{Name: FieldAffiliateFee, Label: "Biaya Komisi AMS", Aliases: []string{"Biaya Komisi AMS"}, Required: true},
	}

	_, err := ResolveColumns(rep, fields, false)
	require.Error(t, err)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	// Every missing field is reported in one pass, by display name.
	assert.Equal(t, []string{"Total Penghasilan", "Biaya Komisi AMS"}, missing.Fields)
	assert.Contains(t, err.Error(), "Total Penghasilan")
	assert.Contains(t, err.Error(), "Biaya Komisi AMS")
}
