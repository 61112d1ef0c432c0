package brandstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarcli/internal/engine"
	"pasarcli/pkg/contracts/domain"
)

func TestParseFile(t *testing.T) {
	t.Run("uppercase headers", func(t *testing.T) {
		csv := "NAMA BARANG,BRAND\nToken Listrik 20K,ZANEVA\nKWH Meter,OBERBE\n"
		got, err := ParseFile("brands.csv", strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, []domain.BrandMapping{
			{ProductName: "Token Listrik 20K", Brand: "ZANEVA"},
			{ProductName: "KWH Meter", Brand: "OBERBE"},
		}, got)
	})

	t.Run("lowercase export variant", func(t *testing.T) {
		csv := "nama_barang,brand\nToken Listrik 20K,ZANEVA\n"
		got, err := ParseFile("brands.csv", strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ZANEVA", got[0].Brand)
	})

	t.Run("skips rows with empty name or brand", func(t *testing.T) {
		csv := "NAMA BARANG,BRAND\n,ZANEVA\nKWH Meter,\nToken 50K,DITA\n"
		got, err := ParseFile("brands.csv", strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Token 50K", got[0].ProductName)
	})

	t.Run("missing columns reported together", func(t *testing.T) {
		csv := "Produk,Merek\nToken,ZANEVA\n"
		_, err := ParseFile("brands.csv", strings.NewReader(csv))
		var missing *engine.MissingColumnsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"NAMA BARANG", "BRAND"}, missing.Fields)
	})
}

func TestStoreReplaceAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands.json")
	mappings := []domain.BrandMapping{
		{ProductName: "Token Listrik 20K", Brand: "ZANEVA"},
		{ProductName: "KWH Meter", Brand: "OBERBE"},
	}

	store := New(nil, path)
	require.NoError(t, store.Replace(context.Background(), mappings))
	assert.Equal(t, 2, store.Count())

	restored := New(nil, path)
	require.NoError(t, restored.Load(context.Background()))
	assert.Equal(t, mappings, restored.Mappings())
}

func TestStoreLoadMissingSnapshot(t *testing.T) {
	store := New(nil, filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, store.Load(context.Background()))
	assert.Zero(t, store.Count())
}

func TestStoreTable(t *testing.T) {
	store := New(nil, "")
	require.NoError(t, store.Replace(context.Background(), []domain.BrandMapping{
		{ProductName: "KWH Meter", Brand: "OBERBE"},
	}))

	table := store.Table()
	assert.Equal(t, "OBERBE", table.BrandOf("kwh meter"))
	assert.Equal(t, engine.DefaultBrand, table.BrandOf("unknown"))
}

func TestStoreMappingsReturnsCopy(t *testing.T) {
	store := New(nil, "")
	require.NoError(t, store.Replace(context.Background(), []domain.BrandMapping{
		{ProductName: "KWH Meter", Brand: "OBERBE"},
	}))

	got := store.Mappings()
	got[0].Brand = "MUTATED"
	assert.Equal(t, "OBERBE", store.Mappings()[0].Brand)
}
