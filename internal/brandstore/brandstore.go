// Package brandstore manages the product-to-brand mapping table. Mappings
// arrive as uploaded xlsx or csv files with NAMA BARANG and BRAND columns,
// live in memory behind a RWMutex, and persist as JSON so a restart does not
// lose the table.
package brandstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pasarcli/internal/engine"
	"pasarcli/internal/reader"
	"pasarcli/pkg/contracts/domain"
)

// Store holds the current brand mappings and their on-disk snapshot.
type Store struct {
	log  *slog.Logger
	path string

	mu       sync.RWMutex
	mappings []domain.BrandMapping
}

// New creates a store that snapshots to path. An empty path disables
// persistence.
func New(logger *slog.Logger, path string) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{log: logger, path: path}
}

// Load restores the last snapshot from disk. A missing snapshot is not an
// error, the store just starts empty.
func (s *Store) Load(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read brand snapshot: %w", err)
	}

	var mappings []domain.BrandMapping
	if err := json.Unmarshal(data, &mappings); err != nil {
		return fmt.Errorf("failed to parse brand snapshot: %w", err)
	}

	s.mu.Lock()
	s.mappings = mappings
	s.mu.Unlock()

	s.log.InfoContext(ctx, "brand mappings restored",
		slog.String("path", s.path),
		slog.Int("count", len(mappings)))
	return nil
}

// Replace swaps the whole table and persists the new snapshot.
func (s *Store) Replace(ctx context.Context, mappings []domain.BrandMapping) error {
	s.mu.Lock()
	s.mappings = mappings
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "brand mappings replaced", slog.Int("count", len(mappings)))
	return nil
}

// Mappings returns a copy of the current table.
func (s *Store) Mappings() []domain.BrandMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BrandMapping, len(s.mappings))
	copy(out, s.mappings)
	return out
}

// Table builds the lookup table order processing consumes.
func (s *Store) Table() *engine.BrandTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return engine.NewBrandTable(s.mappings, engine.DefaultBrand)
}

// Count reports the number of mappings currently loaded.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	data, err := json.MarshalIndent(s.mappings, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode brand snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write brand snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace brand snapshot: %w", err)
	}
	return nil
}

// nameHeader and brandHeader are the expected columns of an uploaded mapping
// file. Matching is case-insensitive, so the lowercase export variants
// (nama_barang, brand) work too.
const (
	nameHeader  = "NAMA BARANG"
	brandHeader = "BRAND"
)

var headerVariants = map[string][]string{
	nameHeader:  {"NAMA BARANG", "nama_barang", "Nama Barang"},
	brandHeader: {"BRAND", "brand", "Brand"},
}

// ParseFile reads brand mappings from an uploaded xlsx or csv file. Rows
// with an empty product name or brand are skipped.
func ParseFile(name string, src io.Reader) ([]domain.BrandMapping, error) {
	r := reader.New(nil)
	records, err := r.Read(src, name, reader.Options{})
	if err != nil {
		return nil, err
	}

	nameCol, brandCol := "", ""
	if len(records) > 0 {
		nameCol = findColumn(records[0], headerVariants[nameHeader])
		brandCol = findColumn(records[0], headerVariants[brandHeader])
	}
	if nameCol == "" || brandCol == "" {
		missing := make([]string, 0, 2)
		if nameCol == "" {
			missing = append(missing, nameHeader)
		}
		if brandCol == "" {
			missing = append(missing, brandHeader)
		}
		return nil, &engine.MissingColumnsError{Fields: missing}
	}

	mappings := make([]domain.BrandMapping, 0, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(cellString(rec.Value(nameCol)))
		brand := strings.TrimSpace(cellString(rec.Value(brandCol)))
		if name == "" || brand == "" {
			continue
		}
		mappings = append(mappings, domain.BrandMapping{ProductName: name, Brand: brand})
	}
	return mappings, nil
}

func cellString(v any) string {
	s, _ := v.(string)
	return s
}

func findColumn(rec domain.RawRecord, variants []string) string {
	for _, v := range variants {
		if rec.Has(v) {
			return v
		}
	}
	for key := range rec {
		trimmed := strings.TrimSpace(key)
		for _, v := range variants {
			if strings.EqualFold(trimmed, v) {
				return key
			}
		}
	}
	return ""
}
