// Package reader turns marketplace export files (xlsx or CSV) into
// row-oriented RawRecord batches for the engine. It knows the export quirks:
// the Shopee settlement sheet is named "Income" with its header on row 6,
// TikTok settlements live on an "Order details" sheet, and TikTok order
// exports may arrive with a blank header row that only leaves positional
// column names.
package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pasarcli/pkg/contracts/domain"
)

// Options selects the sheet and header layout of one export flavor.
type Options struct {
	// PreferredSheets are tried in order, case-insensitively, before
	// falling back to the workbook's first sheet.
	PreferredSheets []string
	// HeaderRow is the zero-based row index carrying the column headers.
	// Rows above it are metadata and skipped.
	HeaderRow int
}

// ShopeeOrders reads from the first sheet with headers on row 1.
func ShopeeOrders() Options { return Options{} }

// ShopeeIncome reads the "Income" sheet; the first five rows are metadata
// and the header sits on row 6.
func ShopeeIncome() Options {
	return Options{PreferredSheets: []string{"Income"}, HeaderRow: 5}
}

// TikTokOrders reads from the first sheet with headers on row 1.
func TikTokOrders() Options { return Options{} }

// TikTokIncome prefers the "Order details" sheet, headers on row 1.
func TikTokIncome() Options {
	return Options{PreferredSheets: []string{"Order details"}}
}

// Reader parses export files into RawRecord batches.
type Reader struct {
	log *slog.Logger
}

// New creates a reader. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{log: logger}
}

// ReadFile reads one export file from disk, dispatching on the extension.
func (r *Reader) ReadFile(path string, opts Options) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return r.Read(f, filepath.Base(path), opts)
}

// Read reads one export from a stream. The file name decides the format:
// ".csv" is parsed as CSV, anything else as an xlsx workbook.
func (r *Reader) Read(src io.Reader, name string, opts Options) ([]domain.RawRecord, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return r.readCSV(src, opts)
	}
	return r.readExcel(src, opts)
}

func (r *Reader) readCSV(src io.Reader, opts Options) ([]domain.RawRecord, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	// Excel-produced CSVs carry a UTF-8 BOM.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return recordsFromRows(rows, opts.HeaderRow)
}

func (r *Reader) readExcel(src io.Reader, opts Options) ([]domain.RawRecord, error) {
	wb, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheet := pickSheet(wb.GetSheetList(), opts.PreferredSheets)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	r.log.Debug("reading sheet", slog.String("sheet", sheet))

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	records, err := recordsFromRows(rows, opts.HeaderRow)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return records, nil
}

// pickSheet returns the first preferred sheet present in the workbook, or
// the workbook's first sheet when none match.
func pickSheet(sheets, preferred []string) string {
	if len(sheets) == 0 {
		return ""
	}
	for _, want := range preferred {
		for _, s := range sheets {
			if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(want)) {
				return s
			}
		}
	}
	return sheets[0]
}

// recordsFromRows maps data rows onto header names. Blank header cells get
// the positional "__EMPTY"/"__EMPTY_n" names so fixed-layout exports stay
// addressable; duplicate headers get a numeric suffix so no column is lost.
// Rows with no non-blank cell are skipped.
func recordsFromRows(rows [][]string, headerRow int) ([]domain.RawRecord, error) {
	if len(rows) <= headerRow {
		return nil, fmt.Errorf("format file tidak sesuai: header harus berada di baris ke-%d", headerRow+1)
	}

	hdr := newHeaderSet(rows[headerRow])
	var records []domain.RawRecord
	for _, row := range rows[headerRow+1:] {
		if !hasData(row) {
			continue
		}
		// Sheets with a blank header row come back with the header shorter
		// than the data rows; grow it with positional names as needed.
		hdr.extend(len(row))
		rec := make(domain.RawRecord, len(hdr.names))
		for i, h := range hdr.names {
			if i < len(row) && row[i] != "" {
				rec[h] = row[i]
			} else {
				rec[h] = nil
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

type headerSet struct {
	names []string
	seen  map[string]int
	empty int
}

func newHeaderSet(header []string) *headerSet {
	h := &headerSet{seen: make(map[string]int, len(header))}
	for _, cell := range header {
		h.add(cell)
	}
	return h
}

func (h *headerSet) add(cell string) {
	name := strings.TrimSpace(cell)
	if name == "" {
		if h.empty == 0 {
			name = "__EMPTY"
		} else {
			name = fmt.Sprintf("__EMPTY_%d", h.empty)
		}
		h.empty++
		h.names = append(h.names, name)
		return
	}
	n := h.seen[name]
	h.seen[name] = n + 1
	if n > 0 {
		name = fmt.Sprintf("%s_%d", name, n)
	}
	h.names = append(h.names, name)
}

func (h *headerSet) extend(width int) {
	for len(h.names) < width {
		h.add("")
	}
}

func hasData(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
