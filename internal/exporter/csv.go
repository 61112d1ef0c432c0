package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pasarcli/pkg/contracts/domain"
)

// CSVWriter writes normalized rows as CSV. Every cell is quoted and the
// file starts with a UTF-8 BOM, matching what Excel expects when it opens
// Indonesian text.
type CSVWriter struct {
	log *slog.Logger
}

// NewCSVWriter creates a CSV writer. A nil logger falls back to
// slog.Default().
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{log: logger}
}

// Write streams headers and records to dst with a BOM prefix.
func (w *CSVWriter) Write(dst io.Writer, headers []string, records [][]string) error {
	if _, err := dst.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	if err := writeQuotedLine(dst, headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writeQuotedLine(dst, record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile writes the CSV to a file, creating parent directories.
func (w *CSVWriter) WriteFile(path string, headers []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w.log.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	if err := w.Write(f, headers, records); err != nil {
		return err
	}
	return f.Close()
}

// WriteOrders writes normalized order rows in the marketplace's legacy
// layout.
func (w *CSVWriter) WriteOrders(dst io.Writer, id domain.MarketplaceID, rows []domain.OrderRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = OrderCells(row)
	}
	return w.Write(dst, OrderHeaders(id), records)
}

// WriteIncome writes normalized income rows in the legacy layout.
func (w *CSVWriter) WriteIncome(dst io.Writer, rows []domain.IncomeRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = IncomeCells(row)
	}
	return w.Write(dst, IncomeHeaders(), records)
}

// writeQuotedLine emits one CRLF-terminated line with every field quoted,
// doubling embedded quotes.
func writeQuotedLine(dst io.Writer, fields []string) error {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
	_, err := io.WriteString(dst, b.String())
	return err
}
