package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"pasarcli/pkg/contracts/domain"
)

// ExcelWriter writes normalized rows as an xlsx workbook with every cell in
// text format, so order ids, phone numbers and tracking codes keep their
// leading zeros and never collapse into scientific notation.
type ExcelWriter struct {
	log *slog.Logger
}

// NewExcelWriter creates an Excel writer. A nil logger falls back to
// slog.Default().
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{log: logger}
}

// WriteOrders writes normalized order rows to dst as one sheet in the
// marketplace's legacy layout.
func (w *ExcelWriter) WriteOrders(dst io.Writer, id domain.MarketplaceID, rows []domain.OrderRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = OrderCells(row)
	}
	return w.write(dst, OrderSheetName(id), OrderHeaders(id), records)
}

// WriteIncome writes normalized income rows to dst as one sheet.
func (w *ExcelWriter) WriteIncome(dst io.Writer, rows []domain.IncomeRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = IncomeCells(row)
	}
	return w.write(dst, IncomeSheetName(), IncomeHeaders(), records)
}

func (w *ExcelWriter) write(dst io.Writer, sheet string, headers []string, records [][]string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	// NumFmt 49 is the built-in "@" text format.
	textStyle, err := wb.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return fmt.Errorf("failed to create text style: %w", err)
	}

	if err := writeSheetRow(wb, sheet, 1, headers); err != nil {
		return err
	}
	for i, record := range records {
		if err := writeSheetRow(wb, sheet, i+2, record); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), len(records)+1)
	if err != nil {
		return fmt.Errorf("failed to compute sheet range: %w", err)
	}
	if err := wb.SetCellStyle(sheet, "A1", last, textStyle); err != nil {
		return fmt.Errorf("failed to apply text style: %w", err)
	}

	w.log.Info("writing xlsx sheet",
		slog.String("sheet", sheet),
		slog.Int("record_count", len(records)))

	if err := wb.Write(dst); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(wb *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
