package engine

import (
	"log/slog"
	"strings"

	"pasarcli/pkg/contracts/domain"
)

// OrderOptions carries the operator-selected inputs of an orders run.
type OrderOptions struct {
	// Platform is the operator-selected platform identity, e.g.
	// "MP SHOPEE ZANEVA".
	Platform string
	// OperatorTag is copied verbatim into every output row's operator
	// column.
	OperatorTag string
	// Brands is the externally supplied SKU-to-brand table. Nil means an
	// empty table, so every SKU resolves to the fallback brand.
	Brands *BrandTable
}

// SplitSKU expands a composite SKU cell into its leaf SKUs. The cell may
// concatenate several SKUs with " + " or a bare "+"; fragments are trimmed
// and empty ones dropped. A cell that yields no fragments is kept whole as a
// single SKU so every input row produces at least one leaf item.
func SplitSKU(s string) []string {
	var parts []string
	if strings.Contains(s, " + ") {
		parts = strings.Split(s, " + ")
	} else {
		parts = strings.Split(s, "+")
	}

	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return []string{s}
	}
	return items
}

type leafItem struct {
	row   domain.RawRecord
	sku   string
	price int64
}

// ProcessOrders runs the orders pipeline for one marketplace over a combined
// raw batch: validate columns, drop cancelled rows, group by order id,
// expand composite SKUs and split the monetary amounts so every total is
// conserved exactly. Orders come out in first-seen order, rows within an
// order in input order, and SKU fragments in cell order, so identical input
// always yields identical output.
func (e *Engine) ProcessOrders(m Marketplace, rows []domain.RawRecord, opts OrderOptions) (*domain.OrderResult, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	spec := m.Orders
	cols, err := ResolveColumns(rows[0], spec.Fields, spec.FoldHeaders)
	if err != nil {
		return nil, err
	}

	brands := opts.Brands
	if brands == nil {
		brands = NewBrandTable(nil, "")
	}

	stats := domain.BatchStats{InputRows: len(rows)}

	active := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		reason := ""
		if spec.Cancellation.ReasonField != "" {
			reason = cols.Text(row, spec.Cancellation.ReasonField)
		}
		if spec.Cancellation.Cancelled(cols.Text(row, FieldStatus), reason) {
			stats.DeletedRows++
			continue
		}
		active = append(active, row)
	}
	if len(active) == 0 {
		return nil, ErrNoActiveRows
	}

	// Group by order id, preserving first-seen order. The pool amount is the
	// maximum seen among the order's rows, not a sum: the export repeats the
	// order-level voucher (or shipping fee) on every row.
	type orderGroup struct {
		rows []domain.RawRecord
		pool int64
	}
	var seen []string
	groups := make(map[string]*orderGroup)
	for _, row := range active {
		id := cols.Text(row, FieldOrderID)
		g, ok := groups[id]
		if !ok {
			g = &orderGroup{}
			groups[id] = g
			seen = append(seen, id)
		}
		if v := ParseRupiah(cols.Lookup(row, spec.PoolField)); v > g.pool {
			g.pool = v
		}
		g.rows = append(g.rows, row)
	}
	stats.TotalOrders = len(groups)

	out := make([]domain.OrderRow, 0, len(active))
	for _, id := range seen {
		g := groups[id]

		var leaves []leafItem
		for _, row := range g.rows {
			skus := SplitSKU(cols.Text(row, FieldSKU))
			if len(skus) > 1 {
				stats.SplitCount += len(skus) - 1
			}
			shares := SplitEvenly(ParseRupiah(cols.Lookup(row, FieldPrice)), len(skus))
			for i, sku := range skus {
				leaves = append(leaves, leafItem{row: row, sku: sku, price: shares[i]})
			}
		}

		// Second split layer: the order-level pool is divided across the
		// group's total leaf count, not per original row.
		poolShares := SplitEvenly(g.pool, len(leaves))

		for i, lf := range leaves {
			qty := ParseQuantity(cols.Lookup(lf.row, FieldQuantity))
			row := domain.OrderRow{
				OrderID:        id,
				Status:         cols.Text(lf.row, FieldStatus),
				TrackingNumber: cols.Text(lf.row, FieldTracking),
				CreatedAt:      cols.Text(lf.row, FieldCreatedAt),
				PaymentMethod:  cols.Text(lf.row, FieldPaymentMethod),
				SKU:            lf.sku,
				Price:          lf.price,
				Quantity:       qty,
				City:           cols.Text(lf.row, FieldCity),
				Province:       cols.Text(lf.row, FieldProvince),
				Platform:       FormatPlatform(opts.Platform, lf.sku, brands, spec.SuppressedPlatforms),
				BuyerUsername:  cols.Text(lf.row, FieldBuyer),
				Recipient:      cols.Text(lf.row, FieldRecipient),
				Phone:          cols.Text(lf.row, FieldPhone),
				Address:        cols.Text(lf.row, FieldAddress),
				OperatorTag:    opts.OperatorTag,
				Marketplace:    m.ID,
			}
			if spec.PoolToShipping {
				row.ShippingFee = poolShares[i]
				row.FinalPrice = lf.price
			} else {
				row.FinalPrice = lf.price*int64(qty) - poolShares[i]
			}
			out = append(out, row)
		}
	}
	stats.OutputRows = len(out)

	e.log.Info("orders batch processed",
		slog.String("marketplace", string(m.ID)),
		slog.Int("input_rows", stats.InputRows),
		slog.Int("deleted_rows", stats.DeletedRows),
		slog.Int("split_count", stats.SplitCount),
		slog.Int("output_rows", stats.OutputRows),
		slog.Int("total_orders", stats.TotalOrders))

	return &domain.OrderResult{Rows: out, Stats: stats}, nil
}
