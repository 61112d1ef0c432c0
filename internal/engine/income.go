package engine

import (
	"log/slog"

	"pasarcli/pkg/contracts/domain"
)

// ProcessIncome runs the settlement pipeline for one marketplace over a
// combined raw batch. Per record it separates the platform fee from the
// affiliate/commission fee and normalizes the net settlement amount; batch
// totals accumulate into the statistics.
func (e *Engine) ProcessIncome(m Marketplace, rows []domain.RawRecord) (*domain.IncomeResult, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	spec := m.Income
	cols, err := ResolveColumns(rows[0], spec.Fields, spec.FoldHeaders)
	if err != nil {
		return nil, err
	}

	stats := domain.BatchStats{
		InputRows:   len(rows),
		TotalOrders: len(rows),
	}

	out := make([]domain.IncomeRow, 0, len(rows))
	for _, row := range rows {
		var affiliate int64
		if len(spec.AffiliateFields) > 0 {
			// Optional subset: whichever affiliate columns the export
			// carries; absent ones contribute zero.
			for _, field := range spec.AffiliateFields {
				if v := cols.Lookup(row, field); v != nil {
					affiliate += abs64(ParseRupiah(v))
				}
			}
		} else {
			affiliate = abs64(ParseRupiah(cols.Lookup(row, FieldAffiliateFee)))
		}

		var platformFee int64
		if spec.DerivePlatformFee {
			totalFees := abs64(ParseRupiah(cols.Lookup(row, FieldTotalFees)))
			platformFee = abs64(totalFees - affiliate)
		} else {
			for _, header := range spec.FeeColumns {
				if v := row.Value(header); v != nil {
					platformFee += abs64(ParseRupiah(v))
				}
			}
		}

		net := ParseRupiah(cols.Lookup(row, FieldNetIncome))
		if spec.AbsoluteNet {
			net = abs64(net)
		}

		stats.TotalPlatformFee += platformFee
		stats.TotalAffiliateFee += affiliate
		stats.TotalIncome += net

		out = append(out, domain.IncomeRow{
			OrderID:      cols.Text(row, FieldOrderID),
			SettledAt:    cols.Text(row, FieldSettledAt),
			PlatformFee:  platformFee,
			AffiliateFee: affiliate,
			NetIncome:    net,
		})
	}
	stats.OutputRows = len(out)

	e.log.Info("income batch processed",
		slog.String("marketplace", string(m.ID)),
		slog.Int("records", stats.TotalOrders),
		slog.Int64("total_platform_fee", stats.TotalPlatformFee),
		slog.Int64("total_affiliate_fee", stats.TotalAffiliateFee),
		slog.Int64("total_income", stats.TotalIncome))

	return &domain.IncomeResult{Rows: out, Stats: stats}, nil
}
