package capgains

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// this file contains functions to export reports in a flat format.
// It should remain spreadsheet-friendly: one header line, plain decimal
// amounts without currency symbols, stable column order.

// ExportGainsCSV exports the gain records of a report, domestic first then
// foreign, one matched lot per line.
func ExportGainsCSV(w io.Writer, r *GainsReport) error {
	cw := csv.NewWriter(w)
	header := []string{
		"asset", "name", "category", "currency",
		"acquired", "disposed", "quantity",
		"unit_cost", "unit_proceeds", "cost", "proceeds", "fees", "gain",
		"term", "rate", "grandfathered", "missing_fmv", "hybrid_guess", "adjusted",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write gains export header: %w", err)
	}
	write := func(rec GainRecord) error {
		return cw.Write([]string{
			rec.Asset, rec.Name, string(rec.Category), rec.Proceeds.Currency(),
			rec.Acquired.String(), rec.Disposed.String(), rec.Quantity.String(),
			rec.UnitCost.Decimal().String(), rec.UnitProceeds.Decimal().String(),
			rec.Cost.Decimal().String(), rec.Proceeds.Decimal().String(),
			rec.Fees.Decimal().String(), rec.Gain.Decimal().String(),
			string(rec.Term), rec.RateLabel,
			strconv.FormatBool(rec.Grandfathered),
			strconv.FormatBool(rec.MissingFMV),
			strconv.FormatBool(rec.HybridGuess),
			strconv.FormatBool(rec.Adjusted),
		})
	}
	for _, rec := range r.Records {
		if err := write(rec); err != nil {
			return fmt.Errorf("cannot write gain record for %s: %w", rec.Asset, err)
		}
	}
	for _, rec := range r.Foreign {
		if err := write(rec); err != nil {
			return fmt.Errorf("cannot write gain record for %s: %w", rec.Asset, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export112ACSV exports the grandfathered-equity schedule, one matched lot
// per line, with the cost components the return form asks for.
func Export112ACSV(w io.Writer, rows []Schedule112ARow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"isin", "name", "quantity", "sale_price", "consideration",
		"original_cost", "fmv_cost", "final_cost", "deductions", "balance",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write 112A export header: %w", err)
	}
	for _, row := range rows {
		err := cw.Write([]string{
			row.ISIN, row.Name, row.Quantity.String(),
			row.SalePrice.Decimal().String(), row.Consideration.Decimal().String(),
			row.OriginalCost.Decimal().String(), row.FMVCost.Decimal().String(),
			row.FinalCost.Decimal().String(), row.Deductions.Decimal().String(),
			row.Balance.Decimal().String(),
		})
		if err != nil {
			return fmt.Errorf("cannot write 112A row for %s: %w", row.ISIN, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportScheduleFACSV exports the foreign-asset schedule, one asset per line,
// in the asset's native currency.
func ExportScheduleFACSV(w io.Writer, r *ScheduleFAReport) error {
	cw := csv.NewWriter(w)
	header := []string{
		"asset", "name", "isin", "country", "currency", "first_acquired",
		"opening_quantity", "opening_value",
		"peak_value", "peak_date",
		"closing_quantity", "closing_value",
		"gross_income", "gross_proceeds",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write Schedule FA export header: %w", err)
	}
	for _, e := range r.Entries {
		err := cw.Write([]string{
			e.Asset, e.Name, e.ISIN, e.Country, e.Currency, e.FirstAcquired.String(),
			e.OpeningQuantity.String(), e.OpeningValue.Decimal().String(),
			e.PeakValue.Decimal().String(), e.PeakDate.String(),
			e.ClosingQuantity.String(), e.ClosingValue.Decimal().String(),
			e.GrossIncome.Decimal().String(), e.GrossProceeds.Decimal().String(),
		})
		if err != nil {
			return fmt.Errorf("cannot write Schedule FA row for %s: %w", e.Asset, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
