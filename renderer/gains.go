package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// GainsMarkdown renders the fiscal-year capital gains report.
//
// The flags column marks records needing a second look: G grandfathered,
// M grandfathering qualified but FMV missing, H regime guessed from free
// text, A lot shaped by a corporate action.
func GainsMarkdown(r *capgains.GainsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains FY %s (AY %s)\n\n", r.Year, r.AssessmentYear)
	fmt.Fprintf(&b, "| | Gains | Estimated Tax |\n")
	fmt.Fprintf(&b, "|:---|---:|---:|\n")
	fmt.Fprintf(&b, "| Short-term | %s | %s |\n", r.ShortTermTotal.SignedString(), r.EstimatedTaxShort.String())
	fmt.Fprintf(&b, "| Long-term | %s | %s |\n\n", r.LongTermTotal.SignedString(), r.EstimatedTaxLong.String())

	if len(r.Records) > 0 {
		fmt.Fprint(&b, "## Realized Gains\n\n")
		fmt.Fprintln(&b, "| Asset | Acquired | Disposed | Quantity | Cost | Proceeds | Fees | Gain | Rate | Flags |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|:---|:---|")
		for _, rec := range r.Records {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				rec.Asset, rec.Acquired, rec.Disposed, rec.Quantity,
				rec.Cost, rec.Proceeds, rec.Fees, rec.Gain.SignedString(),
				rec.RateLabel, recordFlags(rec))
		}
		fmt.Fprintln(&b)
	}

	if len(r.Periods) > 0 {
		fmt.Fprint(&b, "## Advance Tax Periods\n\n")
		fmt.Fprint(&b, "| Rate |")
		for i := 0; i < capgains.SubPeriodCount; i++ {
			fmt.Fprintf(&b, " %s |", capgains.SubPeriodLabel(i))
		}
		fmt.Fprintln(&b)
		fmt.Fprint(&b, "|:---|")
		for i := 0; i < capgains.SubPeriodCount; i++ {
			fmt.Fprint(&b, "---:|")
		}
		fmt.Fprintln(&b)
		for _, row := range r.Periods {
			fmt.Fprintf(&b, "| %s |", row.Label)
			for _, sum := range row.Sums {
				fmt.Fprintf(&b, " %s |", sum.SignedString())
			}
			fmt.Fprintln(&b)
		}
		fmt.Fprintln(&b)
	}

	if len(r.Schedule112A) > 0 {
		fmt.Fprint(&b, "## Schedule 112A\n\n")
		fmt.Fprintln(&b, "| ISIN | Name | Quantity | Sale Price | Consideration | Original Cost | FMV Cost | Final Cost | Deductions | Balance |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|")
		for _, row := range r.Schedule112A {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				row.ISIN, row.Name, row.Quantity, row.SalePrice, row.Consideration,
				row.OriginalCost, row.FMVCost, row.FinalCost, row.Deductions,
				row.Balance.SignedString())
		}
		fmt.Fprintln(&b)
	}

	if len(r.Foreign) > 0 {
		fmt.Fprint(&b, "## Foreign Assets\n\n")
		fmt.Fprint(&b, "Gains in the asset's native currency; rates depend on treaty positions and are not estimated here.\n\n")
		fmt.Fprintln(&b, "| Asset | Acquired | Disposed | Quantity | Cost | Proceeds | Fees | Gain | Term |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|:---|")
		for _, rec := range r.Foreign {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				rec.Asset, rec.Acquired, rec.Disposed, rec.Quantity,
				rec.Cost, rec.Proceeds, rec.Fees, rec.Gain.SignedString(), rec.Term)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

func recordFlags(rec capgains.GainRecord) string {
	var flags []string
	if rec.Grandfathered {
		flags = append(flags, "G")
	}
	if rec.MissingFMV {
		flags = append(flags, "M")
	}
	if rec.HybridGuess {
		flags = append(flags, "H")
	}
	if rec.Adjusted {
		flags = append(flags, "A")
	}
	return strings.Join(flags, "")
}
