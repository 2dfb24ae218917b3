package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// ScheduleFAMarkdown renders the calendar-year foreign-asset schedule, one
// section per asset, with values in the asset's native currency.
func ScheduleFAMarkdown(r *capgains.ScheduleFAReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Schedule FA CY %d (AY %s)\n\n", r.Year, r.AssessmentYear)
	if len(r.Entries) == 0 {
		fmt.Fprint(&b, "No foreign asset held during the year.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset | Country | Acquired | Opening | Peak | Peak Date | Closing | Income | Proceeds |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|:---|---:|---:|---:|")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			e.Asset, e.Country, e.FirstAcquired,
			e.OpeningValue, e.PeakValue, e.PeakDate, e.ClosingValue,
			e.GrossIncome, e.GrossProceeds)
	}
	fmt.Fprintln(&b)

	fmt.Fprint(&b, "Valuation follows the last transacted price on or before each date.\n")
	return b.String()
}
