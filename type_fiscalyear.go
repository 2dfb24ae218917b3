package capgains

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// FiscalYear identifies an Indian fiscal year by its starting calendar year:
// FiscalYear(2025) runs from 1-Apr-2025 to 31-Mar-2026 and prints as "2025-26".
type FiscalYear int

// FiscalYearOf returns the fiscal year a date falls in.
func FiscalYearOf(d Date) FiscalYear {
	if d.Month() >= time.April {
		return FiscalYear(d.Year())
	}
	return FiscalYear(d.Year() - 1)
}

var fiscalYearRE = regexp.MustCompile(`^(\d{4})(?:-(\d{2}))?$`)

// ParseFiscalYear parses "2025-26" or "2025" into a FiscalYear.
func ParseFiscalYear(s string) (FiscalYear, error) {
	m := fiscalYearRE.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid fiscal year %q, want format \"2025-26\"", s)
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid fiscal year %q: %w", s, err)
	}
	if m[2] != "" {
		end, _ := strconv.Atoi(m[2])
		if (start+1)%100 != end {
			return 0, fmt.Errorf("invalid fiscal year %q: %d is not followed by %02d", s, start, end)
		}
	}
	return FiscalYear(start), nil
}

// String formats the fiscal year the way tax schedules name it.
func (fy FiscalYear) String() string { return fmt.Sprintf("%d-%02d", int(fy), (int(fy)+1)%100) }

// AssessmentYear returns the label of the assessment year that follows this
// fiscal year, e.g. "2026-27" for FY 2025-26.
func (fy FiscalYear) AssessmentYear() string {
	return fmt.Sprintf("%d-%02d", int(fy)+1, (int(fy)+2)%100)
}

// Range returns the Apr 1 - Mar 31 date range of the fiscal year.
func (fy FiscalYear) Range() Range {
	y := int(fy)
	return Range{From: NewDate(y, time.April, 1), To: NewDate(y+1, time.March, 31)}
}

// SubPeriodCount is the number of advance-tax windows inside a fiscal year.
const SubPeriodCount = 5

// subPeriodEnds are the last days of the first four advance-tax windows,
// expressed as (month, day); the fifth window closes the fiscal year.
var subPeriodEnds = [SubPeriodCount - 1]struct {
	m time.Month
	d int
}{
	{time.June, 15},
	{time.September, 15},
	{time.December, 15},
	{time.March, 15},
}

// SubPeriod returns the advance-tax window index in [0, SubPeriodCount) that
// the date falls in. A boundary day belongs to the window it closes, so every
// date of the fiscal year maps to exactly one window.
func (fy FiscalYear) SubPeriod(d Date) (int, error) {
	if !fy.Range().Contains(d) {
		return 0, fmt.Errorf("date %s is not in fiscal year %s", d, fy)
	}
	for i, end := range subPeriodEnds {
		y := int(fy)
		if end.m < time.April {
			y++ // the Mar-15 boundary is in the following calendar year
		}
		if !d.After(NewDate(y, end.m, end.d)) {
			return i, nil
		}
	}
	return SubPeriodCount - 1, nil
}

// SubPeriodRange returns the date range of the i-th advance-tax window.
func (fy FiscalYear) SubPeriodRange(i int) Range {
	r := fy.Range()
	from := r.From
	if i > 0 {
		end := subPeriodEnds[i-1]
		y := int(fy)
		if end.m < time.April {
			y++
		}
		from = NewDate(y, end.m, end.d).Add(1)
	}
	to := r.To
	if i < SubPeriodCount-1 {
		end := subPeriodEnds[i]
		y := int(fy)
		if end.m < time.April {
			y++
		}
		to = NewDate(y, end.m, end.d)
	}
	return Range{From: from, To: to}
}

// SubPeriodLabel names the i-th advance-tax window, e.g. "Upto 15/6".
func SubPeriodLabel(i int) string {
	switch i {
	case 0:
		return "Upto 15/6"
	case 1:
		return "16/6 to 15/9"
	case 2:
		return "16/9 to 15/12"
	case 3:
		return "16/12 to 15/3"
	case 4:
		return "16/3 to 31/3"
	default:
		panic("unknown sub-period")
	}
}
