package worktime

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - Inclusive civil date range
// =============================================================================

// Period is an inclusive [Start, End] range of calendar days. Stats are
// always computed for a period, never at a point in time.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a validated period from two civil dates.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: DayOf(start), End: DayOf(end)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate fails fast on inverted or zero-valued ranges.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("period bounds: %w", ErrInvalidTimestamp)
	}
	if DayOf(p.End).Before(DayOf(p.Start)) {
		return fmt.Errorf("period %s..%s: %w",
			p.Start.Format(dateLayout), p.End.Format(dateLayout), ErrInvalidRange)
	}
	return nil
}

// Contains reports whether the timestamp's calendar day is within the period.
func (p Period) Contains(t time.Time) bool {
	day := DayOf(t)
	return !day.Before(DayOf(p.Start)) && !day.After(DayOf(p.End))
}

func (p Period) String() string {
	return "[" + p.Start.Format(dateLayout) + ", " + p.End.Format(dateLayout) + "]"
}

// MonthOf returns the full calendar month containing the reference date.
func MonthOf(ref time.Time) Period {
	return Period{Start: StartOfMonth(ref), End: EndOfMonth(ref)}
}

// QuarterPeriod returns the calendar quarter (1-4) of the given year.
func QuarterPeriod(year, quarter int) (Period, error) {
	if quarter < 1 || quarter > 4 {
		return Period{}, fmt.Errorf("quarter %d: %w", quarter, ErrInvalidRange)
	}
	startMonth := time.Month((quarter-1)*3 + 1)
	start := Date(year, startMonth, 1)
	return Period{Start: start, End: EndOfMonth(start.AddDate(0, 2, 0))}, nil
}

// =============================================================================
// PERIOD AGGREGATOR
// =============================================================================

// PeriodStats sums monthly statistics across an arbitrary multi-month
// range. Shifts and leaves are filtered/clipped to the period first so that
// records outside the range can never leak into an edge month; each touched
// calendar month is then delegated to MonthlyStats and the results are
// summed field-wise.
func (c *Calculator) PeriodStats(p Period, shifts []Shift, leaves []NonAccountingDay) (PeriodStats, error) {
	if err := p.Validate(); err != nil {
		return PeriodStats{}, err
	}

	filteredShifts := FilterShifts(shifts, p)
	clippedLeaves := ClipLeaves(leaves, p)

	out := PeriodStats{Period: p}
	for m := StartOfMonth(p.Start); !m.After(DayOf(p.End)); m = m.AddDate(0, 1, 0) {
		out.add(c.MonthlyStats(m, filteredShifts, clippedLeaves))
	}
	return out, nil
}

// QuarterStats is a convenience wrapper over PeriodStats for one quarter.
func (c *Calculator) QuarterStats(year, quarter int, shifts []Shift, leaves []NonAccountingDay) (PeriodStats, error) {
	p, err := QuarterPeriod(year, quarter)
	if err != nil {
		return PeriodStats{}, err
	}
	return c.PeriodStats(p, shifts, leaves)
}

// FilterShifts keeps the shifts whose start day falls inside the period.
func FilterShifts(shifts []Shift, p Period) []Shift {
	out := make([]Shift, 0, len(shifts))
	for _, s := range shifts {
		if p.Contains(s.StartTime) {
			out = append(out, s)
		}
	}
	return out
}

// ClipLeaves keeps the overlapping leaves, each clipped to the period so a
// range straddling a boundary only contributes its inside portion.
func ClipLeaves(leaves []NonAccountingDay, p Period) []NonAccountingDay {
	out := make([]NonAccountingDay, 0, len(leaves))
	for _, l := range leaves {
		if clipped, ok := l.ClipTo(p); ok {
			out = append(out, clipped)
		}
	}
	return out
}
