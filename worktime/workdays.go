package worktime

import "time"

// =============================================================================
// WORKDAY COUNTER
// =============================================================================

// CountWorkdays enumerates every calendar day in the period and classifies
// it: total days, business days (Monday-Friday), business days covered by a
// leave range, and effective days (working minus non-accounting).
//
// A leave range that only partially overlaps the period contributes only
// the overlapping business days; the day-by-day walk clips naturally.
func (c *Calculator) CountWorkdays(p Period, leaves []NonAccountingDay) (DayCount, error) {
	if err := p.Validate(); err != nil {
		return DayCount{}, err
	}

	var count DayCount
	end := DayOf(p.End)
	for day := DayOf(p.Start); !day.After(end); day = day.AddDate(0, 0, 1) {
		count.Total++
		if IsWeekend(day) {
			continue
		}
		count.Working++
		if coveredByLeave(day, leaves) {
			count.NonAccounting++
		}
	}
	count.Effective = count.Working - count.NonAccounting
	return count, nil
}

func coveredByLeave(day time.Time, leaves []NonAccountingDay) bool {
	for _, l := range leaves {
		if l.Covers(day) {
			return true
		}
	}
	return false
}
