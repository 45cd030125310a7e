/*
duration.go - Per-shift duration and night premium

PURPOSE:
  Computes the billable minutes for one shift: base minutes between the
  civil timestamps, plus bonus minutes for work inside the night window.

MIDNIGHT ROLLOVER:
  A shift recorded as 23:00 -> 02:00 has an end clock value numerically
  before its start. The raw difference goes negative; adding one day's
  worth of minutes recovers the actual duration. The stored timestamps
  are never modified.

NIGHT CLASSIFICATION:
  Every minute in [start, end) is classified individually against the
  window. This is deliberately brute force: the shift length is bounded
  by ~a day, the loop is trivially correct at the window edges, and it
  doubles as the reference the aggregate tests lean on.
*/
package worktime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Duration computes the WorkingTime for one shift. It is total: any two
// well-formed timestamps produce a result, never an error or a NaN.
func (c *Calculator) Duration(start, end time.Time) WorkingTime {
	start = truncateToMinute(start)
	end = truncateToMinute(end)

	base := int(end.Sub(start).Minutes())
	if base < 0 {
		// End clock value precedes start: the shift crosses midnight.
		base += minutesPerDay
		end = end.AddDate(0, 0, 1)
	}

	nightMinutes := 0
	for t := start; t.Before(end); t = t.Add(time.Minute) {
		if c.rules.Night.IsNightMinute(t) {
			nightMinutes++
		}
	}

	bonus := c.nightBonus(nightMinutes)
	return WorkingTime{
		BaseMinutes:  base,
		NightMinutes: nightMinutes,
		NightHours:   nightMinutes / 60,
		NightBonus:   bonus,
		TotalMinutes: base + bonus,
	}
}

// nightBonus converts counted night minutes into bonus minutes under the
// configured formula.
func (c *Calculator) nightBonus(nightMinutes int) int {
	switch c.rules.BonusFormula {
	case BonusMinutesPerNightHour:
		// Only completed night hours earn the flat bonus.
		return (nightMinutes / 60) * c.rules.BonusMinutesPerHour
	default: // BonusPercentOfNightMinutes
		return int(decimal.NewFromInt(int64(nightMinutes)).
			Mul(c.rules.BonusPercent).
			Floor().
			IntPart())
	}
}
