/*
Package worktime is the working-time calculation engine.

PURPOSE:
  Converts raw shift and leave records into expected hours, worked hours
  (including the night-shift premium) and balances over day, month and
  quarter periods. Everything in this package is a pure transformation of
  its inputs: no I/O, no shared state, safe to call concurrently.

KEY CONCEPTS IN THIS FILE (types.go):
  - Shift: a single recorded work period (civil start/end timestamps)
  - NonAccountingDay: a date range excluded from expected-hours calculation
  - WorkingTime: per-shift result (base minutes + night bonus)
  - MonthlyStats / PeriodStats: aggregate results, recomputed on every query

DESIGN PRINCIPLES:
  1. Explicit inputs: all data arrives as function arguments, never from
     ambient state. The persistence layer is an external collaborator.
  2. Precision: decimal arithmetic for pro-ration and percentage bonuses,
     integer minutes everywhere else.
  3. Normalization: leaves are always range-based; the single-date form is
     converted at the boundary, so the engine never branches on shape.

SEE ALSO:
  - rules.go: named configuration (night window, bonus formula, monthly base)
  - duration.go: per-shift duration and night premium
  - monthly.go / period.go: aggregation
*/
package worktime

import (
	"fmt"
	"time"
)

// =============================================================================
// LEAVE TYPES
// =============================================================================

// LeaveType categorizes a non-accounting period.
type LeaveType string

const (
	LeaveVacation      LeaveType = "vacation"
	LeaveMedical       LeaveType = "medical"
	LeaveMaternity     LeaveType = "maternity"
	LeavePaternity     LeaveType = "paternity"
	LeaveBereavement   LeaveType = "bereavement"
	LeaveMarriage      LeaveType = "marriage"
	LeavePublicHoliday LeaveType = "public_holiday"
	LeaveOther         LeaveType = "other"
)

var leaveTypes = map[LeaveType]bool{
	LeaveVacation:      true,
	LeaveMedical:       true,
	LeaveMaternity:     true,
	LeavePaternity:     true,
	LeaveBereavement:   true,
	LeaveMarriage:      true,
	LeavePublicHoliday: true,
	LeaveOther:         true,
}

// Valid reports whether t is a known leave type.
func (t LeaveType) Valid() bool { return leaveTypes[t] }

// =============================================================================
// SHIFT - A single recorded work period
// =============================================================================

// Shift is one work period. Timestamps are civil wall-clock date-times
// (stored in UTC, no zone semantics). An EndTime whose clock value precedes
// StartTime means the shift crosses midnight; the engine interprets this
// during calculation, the stored values are never rewritten.
type Shift struct {
	ID          string
	UserID      string
	StartTime   time.Time
	EndTime     time.Time
	Description string
}

// Validate rejects malformed shifts at the boundary so the engine never
// sees a zero timestamp or a range the rollover rule cannot interpret: the
// end day must be the start day (an earlier clock value there means the
// shift crosses midnight) or the day directly after it.
func (s Shift) Validate() error {
	if s.StartTime.IsZero() {
		return fmt.Errorf("shift start time: %w", ErrInvalidTimestamp)
	}
	if s.EndTime.IsZero() {
		return fmt.Errorf("shift end time: %w", ErrInvalidTimestamp)
	}
	startDay := DayOf(s.StartTime)
	endDay := DayOf(s.EndTime)
	if endDay.Before(startDay) || endDay.After(startDay.AddDate(0, 0, 1)) {
		return fmt.Errorf("shift %s..%s: %w",
			s.StartTime.Format(dateTimeLayout), s.EndTime.Format(dateTimeLayout), ErrInvalidRange)
	}
	return nil
}

// =============================================================================
// NON-ACCOUNTING DAY - A period excluded from expected hours
// =============================================================================

// NonAccountingDay is a date range excluded from the expected-hours
// calculation (vacation, medical leave, public holiday, ...). A single day
// off is the degenerate range StartDate == EndDate.
type NonAccountingDay struct {
	ID        string
	UserID    string
	Type      LeaveType
	Reason    string
	StartDate time.Time
	EndDate   time.Time
}

// SingleDay builds the normalized range form from the single-date form.
func SingleDay(userID string, typ LeaveType, reason string, date time.Time) NonAccountingDay {
	d := DayOf(date)
	return NonAccountingDay{UserID: userID, Type: typ, Reason: reason, StartDate: d, EndDate: d}
}

// Validate checks the range invariant and the type enumeration.
// A free-text reason is required when the type is "other".
func (d NonAccountingDay) Validate() error {
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return fmt.Errorf("non-accounting day dates: %w", ErrInvalidTimestamp)
	}
	if DayOf(d.EndDate).Before(DayOf(d.StartDate)) {
		return fmt.Errorf("non-accounting day %s..%s: %w",
			d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout), ErrInvalidRange)
	}
	if !d.Type.Valid() {
		return fmt.Errorf("%q: %w", d.Type, ErrUnknownLeaveType)
	}
	if d.Type == LeaveOther && d.Reason == "" {
		return ErrReasonRequired
	}
	return nil
}

// Covers reports whether the given calendar day falls inside the range.
func (d NonAccountingDay) Covers(day time.Time) bool {
	day = DayOf(day)
	return !day.Before(DayOf(d.StartDate)) && !day.After(DayOf(d.EndDate))
}

// Overlaps reports whether any day of the range falls inside the period.
func (d NonAccountingDay) Overlaps(p Period) bool {
	return !DayOf(d.StartDate).After(DayOf(p.End)) && !DayOf(d.EndDate).Before(DayOf(p.Start))
}

// ClipTo returns the portion of the range inside the period. The second
// return value is false when there is no overlap.
func (d NonAccountingDay) ClipTo(p Period) (NonAccountingDay, bool) {
	if !d.Overlaps(p) {
		return NonAccountingDay{}, false
	}
	clipped := d
	if DayOf(clipped.StartDate).Before(DayOf(p.Start)) {
		clipped.StartDate = DayOf(p.Start)
	}
	if DayOf(clipped.EndDate).After(DayOf(p.End)) {
		clipped.EndDate = DayOf(p.End)
	}
	return clipped, true
}

// =============================================================================
// DERIVED RESULTS
// =============================================================================

// WorkingTime is the duration calculator's result for one shift.
// TotalMinutes = BaseMinutes + NightBonus.
type WorkingTime struct {
	BaseMinutes  int
	NightMinutes int
	NightHours   int
	NightBonus   int
	TotalMinutes int
}

// DayCount breaks a period down into calendar, business and effective days.
type DayCount struct {
	Total         int // calendar days in the period
	Working       int // Monday-Friday days
	NonAccounting int // business days covered by a leave range
	Effective     int // days that count toward expected hours
}

// MinuteTotals holds the expected/worked/balance triple for a period.
// Balance = Worked - Expected; positive means surplus.
type MinuteTotals struct {
	Expected int
	Worked   int
	Balance  int
}

// MonthlyStats is the monthly aggregate. It has no lifecycle of its own:
// every query recomputes it from the raw records.
type MonthlyStats struct {
	Year    int
	Month   time.Month
	Days    DayCount
	Minutes MinuteTotals
}

// PeriodStats is the multi-month aggregate (e.g. a quarter): the field-wise
// sum of the monthly stats of every month the period touches.
type PeriodStats struct {
	Period  Period
	Days    DayCount
	Minutes MinuteTotals
}

func (p *PeriodStats) add(m MonthlyStats) {
	p.Days.Total += m.Days.Total
	p.Days.Working += m.Days.Working
	p.Days.NonAccounting += m.Days.NonAccounting
	p.Days.Effective += m.Days.Effective
	p.Minutes.Expected += m.Minutes.Expected
	p.Minutes.Worked += m.Minutes.Worked
	p.Minutes.Balance += m.Minutes.Balance
}
