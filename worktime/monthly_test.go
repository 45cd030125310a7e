package worktime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ponto/worktime-engine/worktime"
)

func dayShift(id string, day, startHour, endHour int) worktime.Shift {
	return worktime.Shift{
		ID: id, UserID: "u-1",
		StartTime: worktime.DateTime(2024, time.June, day, startHour, 0),
		EndTime:   worktime.DateTime(2024, time.June, day, endHour, 0),
	}
}

func TestMonthlyStats_EmptyMonth_CalendarBasis(t *testing.T) {
	// GIVEN: June 2024 (30 days), no shifts, no leaves, calendar basis
	// THEN: expected = round(160*60/30 * 30) = 9600, worked = 0

	calc := defaultCalc(t)
	stats := calc.MonthlyStats(worktime.Date(2024, time.June, 1), nil, nil)

	assert.Equal(t, 2024, stats.Year)
	assert.Equal(t, time.June, stats.Month)
	assert.Equal(t, 30, stats.Days.Total)
	assert.Equal(t, 20, stats.Days.Working)
	assert.Equal(t, 30, stats.Days.Effective)
	assert.Equal(t, 9600, stats.Minutes.Expected)
	assert.Equal(t, 0, stats.Minutes.Worked)
	assert.Equal(t, -9600, stats.Minutes.Balance)
}

func TestMonthlyStats_EmptyMonth_BusinessBasis(t *testing.T) {
	// GIVEN: The same month under the business-days basis
	// THEN: expected = round(320 * 20) = 6400

	rules := worktime.DefaultRules()
	rules.EffectiveDaysBasis = worktime.BasisBusinessDays
	calc := newCalc(t, rules)

	stats := calc.MonthlyStats(worktime.Date(2024, time.June, 1), nil, nil)

	assert.Equal(t, 20, stats.Days.Effective)
	assert.Equal(t, 6400, stats.Minutes.Expected)
}

func TestMonthlyStats_NonThirtyDayMonthRoundsOnce(t *testing.T) {
	// February 2025: 28 days. 9600/28 is periodic; multiplying back by 28
	// must land on 9600 exactly, not drift by a minute.

	calc := defaultCalc(t)
	stats := calc.MonthlyStats(worktime.Date(2025, time.February, 1), nil, nil)

	assert.Equal(t, 28, stats.Days.Total)
	assert.Equal(t, 9600, stats.Minutes.Expected)
}

func TestMonthlyStats_WorkedSumsShiftTotals(t *testing.T) {
	// GIVEN: Two 9h day shifts and one night shift in June
	// THEN: worked = 540 + 540 + 564 (night shift carries its 20% bonus)

	calc := defaultCalc(t)
	shifts := []worktime.Shift{
		dayShift("s-1", 10, 9, 18),
		dayShift("s-2", 11, 9, 18),
		{ID: "s-3", UserID: "u-1",
			StartTime: worktime.DateTime(2024, time.June, 12, 22, 0),
			EndTime:   worktime.DateTime(2024, time.June, 13, 6, 0)},
	}

	stats := calc.MonthlyStats(worktime.Date(2024, time.June, 1), shifts, nil)

	assert.Equal(t, 1644, stats.Minutes.Worked)
	assert.Equal(t, 1644-9600, stats.Minutes.Balance)
}

func TestMonthlyStats_ShiftsOutsideMonthIgnored(t *testing.T) {
	// GIVEN: Shifts in May and July alongside one June shift
	// THEN: Only the June shift contributes

	calc := defaultCalc(t)
	shifts := []worktime.Shift{
		{ID: "s-may", UserID: "u-1",
			StartTime: worktime.DateTime(2024, time.May, 31, 9, 0),
			EndTime:   worktime.DateTime(2024, time.May, 31, 18, 0)},
		dayShift("s-june", 10, 9, 18),
		{ID: "s-july", UserID: "u-1",
			StartTime: worktime.DateTime(2024, time.July, 1, 9, 0),
			EndTime:   worktime.DateTime(2024, time.July, 1, 18, 0)},
	}

	stats := calc.MonthlyStats(worktime.Date(2024, time.June, 15), shifts, nil)

	assert.Equal(t, 540, stats.Minutes.Worked)
}

func TestMonthlyStats_LeaveReducesExpected(t *testing.T) {
	// GIVEN: A Monday-Friday vacation (5 business days), calendar basis
	// THEN: effective = 30 - 5 = 25, expected = round(320 * 25) = 8000

	calc := defaultCalc(t)
	leave := vacation(worktime.Date(2024, time.June, 10), worktime.Date(2024, time.June, 14))

	stats := calc.MonthlyStats(worktime.Date(2024, time.June, 1), nil, []worktime.NonAccountingDay{leave})

	assert.Equal(t, 5, stats.Days.NonAccounting)
	assert.Equal(t, 25, stats.Days.Effective)
	assert.Equal(t, 8000, stats.Minutes.Expected)
}

func TestMonthlyStats_ReferenceDayWithinMonthIrrelevant(t *testing.T) {
	calc := defaultCalc(t)
	first := calc.MonthlyStats(worktime.Date(2024, time.June, 1), nil, nil)
	mid := calc.MonthlyStats(worktime.Date(2024, time.June, 17), nil, nil)

	assert.Equal(t, first, mid)
}

func TestMonthlyStats_Idempotent(t *testing.T) {
	// Pure function: identical inputs produce identical outputs.

	calc := defaultCalc(t)
	shifts := []worktime.Shift{dayShift("s-1", 10, 9, 18)}
	leave := []worktime.NonAccountingDay{vacation(worktime.Date(2024, time.June, 3), worktime.Date(2024, time.June, 4))}

	a := calc.MonthlyStats(worktime.Date(2024, time.June, 1), shifts, leave)
	b := calc.MonthlyStats(worktime.Date(2024, time.June, 1), shifts, leave)

	assert.Equal(t, a, b)
}
