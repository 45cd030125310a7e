package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponto/worktime-engine/calendar"
	"github.com/ponto/worktime-engine/worktime"
)

func year(y int) worktime.Period {
	return worktime.Period{
		Start: worktime.Date(y, time.January, 1),
		End:   worktime.Date(y, time.December, 31),
	}
}

func TestNew_RejectsInvalidRRule(t *testing.T) {
	_, err := calendar.New([]calendar.Rule{
		{ID: "bad", Name: "Broken", RRule: "FREQ=SOMETIMES"},
	})
	assert.Error(t, err)
}

func TestHolidaysBetween_ExpandsDefaultRulesForAYear(t *testing.T) {
	cal, err := calendar.New(calendar.DefaultRules())
	require.NoError(t, err)

	holidays := cal.HolidaysBetween(year(2024))
	require.Len(t, holidays, 3)

	byName := map[string]time.Time{}
	for _, h := range holidays {
		byName[h.Name] = h.Date
	}
	assert.Equal(t, worktime.Date(2024, time.January, 1), byName["New Year's Day"])
	assert.Equal(t, worktime.Date(2024, time.May, 1), byName["Labor Day"])
	assert.Equal(t, worktime.Date(2024, time.December, 25), byName["Christmas Day"])
}

func TestHolidaysBetween_InclusiveBounds(t *testing.T) {
	cal, err := calendar.New(calendar.DefaultRules())
	require.NoError(t, err)

	// GIVEN: A period whose end date IS a holiday
	p, err := worktime.NewPeriod(worktime.Date(2024, time.December, 1), worktime.Date(2024, time.December, 25))
	require.NoError(t, err)
	holidays := cal.HolidaysBetween(p)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Christmas Day", holidays[0].Name)

	// AND: A period ending the day before yields nothing
	p, err = worktime.NewPeriod(worktime.Date(2024, time.December, 1), worktime.Date(2024, time.December, 24))
	require.NoError(t, err)
	assert.Empty(t, cal.HolidaysBetween(p))
}

func TestHolidaysBetween_HistoricalPeriods(t *testing.T) {
	cal, err := calendar.New(calendar.DefaultRules())
	require.NoError(t, err)

	holidays := cal.HolidaysBetween(year(2001))
	assert.Len(t, holidays, 3, "rules expand for years long past")
}

func TestNonAccountingDays_ProducesPublicHolidayRecords(t *testing.T) {
	cal, err := calendar.New([]calendar.Rule{
		{ID: "labor-day", Name: "Labor Day", RRule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=1"},
	})
	require.NoError(t, err)

	p := worktime.MonthOf(worktime.Date(2024, time.May, 1))
	leaves := cal.NonAccountingDays("u-1", p)
	require.Len(t, leaves, 1)

	l := leaves[0]
	assert.Equal(t, "u-1", l.UserID)
	assert.Equal(t, worktime.LeavePublicHoliday, l.Type)
	assert.Equal(t, "Labor Day", l.Reason)
	assert.Equal(t, worktime.Date(2024, time.May, 1), l.StartDate)
	assert.Equal(t, l.StartDate, l.EndDate)
	require.NoError(t, l.Validate())
}
