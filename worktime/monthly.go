/*
monthly.go - Monthly expected/worked/balance aggregation

PURPOSE:
  Computes one month's figures from the full record lists. The aggregator
  filters internally: callers hand over everything they have and a
  reference date identifying the month.

EXPECTED MINUTES:
  expected = round(BaseMonthlyHours * 60 / daysInMonth * effectiveDays)

  where effectiveDays subtracts the month's non-accounting business days
  from the configured basis (calendar days by default, business days as
  the alternative). The pro-ration runs on decimals and rounds once, at
  the end, half away from zero.

WORKED MINUTES:
  Sum of Duration().TotalMinutes over every shift starting in the month,
  night bonus included.
*/
package worktime

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyStats computes the month identified by ref. Empty record lists
// are fine: worked and non-accounting simply come out zero.
func (c *Calculator) MonthlyStats(ref time.Time, shifts []Shift, leaves []NonAccountingDay) MonthlyStats {
	month := MonthOf(ref)

	// A calendar month is always a valid period.
	count, _ := c.CountWorkdays(month, leaves)

	basis := count.Total
	if c.rules.EffectiveDaysBasis == BasisBusinessDays {
		basis = count.Working
	}
	effective := basis - count.NonAccounting

	worked := 0
	for _, s := range shifts {
		if month.Contains(s.StartTime) {
			worked += c.Duration(s.StartTime, s.EndTime).TotalMinutes
		}
	}

	expected := c.expectedMinutes(count.Total, effective)
	return MonthlyStats{
		Year:  month.Start.Year(),
		Month: month.Start.Month(),
		Days: DayCount{
			Total:         count.Total,
			Working:       count.Working,
			NonAccounting: count.NonAccounting,
			Effective:     effective,
		},
		Minutes: MinuteTotals{
			Expected: expected,
			Worked:   worked,
			Balance:  worked - expected,
		},
	}
}

// expectedMinutes pro-rates the monthly base across effective days.
func (c *Calculator) expectedMinutes(daysInMonth, effectiveDays int) int {
	perDay := decimal.NewFromInt(int64(c.rules.BaseMonthlyHours * 60)).
		Div(decimal.NewFromInt(int64(daysInMonth)))
	return int(perDay.Mul(decimal.NewFromInt(int64(effectiveDays))).Round(0).IntPart())
}
