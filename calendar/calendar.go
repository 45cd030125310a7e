// Package calendar expands recurrence-rule holiday definitions into
// non-accounting days. Rules are plain RRULE strings (RFC 5545), so a fixed
// yearly holiday is "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25" and shifted or
// bounded observances stay expressible without new code.
package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/ponto/worktime-engine/worktime"
)

// Rule is one named holiday recurrence.
type Rule struct {
	ID    string
	Name  string
	RRule string
}

// anchor is the DTSTART applied to every rule. Holidays are evaluated far
// back so historical periods expand correctly.
var anchor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type compiledRule struct {
	rule Rule
	rr   *rrule.RRule
}

// Calendar holds a compiled rule set. Safe for concurrent reads.
type Calendar struct {
	rules []compiledRule
}

// New compiles the rule set. An unparseable RRULE fails the whole calendar:
// a silently dropped holiday would inflate expected hours.
func New(rules []Rule) (*Calendar, error) {
	c := &Calendar{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		rr, err := rrule.StrToRRule(r.RRule)
		if err != nil {
			return nil, fmt.Errorf("holiday rule %q: invalid rrule: %w", r.Name, err)
		}
		rr.DTStart(anchor)
		c.rules = append(c.rules, compiledRule{rule: r, rr: rr})
	}
	return c, nil
}

// Holiday is one expanded occurrence.
type Holiday struct {
	Date time.Time
	Name string
}

// HolidaysBetween expands every rule over the inclusive date range, sorted
// by rule order then date.
func (c *Calendar) HolidaysBetween(p worktime.Period) []Holiday {
	var out []Holiday
	from := worktime.DayOf(p.Start)
	until := worktime.DayOf(p.End).AddDate(0, 0, 1)
	for _, cr := range c.rules {
		for _, occ := range cr.rr.Between(from, until, true) {
			day := worktime.DayOf(occ)
			if day.Equal(until) {
				continue
			}
			out = append(out, Holiday{Date: day, Name: cr.rule.Name})
		}
	}
	return out
}

// NonAccountingDays converts the expanded holidays of a period into
// single-day leave records of type public_holiday for the given user, ready
// to merge into the engine's leave list.
func (c *Calendar) NonAccountingDays(userID string, p worktime.Period) []worktime.NonAccountingDay {
	holidays := c.HolidaysBetween(p)
	out := make([]worktime.NonAccountingDay, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, worktime.SingleDay(userID, worktime.LeavePublicHoliday, h.Name, h.Date))
	}
	return out
}

// DefaultRules is a minimal fixed-date set; deployments override it in
// configuration with their own national and regional holidays.
func DefaultRules() []Rule {
	return []Rule{
		{ID: "new-year", Name: "New Year's Day", RRule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
		{ID: "labor-day", Name: "Labor Day", RRule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=1"},
		{ID: "christmas", Name: "Christmas Day", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"},
	}
}
