/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  engine's domain types from the external contract. Civil timestamps
  travel as strings: "2006-01-02T15:04" for shift times, "2006-01-02"
  for dates, "2006-01" for month references.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request structs carry validator/v10 tags; handlers run validate.Struct
  before touching the payload, then the engine's own Validate methods
  enforce the domain invariants.
*/
package api

import (
	"fmt"
	"time"

	"github.com/ponto/worktime-engine/worktime"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
	monthLayout    = "2006-01"
)

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftDTO represents a shift in API responses, with its computed duration.
type ShiftDTO struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	Description string         `json:"description,omitempty"`
	Duration    WorkingTimeDTO `json:"duration"`
}

// CreateShiftRequest is the request to record a shift.
type CreateShiftRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Description string `json:"description"`
}

// WorkingTimeDTO mirrors worktime.WorkingTime.
type WorkingTimeDTO struct {
	BaseMinutes  int `json:"base_minutes"`
	NightMinutes int `json:"night_minutes"`
	NightHours   int `json:"night_hours"`
	NightBonus   int `json:"night_bonus"`
	TotalMinutes int `json:"total_minutes"`
}

// =============================================================================
// NON-ACCOUNTING DAYS
// =============================================================================

// LeaveDTO represents a non-accounting day range in API responses.
type LeaveDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Reason    string `json:"reason,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateLeaveRequest accepts both historical payload shapes: a single
// "date", or a "start_date"/"end_date" range. The handler normalizes to
// the range form before it reaches the engine.
type CreateLeaveRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Reason    string `json:"reason"`
	Date      string `json:"date"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// =============================================================================
// STATS
// =============================================================================

// DayCountDTO mirrors worktime.DayCount.
type DayCountDTO struct {
	Total         int `json:"total"`
	Working       int `json:"working"`
	NonAccounting int `json:"non_accounting"`
	Effective     int `json:"effective"`
}

// MinuteTotalsDTO mirrors worktime.MinuteTotals.
type MinuteTotalsDTO struct {
	Expected int `json:"expected"`
	Worked   int `json:"worked"`
	Balance  int `json:"balance"`
}

// MonthlyStatsDTO is the response of /api/stats/month.
type MonthlyStatsDTO struct {
	Month   string          `json:"month"`
	Days    DayCountDTO     `json:"days"`
	Minutes MinuteTotalsDTO `json:"minutes"`
}

// PeriodStatsDTO is the response of /api/stats/period and /api/stats/quarter.
type PeriodStatsDTO struct {
	Start   string          `json:"start"`
	End     string          `json:"end"`
	Days    DayCountDTO     `json:"days"`
	Minutes MinuteTotalsDTO `json:"minutes"`
}

// HolidayDTO is one expanded holiday occurrence.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toShiftDTO(s worktime.Shift, wt worktime.WorkingTime) ShiftDTO {
	return ShiftDTO{
		ID:          s.ID,
		UserID:      s.UserID,
		StartTime:   s.StartTime.Format(dateTimeLayout),
		EndTime:     s.EndTime.Format(dateTimeLayout),
		Description: s.Description,
		Duration:    toWorkingTimeDTO(wt),
	}
}

func toWorkingTimeDTO(wt worktime.WorkingTime) WorkingTimeDTO {
	return WorkingTimeDTO{
		BaseMinutes:  wt.BaseMinutes,
		NightMinutes: wt.NightMinutes,
		NightHours:   wt.NightHours,
		NightBonus:   wt.NightBonus,
		TotalMinutes: wt.TotalMinutes,
	}
}

func toLeaveDTO(d worktime.NonAccountingDay) LeaveDTO {
	return LeaveDTO{
		ID:        d.ID,
		UserID:    d.UserID,
		Type:      string(d.Type),
		Reason:    d.Reason,
		StartDate: d.StartDate.Format(dateLayout),
		EndDate:   d.EndDate.Format(dateLayout),
	}
}

func toMonthlyStatsDTO(m worktime.MonthlyStats) MonthlyStatsDTO {
	return MonthlyStatsDTO{
		Month:   fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)),
		Days:    toDayCountDTO(m.Days),
		Minutes: toMinuteTotalsDTO(m.Minutes),
	}
}

func toPeriodStatsDTO(p worktime.PeriodStats) PeriodStatsDTO {
	return PeriodStatsDTO{
		Start:   p.Period.Start.Format(dateLayout),
		End:     p.Period.End.Format(dateLayout),
		Days:    toDayCountDTO(p.Days),
		Minutes: toMinuteTotalsDTO(p.Minutes),
	}
}

func toDayCountDTO(d worktime.DayCount) DayCountDTO {
	return DayCountDTO{Total: d.Total, Working: d.Working, NonAccounting: d.NonAccounting, Effective: d.Effective}
}

func toMinuteTotalsDTO(m worktime.MinuteTotals) MinuteTotalsDTO {
	return MinuteTotalsDTO{Expected: m.Expected, Worked: m.Worked, Balance: m.Balance}
}

// =============================================================================
// PARSING
// =============================================================================

func parseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s: %w", dateTimeLayout, err)
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s: %w", dateLayout, err)
	}
	return t, nil
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation(monthLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s: %w", monthLayout, err)
	}
	return t, nil
}
