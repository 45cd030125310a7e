/*
rules.go - Named configuration for the calculation engine

PURPOSE:
  Every constant the algorithms depend on lives here as an explicit,
  validated field: the monthly base, the night window, the bonus formula
  and the effective-days basis. Nothing in the engine hard-codes a magic
  number, so deployments with different labor rules only change a Rules
  value.

BONUS FORMULAS:
  percent:   nightBonus = floor(nightMinutes * BonusPercent)
  per_hour:  nightBonus = floor(nightMinutes / 60) * BonusMinutesPerHour

  The default is the percent formula (20% of night minutes) with a
  22:00-05:00 window; the per-hour variant (10 min per completed night
  hour) is kept as a configured alternative.

EFFECTIVE-DAYS BASIS:
  calendar:  effectiveDays = calendarDaysInMonth - nonAccountingDays
  business:  effectiveDays = businessDaysInMonth - nonAccountingDays

  The basis changes the expected-hours total, so it is a product-level
  choice, not an implementation detail. Default: calendar.
*/
package worktime

import "github.com/shopspring/decimal"

// BaseMonthlyHours is the fixed monthly workload expected hours are
// pro-rated from.
const BaseMonthlyHours = 160

// =============================================================================
// FORMULA SELECTORS
// =============================================================================

// BonusFormula selects how night minutes convert into bonus minutes.
type BonusFormula string

const (
	BonusPercentOfNightMinutes BonusFormula = "percent"
	BonusMinutesPerNightHour   BonusFormula = "per_hour"
)

// EffectiveDaysBasis selects which day count the monthly pro-ration
// subtracts non-accounting days from.
type EffectiveDaysBasis string

const (
	BasisCalendarDays EffectiveDaysBasis = "calendar"
	BasisBusinessDays EffectiveDaysBasis = "business"
)

// =============================================================================
// RULES
// =============================================================================

// Rules is the full configuration surface of the engine.
type Rules struct {
	// Monthly base workload in hours, pro-rated by effective days.
	BaseMonthlyHours int

	// Night window and premium formula.
	Night               NightWindow
	BonusFormula        BonusFormula
	BonusPercent        decimal.Decimal // used by the percent formula, e.g. 0.20
	BonusMinutesPerHour int             // used by the per_hour formula, e.g. 10

	EffectiveDaysBasis EffectiveDaysBasis
}

// DefaultRules returns the canonical rule set: 160h monthly base,
// 22:00-05:00 night window, 20%-of-night-minutes bonus, calendar basis.
func DefaultRules() Rules {
	return Rules{
		BaseMonthlyHours:    BaseMonthlyHours,
		Night:               NightWindow{StartHour: 22, EndHour: 5},
		BonusFormula:        BonusPercentOfNightMinutes,
		BonusPercent:        decimal.NewFromFloat(0.20),
		BonusMinutesPerHour: 10,
		EffectiveDaysBasis:  BasisCalendarDays,
	}
}

// Validate checks every rule field. Returns a *RulesError wrapping
// ErrInvalidRules on the first malformed field.
func (r Rules) Validate() error {
	if r.BaseMonthlyHours <= 0 {
		return &RulesError{Field: "base_monthly_hours", Detail: "must be positive"}
	}
	if err := r.Night.Validate(); err != nil {
		return err
	}
	switch r.BonusFormula {
	case BonusPercentOfNightMinutes:
		if r.BonusPercent.IsNegative() {
			return &RulesError{Field: "bonus_percent", Detail: "must not be negative"}
		}
	case BonusMinutesPerNightHour:
		if r.BonusMinutesPerHour < 0 {
			return &RulesError{Field: "bonus_minutes_per_hour", Detail: "must not be negative"}
		}
	default:
		return &RulesError{Field: "bonus_formula", Detail: "must be \"percent\" or \"per_hour\""}
	}
	switch r.EffectiveDaysBasis {
	case BasisCalendarDays, BasisBusinessDays:
	default:
		return &RulesError{Field: "effective_days_basis", Detail: "must be \"calendar\" or \"business\""}
	}
	return nil
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator binds a validated rule set to the calculation operations.
// It is stateless and safe for concurrent use.
type Calculator struct {
	rules Rules
}

// NewCalculator validates the rules and returns a calculator.
func NewCalculator(rules Rules) (*Calculator, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{rules: rules}, nil
}

// Rules returns a copy of the calculator's rule set.
func (c *Calculator) Rules() Rules { return c.rules }
