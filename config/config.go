// Package config loads the application configuration from YAML with
// environment overrides. An absent file yields runnable defaults; a present
// but malformed file is an error.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/ponto/worktime-engine/calendar"
	"github.com/ponto/worktime-engine/worktime"
)

// DefaultPath is used when no explicit config path is given and
// WORKTIME_CONFIG is unset.
const DefaultPath = "worktime.yaml"

// HolidayRule mirrors calendar.Rule in the config file.
type HolidayRule struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config is the application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port" validate:"min=1,max=65535"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path" validate:"required"`
	} `yaml:"database"`

	Rules struct {
		BaseMonthlyHours    int     `yaml:"base_monthly_hours" validate:"min=1"`
		NightStartHour      int     `yaml:"night_start_hour" validate:"min=0,max=23"`
		NightEndHour        int     `yaml:"night_end_hour" validate:"min=0,max=23"`
		BonusFormula        string  `yaml:"bonus_formula" validate:"oneof=percent per_hour"`
		BonusPercent        float64 `yaml:"bonus_percent" validate:"min=0"`
		BonusMinutesPerHour int     `yaml:"bonus_minutes_per_hour" validate:"min=0"`
		EffectiveDaysBasis  string  `yaml:"effective_days_basis" validate:"oneof=calendar business"`
	} `yaml:"rules"`

	Holidays struct {
		// When true, stats queries merge expanded public holidays into the
		// non-accounting day list.
		IncludeInStats bool          `yaml:"include_in_stats"`
		Rules          []HolidayRule `yaml:"rules" validate:"dive"`
	} `yaml:"holidays"`
}

var validate = validator.New()

// Default returns the built-in configuration: port 8080, worktime.db, the
// engine's DefaultRules and the calendar's default holiday set.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Database.Path = "worktime.db"

	rules := worktime.DefaultRules()
	cfg.Rules.BaseMonthlyHours = rules.BaseMonthlyHours
	cfg.Rules.NightStartHour = rules.Night.StartHour
	cfg.Rules.NightEndHour = rules.Night.EndHour
	cfg.Rules.BonusFormula = string(rules.BonusFormula)
	cfg.Rules.BonusPercent, _ = rules.BonusPercent.Float64()
	cfg.Rules.BonusMinutesPerHour = rules.BonusMinutesPerHour
	cfg.Rules.EffectiveDaysBasis = string(rules.EffectiveDaysBasis)

	for _, r := range calendar.DefaultRules() {
		cfg.Holidays.Rules = append(cfg.Holidays.Rules, HolidayRule{ID: r.ID, Name: r.Name, RRule: r.RRule})
	}
	return cfg
}

// Load reads the config file at path (or DefaultPath / WORKTIME_CONFIG when
// empty), layers environment overrides on top and validates the result.
// A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WORKTIME_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides with defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers WORKTIME_PORT and WORKTIME_DB over the file values.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("WORKTIME_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WORKTIME_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("WORKTIME_DB"); v != "" {
		cfg.Database.Path = v
	}
	return nil
}

// Validate runs struct validation and checks every holiday RRULE parses.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	for i, rule := range cfg.Holidays.Rules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in holidays.rules[%d] (%s): %w", i, rule.Name, err)
		}
	}
	return nil
}

// EngineRules converts the config section into validated engine rules.
func (c *Config) EngineRules() (worktime.Rules, error) {
	rules := worktime.Rules{
		BaseMonthlyHours: c.Rules.BaseMonthlyHours,
		Night: worktime.NightWindow{
			StartHour: c.Rules.NightStartHour,
			EndHour:   c.Rules.NightEndHour,
		},
		BonusFormula:        worktime.BonusFormula(c.Rules.BonusFormula),
		BonusPercent:        decimal.NewFromFloat(c.Rules.BonusPercent),
		BonusMinutesPerHour: c.Rules.BonusMinutesPerHour,
		EffectiveDaysBasis:  worktime.EffectiveDaysBasis(c.Rules.EffectiveDaysBasis),
	}
	if err := rules.Validate(); err != nil {
		return worktime.Rules{}, err
	}
	return rules, nil
}

// HolidayCalendar compiles the configured holiday rules.
func (c *Config) HolidayCalendar() (*calendar.Calendar, error) {
	rules := make([]calendar.Rule, 0, len(c.Holidays.Rules))
	for _, r := range c.Holidays.Rules {
		rules = append(rules, calendar.Rule{ID: r.ID, Name: r.Name, RRule: r.RRule})
	}
	return calendar.New(rules)
}
