package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponto/worktime-engine/config"
	"github.com/ponto/worktime-engine/worktime"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worktime.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "worktime.db", cfg.Database.Path)
	assert.Equal(t, 160, cfg.Rules.BaseMonthlyHours)
	assert.Equal(t, "percent", cfg.Rules.BonusFormula)
	assert.Len(t, cfg.Holidays.Rules, 3)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
rules:
  night_start_hour: 23
  bonus_formula: per_hour
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 23, cfg.Rules.NightStartHour)
	assert.Equal(t, "per_hour", cfg.Rules.BonusFormula)
	// Untouched fields keep their defaults.
	assert.Equal(t, "worktime.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Rules.NightEndHour)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)
	t.Setenv("WORKTIME_PORT", "7070")
	t.Setenv("WORKTIME_DB", "/tmp/override.db")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}

func TestLoad_MalformedPortEnvIsAnError(t *testing.T) {
	t.Setenv("WORKTIME_PORT", "eight-thousand")

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKTIME_PORT")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct{ name, body string }{
		{"port out of range", "server:\n  port: 99999\n"},
		{"unknown bonus formula", "rules:\n  bonus_formula: flat\n"},
		{"unknown basis", "rules:\n  effective_days_basis: lunar\n"},
		{"broken holiday rrule", "holidays:\n  rules:\n    - name: Broken\n      rrule: FREQ=SOMETIMES\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAMLIsAnError(t *testing.T) {
	_, err := config.Load(writeConfig(t, "server: [not a mapping"))
	assert.Error(t, err)
}

func TestEngineRules_Conversion(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.NightStartHour = 23
	cfg.Rules.BonusFormula = "per_hour"
	cfg.Rules.BonusMinutesPerHour = 15

	rules, err := cfg.EngineRules()
	require.NoError(t, err)

	assert.Equal(t, worktime.NightWindow{StartHour: 23, EndHour: 5}, rules.Night)
	assert.Equal(t, worktime.BonusMinutesPerNightHour, rules.BonusFormula)
	assert.Equal(t, 15, rules.BonusMinutesPerHour)
	assert.Equal(t, worktime.BasisCalendarDays, rules.EffectiveDaysBasis)
}

func TestEngineRules_RejectsNonSpanningWindow(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.NightStartHour = 3
	cfg.Rules.NightEndHour = 5

	_, err := cfg.EngineRules()
	assert.ErrorIs(t, err, worktime.ErrInvalidRules)
}

func TestHolidayCalendar_CompilesConfiguredRules(t *testing.T) {
	cfg := config.Default()
	cal, err := cfg.HolidayCalendar()
	require.NoError(t, err)
	assert.NotNil(t, cal)
}
