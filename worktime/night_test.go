package worktime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ponto/worktime-engine/worktime"
)

func TestNightWindow_IsNightMinute(t *testing.T) {
	w := worktime.NightWindow{StartHour: 22, EndHour: 5}

	tests := []struct {
		hour  int
		min   int
		night bool
	}{
		{21, 59, false},
		{22, 0, true},
		{23, 30, true},
		{0, 0, true},
		{4, 59, true},
		{5, 0, false},
		{12, 0, false},
	}

	for _, tc := range tests {
		got := w.IsNightMinute(worktime.DateTime(2024, time.June, 10, tc.hour, tc.min))
		assert.Equal(t, tc.night, got, "%02d:%02d", tc.hour, tc.min)
	}
}

func TestNightWindow_Validate(t *testing.T) {
	assert.NoError(t, worktime.NightWindow{StartHour: 22, EndHour: 5}.Validate())
	assert.NoError(t, worktime.NightWindow{StartHour: 23, EndHour: 5}.Validate())

	// Out of range hours
	assert.ErrorIs(t, worktime.NightWindow{StartHour: 24, EndHour: 5}.Validate(), worktime.ErrInvalidRules)
	assert.ErrorIs(t, worktime.NightWindow{StartHour: 22, EndHour: -1}.Validate(), worktime.ErrInvalidRules)

	// Window must span midnight
	assert.ErrorIs(t, worktime.NightWindow{StartHour: 5, EndHour: 22}.Validate(), worktime.ErrInvalidRules)
	assert.ErrorIs(t, worktime.NightWindow{StartHour: 5, EndHour: 5}.Validate(), worktime.ErrInvalidRules)
}
