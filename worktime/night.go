package worktime

import "time"

// =============================================================================
// NIGHT WINDOW - Minute-of-day classification
// =============================================================================

// NightWindow is the clock-hour range during which worked minutes earn a
// premium. The window always spans midnight (e.g. 22:00-05:00), so
// classification only needs the hour component: no date math, and a shift
// rolling over to the next day is handled by the caller adjusting the end
// timestamp, not by the classifier.
type NightWindow struct {
	StartHour int // first hour inside the window, e.g. 22
	EndHour   int // first hour outside the window, e.g. 5
}

// IsNightMinute reports whether the timestamp's minute falls inside the
// window: hour >= StartHour OR hour < EndHour.
func (w NightWindow) IsNightMinute(t time.Time) bool {
	h := t.Hour()
	return h >= w.StartHour || h < w.EndHour
}

// Validate ensures the window is a midnight-spanning hour range.
func (w NightWindow) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return &RulesError{Field: "night_start_hour", Detail: "must be between 0 and 23"}
	}
	if w.EndHour < 0 || w.EndHour > 23 {
		return &RulesError{Field: "night_end_hour", Detail: "must be between 0 and 23"}
	}
	if w.StartHour <= w.EndHour {
		// A same-day window would make the hour-only test meaningless.
		return &RulesError{Field: "night_start_hour", Detail: "window must span midnight (start > end)"}
	}
	return nil
}
