package timeutil

import (
	"strings"
	"time"
)

// NormalizeTimeInput reshapes free-text time input into the progressive
// HH:MM mask used by the schedule editor. It strips every non-digit
// character, caps the result at four digits and inserts a colon after the
// second digit once a third one exists. It never rejects input: one or two
// digits pass through unseparated ("9" stays "9", "09" stays "09").
func NormalizeTimeInput(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 4 {
				break
			}
		}
	}

	limited := digits.String()
	if len(limited) <= 2 {
		return limited
	}
	return limited[:2] + ":" + limited[2:]
}

// DayBounds returns the inclusive [00:00:00, 23:59:59] range of t's
// calendar day, in t's location. Date components are used verbatim so the
// range lines up with midday-anchored storage without timezone drift.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end := time.Date(y, m, d, 23, 59, 59, 0, t.Location())
	return start, end
}

// DayOfWeek returns the weekday index of t, 0 = Sunday.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// MiddayAnchor pins t to 12:00:00 of its calendar day so the stored
// timestamp cannot shift across a date boundary when converted.
func MiddayAnchor(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
