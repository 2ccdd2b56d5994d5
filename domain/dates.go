package domain

import "time"

// DueDateLayout is the date-only form used for task due dates.
const DueDateLayout = "2006-01-02"

// ParseDueDate parses a yyyy-MM-dd due date. Malformed or empty values
// report false; callers treat those tasks as having no deadline.
func ParseDueDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDueDate renders a date-only due date string.
func FormatDueDate(t time.Time) string {
	return t.Format(DueDateLayout)
}

// DaysBetween returns the number of calendar days from a to b, ignoring the
// time of day of both. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / (24 * time.Hour))
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
