package contract

import "time"

// DateFormat is the scope-date representation used in requests, snapshot
// file names and result provenance.
const DateFormat = "2006-01-02"

// DueSoonDays is the window for "due soon": due within this many calendar
// days, inclusive of today.
const DueSoonDays = 3

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) string {
	return t.Format(DateFormat)
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsOverdue reports whether due falls on a calendar day strictly before today.
func IsOverdue(due, now time.Time) bool {
	return startOfDay(due).Before(startOfDay(now))
}

// IsDueSoon reports whether due falls within DueSoonDays calendar days of
// now, inclusive of today. Overdue tasks are not "due soon".
func IsDueSoon(due, now time.Time) bool {
	dueDay := startOfDay(due)
	today := startOfDay(now)
	limit := today.AddDate(0, 0, DueSoonDays)
	return !dueDay.Before(today) && !dueDay.After(limit)
}

// WithinWorkingHours reports whether now's wall-clock hour is inside the
// [startHour, endHour) window.
func WithinWorkingHours(now time.Time, startHour, endHour int) bool {
	h := now.Hour()
	return h >= startHour && h < endHour
}

// CompareScopeDate classifies a scope date against today: -1 past, 0 today,
// +1 future. The scopeDate must already be validated as DateFormat.
func CompareScopeDate(scopeDate string, now time.Time) int {
	today := DateOf(now)
	switch {
	case scopeDate < today:
		return -1
	case scopeDate > today:
		return 1
	default:
		return 0
	}
}
