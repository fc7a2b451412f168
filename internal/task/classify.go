package task

import "time"

// DefaultSoonDays is the horizon, in days, of the due-soon window.
const DefaultSoonDays = 7

type DueStatus int

const (
	DueNone DueStatus = iota
	DueNormal
	DueSoon
	DueToday
	DueOverdue
)

func (s DueStatus) String() string {
	switch s {
	case DueNormal:
		return "normal"
	case DueSoon:
		return "due-soon"
	case DueToday:
		return "due-today"
	case DueOverdue:
		return "overdue"
	default:
		return "none"
	}
}

// IsDueToday reports whether t is due on now's calendar day, in now's location.
func IsDueToday(t Task, now time.Time) bool {
	if !t.Due.Valid {
		return false
	}
	return sameDay(t.Due.Time.In(now.Location()), now)
}

// IsDueSoon reports whether t falls in (now, now+7 days].
func IsDueSoon(t Task, now time.Time) bool {
	return IsDueWithin(t, now, DefaultSoonDays)
}

// IsDueWithin reports whether t falls in (now, now+days]. The upper bound is
// inclusive.
func IsDueWithin(t Task, now time.Time, days int) bool {
	if !t.Due.Valid {
		return false
	}
	due := t.Due.Time
	return due.After(now) && !due.After(now.AddDate(0, 0, days))
}

// Classify picks the single display status for t. Due-today wins over
// due-soon when both hold.
func Classify(t Task, now time.Time, soonDays int) DueStatus {
	if !t.Due.Valid {
		return DueNone
	}
	if IsDueToday(t, now) {
		return DueToday
	}
	if StartOfDay(t.Due.Time.In(now.Location())).Before(StartOfDay(now)) {
		return DueOverdue
	}
	if IsDueWithin(t, now, soonDays) {
		return DueSoon
	}
	return DueNormal
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
