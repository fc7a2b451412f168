package task

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// InputDateLayout is the layout accepted by ParseDueDate.
	InputDateLayout = "2006-01-02"

	mediumDateLayout = "Jan 2, 2006"
	importantMarker  = "⭐️ "
)

// FormatDueDate renders the date part of d in medium style, e.g. "Jan 5, 2025".
func FormatDueDate(d time.Time) string {
	return d.Format(mediumDateLayout)
}

// PriorityIndicator returns the marker prepended to important task names.
func PriorityIndicator(t Task) string {
	if t.Important {
		return importantMarker
	}
	return ""
}

// DisplayName is the task name with its priority marker.
func DisplayName(t Task) string {
	return PriorityIndicator(t) + t.Name
}

// RelativeDue describes the due day relative to today, e.g. "3 days from now".
func RelativeDue(d, now time.Time) string {
	due := StartOfDay(d.In(now.Location()))
	today := StartOfDay(now)
	if due.Equal(today) {
		return "today"
	}
	return humanize.RelTime(due, today, "ago", "from now")
}

// ParseDueDate reads a YYYY-MM-DD day in now's location. Blank input means no
// due date. Days before today are rejected.
func ParseDueDate(s string, now time.Time) (sql.NullTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullTime{}, nil
	}
	d, err := time.ParseInLocation(InputDateLayout, s, now.Location())
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	if d.Before(StartOfDay(now)) {
		return sql.NullTime{}, fmt.Errorf("%w: %s", ErrDueInPast, s)
	}
	return DueOn(d), nil
}
