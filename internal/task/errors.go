package task

import "errors"

var (
	// ErrUnknownCategory is returned when a label matches no category.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrDueInPast is returned when a due date falls before today.
	ErrDueInPast = errors.New("due date is in the past")

	// ErrInvalidDueDate is returned when a due date cannot be parsed.
	ErrInvalidDueDate = errors.New("invalid due date")
)
