// Package task holds the to-do data model and the pure functions that
// classify, order and format tasks for display.
package task

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	Personal Category = "Personal"
	School   Category = "School"
	Work     Category = "Work"
)

var categories = []Category{Personal, School, Work}

// Categories returns every category in declared order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches s against the category labels, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) Valid() bool {
	return c.index() >= 0
}

// Next returns the following category, wrapping after the last one.
func (c Category) Next() Category {
	return categories[(c.index()+1)%len(categories)]
}

// Prev returns the preceding category, wrapping before the first one.
func (c Category) Prev() Category {
	i := c.index()
	if i < 0 {
		i = 0
	}
	return categories[(i+len(categories)-1)%len(categories)]
}

func (c Category) String() string {
	return string(c)
}

func (c Category) index() int {
	for i, v := range categories {
		if v == c {
			return i
		}
	}
	return -1
}

type Task struct {
	ID        uuid.UUID
	Name      string
	Category  Category
	Due       sql.NullTime
	Important bool
}

// New builds a task with a fresh id. Name validation is left to the store.
func New(name string, category Category, due sql.NullTime, important bool) Task {
	return Task{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		Due:       due,
		Important: important,
	}
}

// DueOn is a convenience for building a present due date.
func DueOn(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}
