package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"timely/internal/task"
)

type formField int

const (
	fieldName formField = iota
	fieldCategory
	fieldDue
	fieldImportant
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:      "Task Name",
	fieldCategory:  "Category",
	fieldDue:       "Due Date (YYYY-MM-DD)",
	fieldImportant: "Mark as Important",
}

type formState struct {
	name      textinput.Model
	due       textinput.Model
	category  task.Category
	important bool
	index     formField
}

func newForm(now time.Time, width int) *formState {
	name := textinput.New()
	name.Placeholder = "Task Name"
	name.CharLimit = 256
	name.Width = width

	due := textinput.New()
	due.Placeholder = task.InputDateLayout + " (empty for none)"
	due.CharLimit = len(task.InputDateLayout)
	due.Width = width
	due.SetValue(now.Format(task.InputDateLayout))

	f := &formState{
		name:     name,
		due:      due,
		category: task.Personal,
	}
	f.focus(fieldName)
	return f
}

func (f *formState) focus(field formField) {
	f.index = formField(wrapIndex(int(field), int(fieldCount)))
	f.name.Blur()
	f.due.Blur()
	switch f.index {
	case fieldName:
		f.name.Focus()
	case fieldDue:
		f.due.Focus()
	}
}

func (f *formState) last() bool {
	return f.index == fieldCount-1
}

func (f *formState) view() string {
	values := [fieldCount]string{
		fieldName:      f.name.View(),
		fieldCategory:  fmt.Sprintf("< %s >", f.category),
		fieldDue:       f.due.View(),
		fieldImportant: checkbox(f.important),
	}
	var b strings.Builder
	for i := formField(0); i < fieldCount; i++ {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-22s : %s\n", prefix, fieldLabels[i], values[i]))
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
