package ui

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timely/internal/config"
	"timely/internal/storage"
	"timely/internal/task"
)

var fixedNow = time.Date(2025, time.January, 5, 10, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, seed ...task.Task) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	for _, tk := range seed {
		require.NoError(t, store.Add(tk))
	}
	m, err := New(store, config.Default(), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return m, store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func taskNames(ts []task.Task) []string {
	out := make([]string, 0, len(ts))
	for _, tk := range ts {
		out = append(out, tk.Name)
	}
	return out
}

func TestEmptyListShowsHint(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "My To-do List")
	assert.Contains(t, view, "No tasks yet. Press 'a' to add one.")
}

func TestAddImportantTaskDueToday(t *testing.T) {
	m, store := newTestModel(t,
		task.New("Plain chore", task.Work, task.DueOn(task.StartOfDay(fixedNow)), false),
	)

	m = press(t, m, "a")
	require.Equal(t, modeAdd, m.mode)
	m = press(t, m, "Submit report", "enter", "right", "right", "enter", "enter", "space", "enter")

	require.Equal(t, modeList, m.mode)
	assert.Equal(t, "Added task", m.status)

	all, err := store.List()
	require.NoError(t, err)
	require.Len(t, all, 2)

	work := m.groups[2]
	require.Equal(t, task.Work, work.Category)
	require.Len(t, work.Tasks, 2)
	first := work.Tasks[0]
	assert.Equal(t, "Submit report", first.Name)
	assert.True(t, first.Important)
	assert.Equal(t, task.DueToday, m.dueStatus(first))
	assert.Equal(t, 0, m.cursor)

	view := m.View()
	assert.Contains(t, view, "⭐️ Submit report")
	assert.Contains(t, view, "Jan 5, 2025")
	assert.Less(t, strings.Index(view, "Submit report"), strings.Index(view, "Plain chore"))
}

func TestImportantSortsBeforeEarlierDueDate(t *testing.T) {
	day := task.StartOfDay(fixedNow)
	m, _ := newTestModel(t,
		task.New("Tomorrow task", task.Work, task.DueOn(day.AddDate(0, 0, 1)), false),
		task.New("Important later", task.Work, task.DueOn(day.AddDate(0, 0, 10)), true),
	)
	assert.Equal(t, []string{"Important later", "Tomorrow task"}, taskNames(m.tasks))
	assert.Equal(t, task.DueNormal, m.dueStatus(m.tasks[0]))
	assert.Equal(t, task.DueSoon, m.dueStatus(m.tasks[1]))
}

func TestTaskWithoutDueDate(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "a", "Read book", "enter", "right", "enter", "ctrl+u", "enter", "enter")
	require.Equal(t, modeList, m.mode)

	require.Len(t, m.groups[1].Tasks, 1)
	tk := m.groups[1].Tasks[0]
	assert.Equal(t, task.School, tk.Category)
	assert.False(t, tk.Due.Valid)
	assert.False(t, task.IsDueToday(tk, fixedNow))
	assert.False(t, task.IsDueSoon(tk, fixedNow))
	assert.Equal(t, task.DueNone, m.dueStatus(tk))

	for _, line := range strings.Split(m.View(), "\n") {
		if strings.Contains(line, "Read book") {
			assert.NotContains(t, line, "2025")
		}
	}
}

func TestMarkComplete(t *testing.T) {
	done := task.New("Done soon", task.Personal, sql.NullTime{}, false)
	keep := task.New("Still open", task.Work, sql.NullTime{}, false)
	m, store := newTestModel(t, done, keep)

	m = press(t, m, "enter")
	require.Equal(t, modeDetail, m.mode)
	require.NotNil(t, m.selected)
	assert.Equal(t, done.ID, m.selected.ID)
	assert.Contains(t, m.View(), "Mark as Complete")

	m = press(t, m, "c")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, `Completed "Done soon"`, m.status)
	assert.Equal(t, []string{"Still open"}, taskNames(m.tasks))

	_, err := store.Get(done.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NotContains(t, m.renderTaskList(), "Done soon")
}

func TestDetailOfRemovedTask(t *testing.T) {
	gone := task.New("Gone", task.Personal, sql.NullTime{}, false)
	m, store := newTestModel(t, gone, task.New("Here", task.Work, sql.NullTime{}, false))
	require.NoError(t, store.Remove(gone.ID))

	m = press(t, m, "enter")
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.selected)
	assert.Equal(t, "Task no longer exists", m.status)
	assert.Equal(t, []string{"Here"}, taskNames(m.tasks))
	assert.Equal(t, 0, m.cursor)
}

func TestDetailShowsDueDate(t *testing.T) {
	due := task.StartOfDay(fixedNow).AddDate(0, 0, 3)
	m, _ := newTestModel(t, task.New("Exam", task.School, task.DueOn(due), true))

	m = press(t, m, "enter")
	view := m.View()
	assert.Contains(t, view, "⭐️ Exam")
	assert.Contains(t, view, "Jan 8, 2025")
	assert.Contains(t, view, "3 days from now")

	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.selected)
}

func TestEmptyNameIsRejected(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "a", "   ", "tab", "tab", "tab", "enter")

	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, "Task name cannot be empty", m.status)
	assert.Equal(t, fieldName, m.form.index)
	all, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPastDueDateIsRejected(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "a", "Late", "tab", "tab", "ctrl+u", "2025-01-01", "tab", "enter")

	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, "Due date cannot be in the past", m.status)
	assert.Equal(t, fieldDue, m.form.index)
	all, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCancelAddForm(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "a", "Nope", "esc")

	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.form)
	assert.Equal(t, "Cancelled", m.status)
	all, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFormFieldNavigationWraps(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "a", "shift+tab")
	assert.Equal(t, fieldImportant, m.form.index)
	m = press(t, m, "tab")
	assert.Equal(t, fieldName, m.form.index)

	m = press(t, m, "tab", "left")
	assert.Equal(t, task.Work, m.form.category)
	m = press(t, m, "space")
	assert.Equal(t, task.Personal, m.form.category)
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t,
		task.New("one", task.Personal, sql.NullTime{}, false),
		task.New("two", task.School, sql.NullTime{}, false),
	)
	m = press(t, m, "j")
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, "j", "down")
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, "k", "up")
	assert.Equal(t, 0, m.cursor)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(3, 0))
	assert.Equal(t, 0, clampCursor(-1, 4))
	assert.Equal(t, 3, clampCursor(9, 4))
	assert.Equal(t, 2, clampCursor(2, 4))
}
