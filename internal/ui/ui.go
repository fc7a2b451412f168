package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"timely/internal/config"
	"timely/internal/storage"
	"timely/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeAdd
)

const (
	defaultInputWidth = 40
	listHint          = "Press 'a' to add, enter for details, q to quit."
)

type Model struct {
	store    *storage.Store
	cfg      config.Config
	logger   *log.Logger
	now      func() time.Time
	groups   []task.Group
	tasks    []task.Task
	cursor   int
	mode     mode
	form     *formState
	selected *task.Task
	status   string
	width    int
}

type Option func(*Model)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// New builds the model over store and loads the current tasks.
func New(store *storage.Store, cfg config.Config, opts ...Option) (Model, error) {
	m := Model{
		store:  store,
		cfg:    cfg,
		logger: log.New(io.Discard),
		now:    time.Now,
		mode:   modeList,
		status: listHint,
		width:  defaultInputWidth,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if err := m.reload(); err != nil {
		return m, err
	}
	return m, nil
}

func Run(store *storage.Store, cfg config.Config, opts ...Option) error {
	m, err := New(store, cfg, opts...)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		case modeDetail:
			return m.updateDetailMode(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.width = msg.Width - 10
			if m.form != nil {
				m.form.name.Width = m.width
				m.form.due.Width = m.width
			}
		}
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.tasks) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.tasks))
		}
	case m.cfg.Keys.Add:
		m.form = newForm(m.now(), m.width)
		m.mode = modeAdd
		m.status = "New task: tab to move, enter to advance, esc to cancel"
	case m.cfg.Keys.Detail:
		if len(m.tasks) == 0 {
			m.status = "No tasks"
			return m, nil
		}
		t, err := m.store.Get(m.tasks[m.cursor].ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				m.status = "Task no longer exists"
			} else {
				m.status = fmt.Sprintf("load failed: %v", err)
			}
			if err := m.reload(); err == nil {
				m.cursor = clampCursor(m.cursor, len(m.tasks))
			}
			return m, nil
		}
		m.selected = &t
		m.mode = modeDetail
		m.status = fmt.Sprintf("%s mark complete • %s back", m.cfg.Keys.Complete, m.cfg.Keys.Cancel)
	}
	return m, nil
}

func (m Model) updateDetailMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "backspace":
		m.selected = nil
		m.mode = modeList
		m.status = listHint
	case m.cfg.Keys.Complete:
		if m.selected == nil {
			m.mode = modeList
			return m, nil
		}
		done := *m.selected
		if err := m.store.Remove(done.ID); err != nil {
			m.logger.Error("complete task", "id", done.ID, "err", err)
			m.status = fmt.Sprintf("complete failed: %v", err)
			return m, nil
		}
		m.selected = nil
		m.mode = modeList
		if err := m.reload(); err != nil {
			m.status = fmt.Sprintf("reload failed: %v", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.tasks))
		m.status = fmt.Sprintf("Completed \"%s\"", done.Name)
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.mode = modeList
		return m, nil
	}
	switch key {
	case m.cfg.Keys.Cancel:
		m.form = nil
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		f.focus(f.index + 1)
		return m, nil
	case "shift+tab", "up":
		f.focus(f.index - 1)
		return m, nil
	case m.cfg.Keys.Confirm:
		if f.last() {
			return m.submitForm()
		}
		f.focus(f.index + 1)
		return m, nil
	}

	switch f.index {
	case fieldCategory:
		switch key {
		case "right", "l", m.cfg.Keys.Toggle:
			f.category = f.category.Next()
		case "left", "h":
			f.category = f.category.Prev()
		}
		return m, nil
	case fieldImportant:
		switch key {
		case m.cfg.Keys.Toggle, "left", "right", "h", "l", "y", "n":
			f.important = nextImportant(f.important, key)
		}
		return m, nil
	case fieldDue:
		var cmd tea.Cmd
		f.due, cmd = f.due.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return m, cmd
	}
}

func nextImportant(cur bool, key string) bool {
	switch key {
	case "y":
		return true
	case "n":
		return false
	default:
		return !cur
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		m.status = "Task name cannot be empty"
		f.focus(fieldName)
		return m, nil
	}
	due, err := task.ParseDueDate(f.due.Value(), m.now())
	if err != nil {
		switch {
		case errors.Is(err, task.ErrDueInPast):
			m.status = "Due date cannot be in the past"
		default:
			m.status = fmt.Sprintf("Due date must look like %s", task.InputDateLayout)
		}
		f.focus(fieldDue)
		return m, nil
	}

	t := task.New(name, f.category, due, f.important)
	if err := m.store.Add(t); err != nil {
		m.logger.Warn("add task", "name", name, "err", err)
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.form = nil
	m.mode = modeList
	if err := m.reload(); err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return m, nil
	}
	m.cursor = clampCursor(m.indexOf(t), len(m.tasks))
	m.status = "Added task"
	return m, nil
}

func (m *Model) reload() error {
	tasks, err := m.store.List()
	if err != nil {
		return err
	}
	m.groups = task.GroupAndSort(tasks, task.Categories())
	m.tasks = task.Flatten(m.groups)
	return nil
}

func (m Model) indexOf(t task.Task) int {
	for i, cur := range m.tasks {
		if cur.ID == t.ID {
			return i
		}
	}
	return 0
}

func (m Model) dueStatus(t task.Task) task.DueStatus {
	return task.Classify(t, m.now(), m.cfg.SoonDays)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("My To-do List"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("No tasks yet. Press '" + m.cfg.Keys.Add + "' to add one.")
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n---\n")

	switch m.mode {
	case modeAdd:
		if m.form != nil {
			b.WriteString(titleStyle.Render("Add New Task"))
			b.WriteString("\n\n")
			b.WriteString(m.form.view())
		}
	case modeDetail:
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.renderHelp()))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	i := 0
	for _, g := range m.groups {
		for _, t := range g.Tasks {
			cursor := " "
			if m.cursor == i && m.mode == modeList {
				cursor = ">"
			}
			b.WriteString(m.renderRow(cursor, t))
			b.WriteString("\n")
			i++
		}
	}
	return b.String()
}

func (m Model) renderRow(cursor string, t task.Task) string {
	parts := []string{cursor, nameStyle.Render(task.DisplayName(t)), categoryBadge(t.Category)}
	if t.Due.Valid {
		parts = append(parts, dueBadge(task.FormatDueDate(t.Due.Time), m.dueStatus(t)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderDetail() string {
	if m.selected == nil {
		return "No task selected\n"
	}
	t := *m.selected
	var b strings.Builder
	b.WriteString(categoryBadge(t.Category))
	b.WriteString("\n")
	b.WriteString(detailTitle.Render(task.DisplayName(t)))
	b.WriteString("\n")
	if t.Due.Valid {
		now := m.now()
		b.WriteString(fmt.Sprintf("Due %s (%s)\n", task.FormatDueDate(t.Due.Time), task.RelativeDue(t.Due.Time, now)))
	} else {
		b.WriteString("No due date\n")
	}
	b.WriteString("\n")
	b.WriteString(completeStyle.Render(fmt.Sprintf("[%s] Mark as Complete", m.cfg.Keys.Complete)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	switch m.mode {
	case modeAdd:
		return fmt.Sprintf("tab/shift+tab move • left/right pick category • %s toggle important • %s next/save • %s cancel",
			keyName(k.Toggle), k.Confirm, k.Cancel)
	case modeDetail:
		return fmt.Sprintf("%s mark complete • %s back • ctrl+c quit", k.Complete, k.Cancel)
	default:
		return fmt.Sprintf("%s/%s move • %s add • %s detail • %s quit", k.Up, k.Down, k.Add, k.Detail, k.Quit)
	}
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
