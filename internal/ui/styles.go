package ui

import (
	"github.com/charmbracelet/lipgloss"

	"timely/internal/task"
)

type categoryStyle struct {
	label string
	color lipgloss.Color
}

var categoryStyles = map[task.Category]categoryStyle{
	task.Personal: {label: "Personal", color: lipgloss.Color("2")},
	task.School:   {label: "School", color: lipgloss.Color("4")},
	task.Work:     {label: "Work", color: lipgloss.Color("5")},
}

var dueColors = map[task.DueStatus]lipgloss.Color{
	task.DueOverdue: lipgloss.Color("1"),
	task.DueToday:   lipgloss.Color("1"),
	task.DueSoon:    lipgloss.Color("3"),
	task.DueNormal:  lipgloss.Color("245"),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	detailTitle   = lipgloss.NewStyle().Bold(true).Underline(true)
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func categoryBadge(c task.Category) string {
	cs, ok := categoryStyles[c]
	if !ok {
		cs = categoryStyle{label: string(c), color: lipgloss.Color("245")}
	}
	return lipgloss.NewStyle().Foreground(cs.color).Padding(0, 1).Render(cs.label)
}

func dueBadge(text string, status task.DueStatus) string {
	color, ok := dueColors[status]
	if !ok {
		color = dueColors[task.DueNormal]
	}
	s := lipgloss.NewStyle().Foreground(color).Padding(0, 1)
	if status == task.DueToday || status == task.DueOverdue {
		s = s.Bold(true)
	}
	return s.Render(text)
}
