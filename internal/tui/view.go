package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dith08/FinBits-sub000/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.confirm != nil {
		return m.confirm.View()
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.focusedView())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderTabs() string {
	habits := inactiveTabStyle.Render("Habits")
	todos := inactiveTabStyle.Render("To-dos")
	if m.pane == PaneHabits {
		habits = activeTabStyle.Render("Habits")
	} else {
		todos = activeTabStyle.Render("To-dos")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, habits, " ", todos)
}

func (m Model) focusedView() string {
	if m.pane == PaneTodos {
		return m.todoList.View()
	}
	return m.habitList.View()
}

func (m Model) renderStatus() string {
	if m.loadErr != "" {
		return errorStyle.Render("Sync failed: " + m.loadErr)
	}
	if m.lastSync.IsZero() {
		return statusStyle.Render("Syncing...")
	}
	return statusStyle.Render(fmt.Sprintf("Synced %s", m.lastSync.Format(constants.TimeFormat)))
}
