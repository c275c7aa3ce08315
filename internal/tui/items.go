package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/dith08/FinBits-sub000/internal/tracker"
)

type habitItem struct {
	view tracker.HabitView
}

func (i habitItem) Title() string {
	title := fmt.Sprintf("[ ] %s", i.view.Name)
	if i.view.Done {
		title = "[x] " + doneStyle.Render(i.view.Name)
	}
	return title
}

func (i habitItem) Description() string {
	desc := i.view.Frequency
	if desc == "" {
		desc = "habit"
	}
	if i.view.Done {
		desc += fmt.Sprintf(" | resets in %s", i.view.Remaining)
	}
	return desc
}

func (i habitItem) FilterValue() string { return i.view.Name }

type todoItem struct {
	view tracker.TodoView
}

func (i todoItem) Title() string {
	title := fmt.Sprintf("[ ] %s", i.view.Name)
	if i.view.Done {
		title = "[x] " + doneStyle.Render(i.view.Name)
	}
	return title
}

func (i todoItem) Description() string {
	desc := string(i.view.Status)
	if i.view.EndDate != "" {
		desc += " | due " + i.view.EndDate
	}
	if i.view.Done {
		desc += fmt.Sprintf(" | resets in %s", i.view.Remaining)
	}
	return desc
}

func (i todoItem) FilterValue() string { return i.view.Name }

func habitItems(views []tracker.HabitView) []list.Item {
	items := make([]list.Item, 0, len(views))
	for _, view := range views {
		items = append(items, habitItem{view: view})
	}
	return items
}

func todoItems(views []tracker.TodoView) []list.Item {
	items := make([]list.Item, 0, len(views))
	for _, view := range views {
		items = append(items, todoItem{view: view})
	}
	return items
}
