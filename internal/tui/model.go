package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dith08/FinBits-sub000/internal/models"
	"github.com/dith08/FinBits-sub000/internal/tracker"
)

// Pane selects which list has focus.
type Pane int

const (
	PaneHabits Pane = iota
	PaneTodos
)

// Service is what the TUI needs from the remote API.
type Service interface {
	tracker.Remote
	ListHabits(ctx context.Context) ([]models.Habit, error)
	ListTodos(ctx context.Context) ([]models.Todo, error)
}

// pendingUnmark remembers which item awaits confirmation before its
// cooldown is bypassed.
type pendingUnmark struct {
	kind models.Kind
	id   int
}

type Model struct {
	tracker *tracker.Tracker
	service Service

	pane       Pane
	habitList  list.Model
	todoList   list.Model
	keys       KeyMap
	help       help.Model
	confirm    *huh.Form
	confirmYes bool
	unmark     *pendingUnmark

	lastSync time.Time
	loadErr  string
	quitting bool
	width    int
	height   int
}

func NewModel(trk *tracker.Tracker, service Service) Model {
	habitList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	habitList.Title = "Habits"
	habitList.SetShowHelp(false)

	todoList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	todoList.Title = "To-dos"
	todoList.SetShowHelp(false)

	return Model{
		tracker:   trk,
		service:   service,
		pane:      PaneHabits,
		habitList: habitList,
		todoList:  todoList,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadItems(),
		reconcileTick(),
		midnightTimer(time.Now()),
	)
}

// refreshLists rebuilds both list panes from the tracker projection.
func (m *Model) refreshLists() {
	m.habitList.SetItems(habitItems(m.tracker.Habits()))
	m.todoList.SetItems(todoItems(m.tracker.Todos()))
}

func (m *Model) focusedList() *list.Model {
	if m.pane == PaneTodos {
		return &m.todoList
	}
	return &m.habitList
}

// selected returns the kind, id and done state of the highlighted item.
func (m *Model) selected() (models.Kind, int, bool, bool) {
	switch m.pane {
	case PaneTodos:
		item, ok := m.todoList.SelectedItem().(todoItem)
		if !ok {
			return models.KindTodo, 0, false, false
		}
		return models.KindTodo, item.view.ID, item.view.Done, true
	default:
		item, ok := m.habitList.SelectedItem().(habitItem)
		if !ok {
			return models.KindHabit, 0, false, false
		}
		return models.KindHabit, item.view.ID, item.view.Done, true
	}
}

func newConfirmForm(value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Un-mark this item?").
				Description("It is still cooling down; un-marking resets it immediately.").
				Affirmative("Un-mark").
				Negative("Keep").
				Value(value),
		),
	).WithTheme(huh.ThemeDracula())
}
