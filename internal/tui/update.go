package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dith08/FinBits-sub000/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Timer and network messages are handled unconditionally, even while
	// the un-mark confirmation is open. Each timer re-arms only inside
	// its own handler, so routing one to the form would both skip the
	// reset and stop the timer for the rest of the session.
	switch msg := msg.(type) {
	case reconcileTickMsg:
		return m.handleReconcileTick()
	case midnightMsg:
		return m.handleMidnight()
	case itemsLoadedMsg:
		return m.handleItemsLoaded(msg)
	case remoteOpDoneMsg:
		if msg.err != nil {
			m.tracker.MarkFailed(msg.op)
		}
		return m, nil
	}

	// The un-mark confirmation owns the remaining input while open.
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 4
		m.habitList.SetSize(msg.Width, listHeight)
		m.todoList.SetSize(msg.Width, listHeight)

	case tea.KeyMsg:
		// While the list filter input is active every keystroke belongs
		// to it; matching the global bindings here would toggle items or
		// quit on plain typed characters.
		if m.focusedList().FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			if m.pane == PaneHabits {
				m.pane = PaneTodos
			} else {
				m.pane = PaneHabits
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadItems()
		case key.Matches(msg, m.keys.Toggle):
			return m.toggleSelected()
		}
	}

	focused := m.focusedList()
	updated, cmd := focused.Update(msg)
	*focused = updated
	return m, cmd
}

func (m Model) handleItemsLoaded(msg itemsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loadErr = msg.err.Error()
		logger.Warn("Item fetch failed", "error", msg.err)
		return m, nil
	}
	m.loadErr = ""
	m.lastSync = time.Now()
	m.tracker.SetHabits(msg.habits)
	m.tracker.SetTodos(msg.todos)
	// The fetched copy is authoritative; parked retries are stale.
	m.tracker.ClearPending()
	m.refreshLists()
	return m, nil
}

func (m Model) handleReconcileTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	// Failed remote writes get re-dispatched before the expiry scan,
	// so the server converges even without user interaction.
	cmds = append(cmds, m.dispatchAll(m.tracker.TakePending())...)
	for _, r := range m.tracker.Sweep() {
		if r.Op != nil {
			cmds = append(cmds, m.dispatchOp(*r.Op))
		}
	}
	m.refreshLists()
	cmds = append(cmds, reconcileTick())
	return m, tea.Batch(cmds...)
}

func (m Model) handleMidnight() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, r := range m.tracker.MidnightReset() {
		if r.Op != nil {
			cmds = append(cmds, m.dispatchOp(*r.Op))
		}
	}
	m.refreshLists()
	// Whole-day rollover: re-fetch the authoritative lists and
	// re-arm for the following midnight from the current clock.
	cmds = append(cmds, m.loadItems(), midnightTimer(time.Now()))
	return m, tea.Batch(cmds...)
}

// toggleSelected flips the highlighted item. Marking done happens
// immediately; un-marking a still-cooling item asks for confirmation
// first since it bypasses the cooldown.
func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	kind, id, done, ok := m.selected()
	if !ok {
		return m, nil
	}

	if done {
		m.unmark = &pendingUnmark{kind: kind, id: id}
		m.confirmYes = false
		m.confirm = newConfirmForm(&m.confirmYes)
		return m, m.confirm.Init()
	}

	op, err := m.tracker.Toggle(kind, id, true)
	if err != nil {
		logger.Warn("Toggle failed", "kind", kind, "id", id, "error", err)
		return m, nil
	}
	m.refreshLists()
	if op == nil {
		return m, nil
	}
	return m, m.dispatchOp(*op)
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	unmark := m.unmark
	confirmed := m.confirmYes
	m.confirm = nil
	m.unmark = nil

	if !confirmed || unmark == nil {
		return m, nil
	}

	op, err := m.tracker.Toggle(unmark.kind, unmark.id, false)
	if err != nil {
		logger.Warn("Un-mark failed", "kind", unmark.kind, "id", unmark.id, "error", err)
		return m, nil
	}
	m.refreshLists()
	if op == nil {
		return m, nil
	}
	return m, m.dispatchOp(*op)
}
