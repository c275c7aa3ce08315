package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dith08/FinBits-sub000/internal/constants"
	"github.com/dith08/FinBits-sub000/internal/models"
	"github.com/dith08/FinBits-sub000/internal/reset"
	"github.com/dith08/FinBits-sub000/internal/tracker"
)

// reconcileTickMsg drives the periodic per-item expiry check.
type reconcileTickMsg time.Time

// midnightMsg fires once at the next local midnight.
type midnightMsg time.Time

type itemsLoadedMsg struct {
	habits []models.Habit
	todos  []models.Todo
	err    error
}

type remoteOpDoneMsg struct {
	op  tracker.RemoteOp
	err error
}

func reconcileTick() tea.Cmd {
	return tea.Tick(constants.ReconcileInterval, func(t time.Time) tea.Msg {
		return reconcileTickMsg(t)
	})
}

// midnightTimer arms a one-shot for the next local midnight. It is
// re-armed after every firing by recomputing the delay from the current
// clock; repeating a fixed interval instead would drift.
func midnightTimer(now time.Time) tea.Cmd {
	return tea.Tick(reset.UntilNextMidnight(now), func(t time.Time) tea.Msg {
		return midnightMsg(t)
	})
}

// loadItems fetches both item lists from the remote service. It runs in
// a command goroutine; the result is applied to the tracker on the
// update loop.
func (m Model) loadItems() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()

		habits, err := service.ListHabits(ctx)
		if err != nil {
			return itemsLoadedMsg{err: err}
		}
		todos, err := service.ListTodos(ctx)
		if err != nil {
			return itemsLoadedMsg{err: err}
		}
		return itemsLoadedMsg{habits: habits, todos: todos}
	}
}

// dispatchOp performs one remote write off the update loop. The local
// state was already updated optimistically; a failure only queues a
// retry.
func (m Model) dispatchOp(op tracker.RemoteOp) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		return remoteOpDoneMsg{op: op, err: tracker.Dispatch(ctx, service, op)}
	}
}

func (m Model) dispatchAll(ops []tracker.RemoteOp) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(ops))
	for _, op := range ops {
		cmds = append(cmds, m.dispatchOp(op))
	}
	return cmds
}
