// Package tracker is the completion & daily-reset engine. It owns the
// in-memory completion state for the currently-loaded habits and to-dos,
// mirrors every change into the durable completion store, and tells its
// caller which remote writes to dispatch. Two independent triggers may
// reset items — the periodic reconcile sweep and the whole-day midnight
// reset — and both are idempotent, so redundant firings are harmless.
//
// The tracker itself never does I/O beyond the store and never blocks:
// remote writes are described as RemoteOps and dispatched by the caller
// (asynchronously from the TUI, synchronously from one-shot CLI
// commands), keeping local updates optimistic and instant.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/dith08/FinBits-sub000/internal/completion"
	"github.com/dith08/FinBits-sub000/internal/constants"
	"github.com/dith08/FinBits-sub000/internal/logger"
	"github.com/dith08/FinBits-sub000/internal/models"
	"github.com/dith08/FinBits-sub000/internal/reset"
)

// Action identifies the remote write a RemoteOp performs.
type Action string

const (
	// ActionSubmitLog appends a completed habit-log entry for a date.
	ActionSubmitLog Action = "submit-log"
	// ActionSetStatus updates a to-do's remote status field.
	ActionSetStatus Action = "set-status"
)

// RemoteOp describes a remote write owed to the server after a local
// state change.
type RemoteOp struct {
	Action Action
	Kind   models.Kind
	ItemID int
	Day    string            // ActionSubmitLog: calendar date (YYYY-MM-DD)
	Status models.TodoStatus // ActionSetStatus: target status
}

// Remote is the subset of the API client the engine dispatches against.
type Remote interface {
	SubmitHabitLog(ctx context.Context, habitID int, day string) error
	UpdateTodoStatus(ctx context.Context, todoID int, status models.TodoStatus) error
}

// Dispatch performs a RemoteOp against the remote service.
func Dispatch(ctx context.Context, remote Remote, op RemoteOp) error {
	switch op.Action {
	case ActionSubmitLog:
		return remote.SubmitHabitLog(ctx, op.ItemID, op.Day)
	case ActionSetStatus:
		return remote.UpdateTodoStatus(ctx, op.ItemID, op.Status)
	default:
		return fmt.Errorf("unknown remote op action: %s", op.Action)
	}
}

// Reset records one item expired by a sweep or midnight rollover. Op is
// non-nil when the reset owes the server a write (to-dos revert to
// Pending; habit logs are append-only and need no revert).
type Reset struct {
	Kind   models.Kind
	ItemID int
	Op     *RemoteOp
}

// HabitView is the display projection of a habit: remote data merged
// with the local completion flag.
type HabitView struct {
	models.Habit
	Done      bool
	Remaining string // formatted time until reset, empty when not done
}

// TodoView is the display projection of a to-do item.
type TodoView struct {
	models.Todo
	Done      bool
	Remaining string
}

type opKey struct {
	kind models.Kind
	id   int
}

// Tracker is not safe for concurrent use; all mutation must happen on a
// single event loop (the TUI update loop, or a one-shot CLI command).
type Tracker struct {
	store completion.Store

	// Now is the clock used for all eligibility decisions; tests
	// override it.
	Now func() time.Time

	habits []models.Habit
	todos  []models.Todo

	records map[models.Kind]map[int]time.Time

	// pending holds remote writes that failed and await re-dispatch on
	// the next reconcile tick. Keyed per item so a newer op for the same
	// item supersedes a stale one.
	pending map[opKey]RemoteOp
}

func New(store completion.Store) *Tracker {
	t := &Tracker{
		store:   store,
		Now:     time.Now,
		records: make(map[models.Kind]map[int]time.Time),
		pending: make(map[opKey]RemoteOp),
	}
	t.records[models.KindHabit] = store.Get(models.KindHabit)
	t.records[models.KindTodo] = store.Get(models.KindTodo)
	return t
}

// SetHabits replaces the loaded habit list after a remote fetch.
func (t *Tracker) SetHabits(habits []models.Habit) {
	t.habits = habits
}

// SetTodos replaces the loaded to-do list after a remote fetch. A to-do
// reported Completed by the server gets a local completion record if it
// has none (completed on another device, or through the dashboard): the
// record is what makes the daily reset pick it up after midnight.
func (t *Tracker) SetTodos(todos []models.Todo) {
	t.todos = todos

	now := t.Now()
	for _, todo := range todos {
		if todo.Status != models.StatusCompleted {
			continue
		}
		if _, ok := t.records[models.KindTodo][todo.ID]; !ok {
			t.setRecord(models.KindTodo, todo.ID, &now)
		}
	}
}

// Toggle flips an item between done and not-done. Marking an item done
// that is already done-and-cooling is rejected silently (the UI renders
// it disabled). Un-marking always succeeds immediately, bypassing the
// cooldown. The local store and projection are updated before the
// returned RemoteOp is dispatched, so a network failure never blocks or
// reverts the local state (failed ops are retried via MarkFailed).
func (t *Tracker) Toggle(kind models.Kind, itemID int, done bool) (*RemoteOp, error) {
	if err := t.checkLoaded(kind, itemID); err != nil {
		return nil, err
	}

	now := t.Now()

	if done {
		if ts, ok := t.records[kind][itemID]; ok && !reset.Eligible(&ts, now) {
			// Already done for today; nothing to do.
			return nil, nil
		}
		t.setRecord(kind, itemID, &now)
	} else {
		if _, ok := t.records[kind][itemID]; !ok {
			return nil, nil
		}
		t.setRecord(kind, itemID, nil)
	}

	op := t.remoteOpForToggle(kind, itemID, done, now)
	if op != nil {
		// A fresh user intent supersedes any parked retry for the item.
		delete(t.pending, opKey{kind, itemID})
	}
	return op, nil
}

func (t *Tracker) remoteOpForToggle(kind models.Kind, itemID int, done bool, now time.Time) *RemoteOp {
	switch kind {
	case models.KindHabit:
		if !done {
			// Habit logs are append-only on the server; un-marking is a
			// local concern only.
			return nil
		}
		return &RemoteOp{
			Action: ActionSubmitLog,
			Kind:   kind,
			ItemID: itemID,
			Day:    now.Format(constants.DateFormat),
		}
	case models.KindTodo:
		status := models.StatusPending
		if done {
			status = models.StatusCompleted
		}
		t.setTodoStatus(itemID, status)
		return &RemoteOp{
			Action: ActionSetStatus,
			Kind:   kind,
			ItemID: itemID,
			Status: status,
		}
	}
	return nil
}

// Sweep is the periodic reconciliation pass: every loaded item whose
// cooldown has elapsed is flipped back to not-done and its record
// removed. Sweeping an already-clean tracker returns nothing and writes
// nothing, so the sweep and the midnight reset can race freely.
func (t *Tracker) Sweep() []Reset {
	now := t.Now()
	var resets []Reset

	for _, habit := range t.habits {
		if r := t.expire(models.KindHabit, habit.ID, now); r != nil {
			resets = append(resets, *r)
		}
	}
	for _, todo := range t.todos {
		if r := t.expire(models.KindTodo, todo.ID, now); r != nil {
			resets = append(resets, *r)
		}
	}
	return resets
}

func (t *Tracker) expire(kind models.Kind, itemID int, now time.Time) *Reset {
	ts, ok := t.records[kind][itemID]
	if !ok || !reset.Eligible(&ts, now) {
		return nil
	}

	t.setRecord(kind, itemID, nil)
	logger.Debug("Completion expired", "kind", kind, "id", itemID, "completed_at", ts)

	r := &Reset{Kind: kind, ItemID: itemID}
	if kind == models.KindTodo {
		t.setTodoStatus(itemID, models.StatusPending)
		r.Op = &RemoteOp{
			Action: ActionSetStatus,
			Kind:   kind,
			ItemID: itemID,
			Status: models.StatusPending,
		}
	}
	return r
}

// MidnightReset is the coarse whole-day rollover: every completion
// record for both kinds is cleared unconditionally, loaded or not. It
// exists alongside Sweep so a throttled or missed tick can never leave
// yesterday's completions on screen. Callers should re-fetch the item
// lists afterwards; the server copy is authoritative again.
func (t *Tracker) MidnightReset() []Reset {
	var resets []Reset

	for _, kind := range []models.Kind{models.KindHabit, models.KindTodo} {
		ids := make([]int, 0, len(t.records[kind]))
		for id := range t.records[kind] {
			ids = append(ids, id)
		}
		for _, id := range ids {
			t.setRecord(kind, id, nil)
			r := Reset{Kind: kind, ItemID: id}
			if kind == models.KindTodo && t.todoLoaded(id) {
				t.setTodoStatus(id, models.StatusPending)
				r.Op = &RemoteOp{
					Action: ActionSetStatus,
					Kind:   kind,
					ItemID: id,
					Status: models.StatusPending,
				}
			}
			resets = append(resets, r)
		}
	}

	if len(resets) > 0 {
		logger.Info("Midnight reset", "cleared", len(resets))
	}
	return resets
}

// MarkFailed parks a remote op that could not be delivered; it will be
// handed out again by TakePending on the next reconcile tick. The
// optimistic local state stays in place.
func (t *Tracker) MarkFailed(op RemoteOp) {
	logger.Warn("Remote write failed, queued for retry", "action", op.Action, "kind", op.Kind, "id", op.ItemID)
	t.pending[opKey{op.Kind, op.ItemID}] = op
}

// TakePending drains the retry queue. Callers dispatch the returned ops
// and MarkFailed whichever fail again.
func (t *Tracker) TakePending() []RemoteOp {
	if len(t.pending) == 0 {
		return nil
	}
	ops := make([]RemoteOp, 0, len(t.pending))
	for _, op := range t.pending {
		ops = append(ops, op)
	}
	t.pending = make(map[opKey]RemoteOp)
	return ops
}

// ClearPending drops parked retries; called after a successful full
// re-fetch, when the server copy is authoritative again.
func (t *Tracker) ClearPending() {
	t.pending = make(map[opKey]RemoteOp)
}

// Habits returns the display projection for the loaded habits.
func (t *Tracker) Habits() []HabitView {
	now := t.Now()
	views := make([]HabitView, 0, len(t.habits))
	for _, habit := range t.habits {
		done, remaining := t.completionState(models.KindHabit, habit.ID, now)
		views = append(views, HabitView{Habit: habit, Done: done, Remaining: remaining})
	}
	return views
}

// Todos returns the display projection for the loaded to-dos.
func (t *Tracker) Todos() []TodoView {
	now := t.Now()
	views := make([]TodoView, 0, len(t.todos))
	for _, todo := range t.todos {
		done, remaining := t.completionState(models.KindTodo, todo.ID, now)
		views = append(views, TodoView{Todo: todo, Done: done, Remaining: remaining})
	}
	return views
}

func (t *Tracker) completionState(kind models.Kind, itemID int, now time.Time) (bool, string) {
	ts, ok := t.records[kind][itemID]
	if !ok || reset.Eligible(&ts, now) {
		return false, ""
	}
	return true, reset.FormatRemaining(reset.Remaining(&ts, now))
}

// setRecord updates the in-memory mirror and persists through the store
// in one step, keeping the two views identical at every point.
func (t *Tracker) setRecord(kind models.Kind, itemID int, completedAt *time.Time) {
	if completedAt == nil {
		delete(t.records[kind], itemID)
	} else {
		if t.records[kind] == nil {
			t.records[kind] = make(map[int]time.Time)
		}
		t.records[kind][itemID] = *completedAt
	}
	t.store.Set(kind, itemID, completedAt)
}

func (t *Tracker) setTodoStatus(itemID int, status models.TodoStatus) {
	for i := range t.todos {
		if t.todos[i].ID == itemID {
			t.todos[i].Status = status
			return
		}
	}
}

func (t *Tracker) todoLoaded(itemID int) bool {
	for _, todo := range t.todos {
		if todo.ID == itemID {
			return true
		}
	}
	return false
}

func (t *Tracker) checkLoaded(kind models.Kind, itemID int) error {
	switch kind {
	case models.KindHabit:
		for _, habit := range t.habits {
			if habit.ID == itemID {
				return nil
			}
		}
		return fmt.Errorf("habit %d not found", itemID)
	case models.KindTodo:
		if t.todoLoaded(itemID) {
			return nil
		}
		return fmt.Errorf("todo %d not found", itemID)
	}
	return fmt.Errorf("unknown item kind %q", kind)
}
