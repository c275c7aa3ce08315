package models

// Kind distinguishes the two tracked item variants. Completion state for
// habits and to-dos is stored separately so their IDs never collide.
type Kind string

const (
	KindHabit Kind = "habit"
	KindTodo  Kind = "todo"
)

// TodoStatus is the server-side status of a to-do item.
type TodoStatus string

const (
	StatusPending    TodoStatus = "Pending"
	StatusInProgress TodoStatus = "InProgress"
	StatusCompleted  TodoStatus = "Completed"
)

// Habit represents a recurring practice tracked by the remote service.
// All fields are owned by the server and read-only from this client;
// habits carry no server-side completion flag, only an append-only log.
type Habit struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Note      string `json:"note,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Category  string `json:"category,omitempty"`
}

// Todo represents a to-do item tracked by the remote service.
type Todo struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Note      string     `json:"note,omitempty"`
	StartDate string     `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string     `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    TodoStatus `json:"status"`
}

// Streak is the server-computed streak summary for a habit. The client
// only displays it; it never derives streaks from local state.
type Streak struct {
	HabitID      int    `json:"habit_id"`
	Current      int    `json:"current"`
	StartDate    string `json:"start_date,omitempty"` // YYYY-MM-DD
	ActiveHabits int    `json:"active_habits"`
	Message      string `json:"message,omitempty"`
}
