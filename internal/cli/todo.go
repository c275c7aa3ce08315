package cli

import (
	"context"
	"fmt"

	"github.com/dith08/FinBits-sub000/internal/models"
)

type TodoCmd struct {
	List TodoListCmd `cmd:"" help:"List to-dos with status and completion state." default:"1"`
	Done TodoDoneCmd `cmd:"" help:"Complete a to-do for today."`
	Undo TodoUndoCmd `cmd:"" help:"Revert a to-do to pending, bypassing the cooldown."`
}

type TodoListCmd struct{}

func (c *TodoListCmd) Run(ctx *Context) error {
	trk, err := ctx.loadTracker(context.Background(), false, true)
	if err != nil {
		return err
	}

	views := trk.Todos()
	if len(views) == 0 {
		fmt.Println("No to-dos found.")
		return nil
	}

	for _, view := range views {
		line := fmt.Sprintf("%s %3d  %-30s %s", checkbox(view.Done), view.ID, view.Name, view.Status)
		if view.Done {
			line += fmt.Sprintf("  (resets in %s)", view.Remaining)
		}
		fmt.Println(line)
	}
	return nil
}

type TodoDoneCmd struct {
	ID int `arg:"" help:"To-do ID."`
}

func (c *TodoDoneCmd) Run(ctx *Context) error {
	bg := context.Background()
	trk, err := ctx.loadTracker(bg, false, true)
	if err != nil {
		return err
	}

	op, err := trk.Toggle(models.KindTodo, c.ID, true)
	if err != nil {
		return err
	}
	if op == nil {
		fmt.Printf("To-do %d is already completed for today.\n", c.ID)
		return nil
	}

	ctx.dispatch(bg, op)
	fmt.Printf("Completed to-do %d.\n", c.ID)
	return nil
}

type TodoUndoCmd struct {
	ID int `arg:"" help:"To-do ID."`
}

func (c *TodoUndoCmd) Run(ctx *Context) error {
	bg := context.Background()
	trk, err := ctx.loadTracker(bg, false, true)
	if err != nil {
		return err
	}

	op, err := trk.Toggle(models.KindTodo, c.ID, false)
	if err != nil {
		return err
	}

	ctx.dispatch(bg, op)
	fmt.Printf("Reverted to-do %d to pending.\n", c.ID)
	return nil
}
