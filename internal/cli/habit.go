package cli

import (
	"context"
	"fmt"

	"github.com/dith08/FinBits-sub000/internal/models"
)

type HabitCmd struct {
	List   HabitListCmd   `cmd:"" help:"List habits with today's completion state." default:"1"`
	Done   HabitDoneCmd   `cmd:"" help:"Mark a habit done for today."`
	Undo   HabitUndoCmd   `cmd:"" help:"Un-mark a habit, bypassing the cooldown."`
	Streak HabitStreakCmd `cmd:"" help:"Show the server-computed streak for a habit."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	trk, err := ctx.loadTracker(context.Background(), true, false)
	if err != nil {
		return err
	}

	views := trk.Habits()
	if len(views) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, view := range views {
		line := fmt.Sprintf("%s %3d  %s", checkbox(view.Done), view.ID, view.Name)
		if view.Done {
			line += fmt.Sprintf("  (resets in %s)", view.Remaining)
		}
		fmt.Println(line)
	}
	return nil
}

type HabitDoneCmd struct {
	ID int `arg:"" help:"Habit ID."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	bg := context.Background()
	trk, err := ctx.loadTracker(bg, true, false)
	if err != nil {
		return err
	}

	op, err := trk.Toggle(models.KindHabit, c.ID, true)
	if err != nil {
		return err
	}
	if op == nil {
		fmt.Printf("Habit %d is already done for today.\n", c.ID)
		return nil
	}

	ctx.dispatch(bg, op)
	fmt.Printf("Marked habit %d done for %s.\n", c.ID, op.Day)
	return nil
}

type HabitUndoCmd struct {
	ID int `arg:"" help:"Habit ID."`
}

func (c *HabitUndoCmd) Run(ctx *Context) error {
	bg := context.Background()
	trk, err := ctx.loadTracker(bg, true, false)
	if err != nil {
		return err
	}

	op, err := trk.Toggle(models.KindHabit, c.ID, false)
	if err != nil {
		return err
	}

	ctx.dispatch(bg, op)
	fmt.Printf("Un-marked habit %d.\n", c.ID)
	return nil
}

type HabitStreakCmd struct {
	ID int `arg:"" help:"Habit ID."`
}

func (c *HabitStreakCmd) Run(ctx *Context) error {
	streak, err := ctx.Client.GetStreak(context.Background(), c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s)\n", streak.Current)
	if streak.StartDate != "" {
		fmt.Printf("Since:          %s\n", streak.StartDate)
	}
	fmt.Printf("Active habits:  %d\n", streak.ActiveHabits)
	if streak.Message != "" {
		fmt.Println(streak.Message)
	}
	return nil
}
