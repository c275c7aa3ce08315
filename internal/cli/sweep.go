package cli

import (
	"context"
	"fmt"

	"github.com/dith08/FinBits-sub000/internal/models"
)

// SweepCmd runs one headless reconciliation pass: expire every loaded
// item whose cooldown has elapsed and push the to-do status reverts to
// the server. Suitable for cron on machines where the TUI is rarely
// open.
type SweepCmd struct{}

func (c *SweepCmd) Run(ctx *Context) error {
	bg := context.Background()
	trk, err := ctx.loadTracker(bg, true, true)
	if err != nil {
		return err
	}

	resets := trk.Sweep()
	if len(resets) == 0 {
		fmt.Println("Nothing to reset.")
		return nil
	}

	for _, r := range resets {
		kind := "habit"
		if r.Kind == models.KindTodo {
			kind = "to-do"
		}
		fmt.Printf("Reset %s %d\n", kind, r.ItemID)
		ctx.dispatch(bg, r.Op)
	}
	fmt.Printf("Reset %d item(s).\n", len(resets))
	return nil
}
