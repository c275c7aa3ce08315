package cli

import (
	"context"
	"fmt"

	"github.com/dith08/FinBits-sub000/internal/api"
	"github.com/dith08/FinBits-sub000/internal/completion"
	"github.com/dith08/FinBits-sub000/internal/logger"
	"github.com/dith08/FinBits-sub000/internal/tracker"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store  completion.Store
	Client *api.Client
}

// loadTracker builds a tracker over the durable store and fills it with
// the requested item lists from the remote service.
func (c *Context) loadTracker(ctx context.Context, habits, todos bool) (*tracker.Tracker, error) {
	trk := tracker.New(c.Store)

	if habits {
		list, err := c.Client.ListHabits(ctx)
		if err != nil {
			return nil, err
		}
		trk.SetHabits(list)
	}
	if todos {
		list, err := c.Client.ListTodos(ctx)
		if err != nil {
			return nil, err
		}
		trk.SetTodos(list)
	}
	return trk, nil
}

// dispatch runs a remote write from a one-shot command. The local state
// is already updated and stays in place on failure; a one-shot process
// cannot retry later, so the divergence is surfaced as a warning and
// heals on the next full re-fetch.
func (c *Context) dispatch(ctx context.Context, op *tracker.RemoteOp) {
	if op == nil {
		return
	}
	if err := tracker.Dispatch(ctx, c.Client, *op); err != nil {
		logger.Warn("Remote write failed", "action", op.Action, "kind", op.Kind, "id", op.ItemID, "error", err)
		fmt.Printf("Warning: saved locally, but the sync to the server failed: %v\n", err)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
