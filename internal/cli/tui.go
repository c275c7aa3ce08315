package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dith08/FinBits-sub000/internal/tracker"
	"github.com/dith08/FinBits-sub000/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	trk := tracker.New(ctx.Store)
	model := tui.NewModel(trk, ctx.Client)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
