package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/dith08/FinBits-sub000/internal/keyring"
)

type LoginCmd struct {
	Token string `help:"API token. Prompted for interactively when omitted."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	token := strings.TrimSpace(c.Token)

	if token == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("FinBits API token").
					Description("Create one under Settings → API tokens in the dashboard.").
					EchoMode(huh.EchoModePassword).
					Value(&token).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("token cannot be empty")
						}
						return nil
					}),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		token = strings.TrimSpace(token)
	}

	if err := keyring.SetToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Println("✓ API token stored in the OS keyring")
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No token was stored.")
			return nil
		}
		return err
	}

	fmt.Println("✓ API token removed from the OS keyring")
	return nil
}
