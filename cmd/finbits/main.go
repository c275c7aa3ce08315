package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/dith08/FinBits-sub000/internal/api"
	"github.com/dith08/FinBits-sub000/internal/cli"
	"github.com/dith08/FinBits-sub000/internal/completion"
	"github.com/dith08/FinBits-sub000/internal/constants"
	apperrors "github.com/dith08/FinBits-sub000/internal/errors"
	"github.com/dith08/FinBits-sub000/internal/keyring"
	"github.com/dith08/FinBits-sub000/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Completion store path. A .db extension selects SQLite, anything else a JSON file." type:"path" default:"${store_path}"`
	APIURL  string `name:"api-url" help:"FinBits API base URL." env:"FINBITS_API_URL" default:"${api_url}"`
	Debug   bool   `help:"Enable debug logging."`

	Login  cli.LoginCmd  `cmd:"" help:"Store an API token in the OS keyring."`
	Logout cli.LogoutCmd `cmd:"" help:"Remove the stored API token."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit  cli.HabitCmd  `cmd:"" help:"List and complete habits."`
	Todo   cli.TodoCmd   `cmd:"" help:"List and complete to-dos."`
	Sweep  cli.SweepCmd  `cmd:"" help:"Clear expired completions without opening the dashboard."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit and to-do companion for the FinBits dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"api_url":    constants.DefaultAPIURL,
			"store_path": constants.DefaultStorePath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		apperrors.Fatal(err)
	}

	// Determine storage type based on extension
	var store completion.Store
	if strings.HasSuffix(CLI.Config, ".db") {
		sqlStore := completion.NewSQLiteStore(CLI.Config)
		if err := sqlStore.Open(); err != nil {
			apperrors.Fatal(err)
		}
		defer sqlStore.Close()
		store = sqlStore
	} else {
		store = completion.NewFileStore(CLI.Config)
	}

	appCtx := &cli.Context{Store: store}

	// Login and logout manage the token themselves; everything else
	// needs an authenticated client.
	selected := ""
	if node := ctx.Selected(); node != nil {
		selected = node.Name
	}
	if selected != "login" && selected != "logout" {
		token, err := keyring.GetToken()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				apperrors.Fatal(fmt.Errorf("no API token found, run `finbits login` first"))
			}
			apperrors.Fatal(err)
		}
		appCtx.Client = api.NewClient(CLI.APIURL, token)
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
