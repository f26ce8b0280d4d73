package commands

import (
	"context"
	"fmt"

	"Almonium/internal/cli/bootstrap"
)

// statusCmd показывает локальное состояние сессии без обращения к серверу.
type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show local session state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(_ context.Context, app *bootstrap.App, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	fmt.Fprintf(Out, "Server: %s\n", app.API.BaseURL())
	fmt.Fprintf(Out, "Token store: %s\n", app.Config.TokenStore)
	login, err := app.Session.CurrentUser()
	if _, hasToken := app.Session.GetToken(); err != nil || !hasToken {
		fmt.Fprintln(Out, "Status: signed out")
		return nil
	}
	fmt.Fprintf(Out, "Status: signed in as %s\n", login)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
