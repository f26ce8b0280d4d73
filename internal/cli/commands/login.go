package commands

import (
	"context"
	"fmt"

	"Almonium/internal/cli/bootstrap"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Sign in and store the access token" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	if err := authService(app).Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
