package commands

import (
	"context"
	"fmt"

	"Almonium/internal/cli/bootstrap"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and sign in" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	if err := authService(app).Register(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Registered and logged in")
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
