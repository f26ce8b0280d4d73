package commands

import (
	"context"
	"fmt"

	"Almonium/internal/cli/bootstrap"
)

type meCmd struct{}

func (meCmd) Name() string        { return "me" }
func (meCmd) Description() string { return "Show the signed-in user as seen by the server" }
func (meCmd) Usage() string       { return "me" }

func (meCmd) Run(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	u, err := authService(app).Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "User: %s (id %d)\n", u.Login, u.ID)
	return nil
}

func init() { RegisterCmd(meCmd{}) }
