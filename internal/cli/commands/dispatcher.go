package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"Almonium/internal/cli/bootstrap"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, app *bootstrap.App, args []string) int {
	// If user passed global --help after flags parsing, show global usage
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" { // almonium help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	app.Router.Navigate(routeOf(app, c))
	err := c.Run(ctx, app, args[1:])

	// интерсептор мог увести нас на экран входа (401)
	if dest, redirected := app.Router.Pending(); redirected {
		if err != nil {
			fmt.Fprintf(Out, "%s error: %v\n", name, err)
		}
		printRedirect(app, dest)
		return 1
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return 1
	}
}

func printRedirect(app *bootstrap.App, dest string) {
	fmt.Fprintln(Out, "Session expired, please sign in again.")
	if c, ok := Get(loginCommand); ok && routeOf(app, c) == dest {
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return
	}
	if c, ok := Get(strings.TrimPrefix(dest, "/")); ok {
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return
	}
	fmt.Fprintf(Out, "Redirected to %s\n", dest)
}
