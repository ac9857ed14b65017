package cli

import (
	"fmt"

	"github.com/urfave/cli"
	clihelpers "gitlab.com/ayufan/golang-cli-helpers"
)

type Handler interface {
	Execute(context *Context) error
}

type Config = cli.Command

// Category groups commands under a common name, like "remote exec"
type Category struct {
	Config

	SubCategories []Category
	SubCommands   []Command
}

// Command binds a handler to its command line definition. Flags are read
// from the handler's struct tags.
type Command struct {
	Config

	Handler Handler
}

func (cmd Command) toActionFunc(a *App) cli.ActionFunc {
	return func(cliCtx *cli.Context) error {
		err := cmd.Handler.Execute(a.makeContext(cliCtx))
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Name, err)
		}

		return nil
	}
}

func (cmd Command) getFlags() []cli.Flag {
	return clihelpers.GetFlagsFromStruct(cmd.Handler)
}
