package cli

import (
	stdContext "context"

	"github.com/urfave/cli"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/config"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

// Context is shared by the hooks and the command handlers of a single
// application run
type Context struct {
	Ctx stdContext.Context
	Cli *cli.Context

	config config.Global
	logger logging.Logger
}

func (c *Context) SetConfig(cfg config.Global) {
	c.config = cfg
}

func (c *Context) Config() config.Global {
	return c.config
}

func (c *Context) SetLogger(logger logging.Logger) {
	c.logger = logger
}

func (c *Context) Logger() logging.Logger {
	return c.logger
}

// Args returns the positional arguments of the executed command
func (c *Context) Args() []string {
	if c.Cli == nil {
		return nil
	}

	return c.Cli.Args()
}
