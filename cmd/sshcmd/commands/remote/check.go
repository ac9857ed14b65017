package remote

import (
	"fmt"
	"os"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/cli"
)

// NewCheckCommand constructs the command line abstraction for "remote check"
func NewCheckCommand() cli.Command {
	cmd := new(CheckCommand)
	cmd.abstractRemoteCommand = newAbstractRemoteCommand(cmd, os.Stdout, os.Stderr)

	return cli.Command{
		Handler: cmd,
		Config: cli.Config{
			Name:  "check",
			Usage: "Verify that the remote host accepts the configured credentials",
		},
	}
}

// CheckCommand connects and disconnects without running anything
type CheckCommand struct {
	abstractRemoteCommand
}

func (c *CheckCommand) prepare(*cli.Context) error {
	return nil
}

func (c *CheckCommand) streamsOutput() bool {
	return false
}

func (c *CheckCommand) RemoteExecute(ctx *cli.Context, _ executors.Connection) error {
	ctx.Logger().
		WithField("host", c.cfg.SSH.Host).
		Info("Connection established")

	_, err := fmt.Fprintf(c.stdout, "%s@%s: OK\n", c.cfg.SSH.Username, c.cfg.SSH.Host)

	return err
}
