package remote

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/cli"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/encoding"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/exit"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// ErrMissingCommand is returned when neither a command nor a script file is given
var ErrMissingCommand = errors.New("missing command to execute")

// NewExecCommand constructs the command line abstraction for "remote exec"
func NewExecCommand() cli.Command {
	cmd := new(ExecCommand)
	cmd.abstractRemoteCommand = newAbstractRemoteCommand(cmd, os.Stdout, os.Stderr)

	return cli.Command{
		Handler: cmd,
		Config: cli.Config{
			Name:      "exec",
			Aliases:   []string{"e"},
			Usage:     "Execute a command on the remote host",
			ArgsUsage: "-- command [args...]",
			Description: `
Executes the command on the remote host and exits with its exit code.

The command is retried when it can't be executed or exits with a non-zero
code. If no attempt gets an exit code from the server, sshcmd exits with 255.

By default the command output is not printed. Use --output to stream it.`,
		},
	}
}

// ExecCommand runs a single command on the remote host
type ExecCommand struct {
	abstractRemoteCommand

	Retries    int    `long:"retries" description:"Number of attempts; uses the configuration value when not set"`
	ScriptFile string `long:"script-file" description:"Read the command from a file instead of the arguments"`
	Output     bool   `long:"output" description:"Stream the command stdout and stderr"`
	Format     string `long:"format" description:"Result format (text, json)"`

	command string
	encoder encoding.Encoder
}

type execResult struct {
	Host     string `json:"host"`
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Success  bool   `json:"success"`
}

func (c *ExecCommand) streamsOutput() bool {
	return c.Output
}

func (c *ExecCommand) prepare(ctx *cli.Context) error {
	switch c.Format {
	case "", formatText:
		c.encoder = nil
	case formatJSON:
		c.encoder = encoding.NewIndentedJSON()
	default:
		return fmt.Errorf("unknown result format %q", c.Format)
	}

	if c.ScriptFile != "" {
		script, err := c.fs.ReadFile(c.ScriptFile)
		if err != nil {
			return fmt.Errorf("reading script file %q: %w", c.ScriptFile, err)
		}

		c.command = string(script)

		return nil
	}

	c.command = strings.Join(ctx.Args(), " ")
	if strings.TrimSpace(c.command) == "" {
		return ErrMissingCommand
	}

	return nil
}

// RemoteExecute runs the command with retries and reports its exit code
func (c *ExecCommand) RemoteExecute(ctx *cli.Context, conn executors.Connection) error {
	retries := c.Retries
	if retries < 1 {
		retries = c.cfg.SSH.Retries
	}

	logger := ctx.Logger().WithFields(logging.Fields{
		"command": "remote_exec",
		"retries": executors.RetriesOrDefault(retries),
	})
	logger.Info("Executing the command")

	exitCode := conn.RunCommandWithExitCode(ctx.Ctx, c.command, retries)

	logger.WithField("exit-code", exitCode).Info("Command finished")

	err := c.writeResult(c.stdout, execResult{
		Host:     c.cfg.SSH.Host,
		Command:  c.command,
		ExitCode: exitCode,
		Success:  exitCode == 0,
	})
	if err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	switch exitCode {
	case 0:
		return nil
	case executors.NoExitCode:
		return ErrCommandNotExecuted
	default:
		return exit.NewCommandFailureError(exitCode)
	}
}

func (c *ExecCommand) writeResult(w io.Writer, result execResult) error {
	if c.encoder == nil {
		return nil
	}

	return c.encoder.Encode(result, w)
}
