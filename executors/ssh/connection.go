package ssh

import (
	"context"
	"fmt"
	"io"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors/ssh/internal/client"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors/ssh/internal/session"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

type connection struct {
	client   client.Client
	logger   logging.Logger
	settings executors.ConnectionSettings

	stdout io.Writer
	stderr io.Writer
}

func (c *connection) RunCommandOnce(ctx context.Context, command string) (executors.Result, error) {
	logger := c.logger.WithField("command", command)
	logger.Debug("[RunCommandOnce] Will execute the command")

	result := executors.Result{ExitCode: executors.NoExitCode}

	if c.client == nil {
		return result, newExecutionError("opening session", ErrNotConnected)
	}

	sess, err := c.client.NewSession(session.Settings{
		IdleTimeout: c.settings.IdleTimeout,
		SettleDelay: c.settings.SettleDelay,
		Stdout:      c.stdout,
		Stderr:      c.stderr,
	})
	if err != nil {
		return result, newExecutionError("opening session", err)
	}
	defer sess.Close()

	exitCode, err := sess.Run(ctx, command)

	result.Output = sess.LastOutput()
	if len(result.Output) > 0 {
		logger.Debugf("%s output: %s", command, result.Output)
	}

	if err != nil {
		logger.WithError(err).Debug("[RunCommandOnce] SSH execution failed")
		return result, newExecutionError("running command", err)
	}

	result.ExitCode = exitCode

	logger.
		WithField("exit-code", exitCode).
		Debug("[RunCommandOnce] Command executed")

	return result, nil
}

func (c *connection) RunCommand(ctx context.Context, command string, retries int) bool {
	success := false

	c.retry(ctx, command, retries, func(result executors.Result) bool {
		success = result.Success()
		return success
	})

	return success
}

func (c *connection) RunCommandWithExitCode(ctx context.Context, command string, retries int) int {
	exitCode := executors.NoExitCode

	c.retry(ctx, command, retries, func(result executors.Result) bool {
		exitCode = result.ExitCode
		return true
	})

	return exitCode
}

// retry runs the command until done accepts a result or the attempts are
// exhausted. Execution errors never reach done.
func (c *connection) retry(ctx context.Context, command string, retries int, done func(result executors.Result) bool) {
	attempts := executors.RetriesOrDefault(retries)

	for attempt := 1; attempt <= attempts; attempt++ {
		logger := c.logger.WithFields(logging.Fields{
			"command": command,
			"attempt": fmt.Sprintf("%d/%d", attempt, attempts),
		})

		result, err := c.RunCommandOnce(ctx, command)
		if err != nil {
			logger.WithError(err).Debug("[retry] Attempt failed")

			if ctx.Err() != nil {
				return
			}

			continue
		}

		if done(result) {
			return
		}

		logger.
			WithField("exit-code", result.ExitCode).
			Debug("[retry] Command exited with non-zero code")
	}
}

func (c *connection) Disconnect() error {
	c.logger.Debug("[Disconnect] Will disconnect from server")

	if c.client == nil {
		return nil
	}

	err := c.client.Disconnect()
	c.client = nil
	if err != nil {
		return fmt.Errorf("disconnecting from server: %w", err)
	}

	c.logger.Debug("[Disconnect] Successfully disconnected from server")

	return nil
}
