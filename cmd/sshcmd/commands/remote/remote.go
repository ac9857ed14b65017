package remote

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/config"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	sshExecutor "gitlab.com/gitlab-org/ci-cd/sshcmd/executors/ssh"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/cli"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/credentials"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/env"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

type remoteCommand interface {
	// prepare runs before the connection is opened
	prepare(ctx *cli.Context) error
	streamsOutput() bool

	RemoteExecute(ctx *cli.Context, conn executors.Connection) error
}

// abstractRemoteCommand opens the SSH connection shared by all remote
// commands and hands it to the concrete command
type abstractRemoteCommand struct {
	remoteCommand

	cfg    config.Global
	logger logging.Logger
	fs     fs.FS

	stdout io.Writer
	stderr io.Writer

	// Wrapping constructors to make easier mocking in the unit tests
	newExecutor     func(logger logging.Logger, opts ...sshExecutor.Option) executors.Executor
	newResolver     func(logger logging.Logger, fileSystem fs.FS, awsRegion string) credentials.Resolver
	newFS           func() fs.FS
	hostKeyCallback func(knownHostsFile string) (ssh.HostKeyCallback, error)
}

func newAbstractRemoteCommand(cmd remoteCommand, stdout io.Writer, stderr io.Writer) abstractRemoteCommand {
	return abstractRemoteCommand{
		remoteCommand: cmd,
		stdout:        stdout,
		stderr:        stderr,
		newExecutor:   sshExecutor.NewExecutor,
		newResolver: func(logger logging.Logger, fileSystem fs.FS, awsRegion string) credentials.Resolver {
			return credentials.NewResolver(logger, env.New(), fileSystem, awsRegion)
		},
		newFS: func() fs.FS {
			return fs.NewOS()
		},
		hostKeyCallback: knownHostsCallback,
	}
}

func (a *abstractRemoteCommand) Execute(ctx *cli.Context) error {
	a.cfg = ctx.Config()
	a.fs = a.newFS()

	err := a.cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	err = a.prepare(ctx)
	if err != nil {
		return err
	}

	settings, err := a.connectionSettings(ctx)
	if err != nil {
		return err
	}

	var opts []sshExecutor.Option
	if a.streamsOutput() {
		opts = append(opts, sshExecutor.WithOutput(a.stdout, a.stderr))
	}

	conn, err := a.newExecutor(ctx.Logger(), opts...).Connect(ctx.Ctx, settings)
	if err != nil {
		return err
	}

	defer func() {
		err := conn.Disconnect()
		if err != nil {
			ctx.Logger().WithError(err).Warning("Couldn't disconnect from server")
		}
	}()

	return a.RemoteExecute(ctx, conn)
}

func (a *abstractRemoteCommand) connectionSettings(ctx *cli.Context) (executors.ConnectionSettings, error) {
	sshCfg := a.cfg.SSH
	settings := sshCfg.ConnectionSettings()

	resolver := a.newResolver(ctx.Logger(), a.fs, a.cfg.AWS.Region)

	password, err := resolver.Password(ctx.Ctx, sshCfg)
	if err != nil {
		return settings, fmt.Errorf("resolving SSH password: %w", err)
	}
	settings.Password = password

	settings.PrivateKey, err = resolver.PrivateKey(sshCfg)
	if err != nil {
		return settings, fmt.Errorf("resolving SSH private key: %w", err)
	}

	if sshCfg.KnownHostsFile == "" {
		ctx.Logger().Warning("No known hosts file configured; the server host key will not be verified")
		return settings, nil
	}

	settings.HostKeyCallback, err = a.hostKeyCallback(sshCfg.KnownHostsFile)
	if err != nil {
		return settings, fmt.Errorf("loading known hosts file %q: %w", sshCfg.KnownHostsFile, err)
	}

	return settings, nil
}

func knownHostsCallback(knownHostsFile string) (ssh.HostKeyCallback, error) {
	return knownhosts.New(knownHostsFile)
}

// ErrCommandNotExecuted is returned when no attempt managed to obtain an exit
// code from the server
var ErrCommandNotExecuted = errors.New("command couldn't be executed on the remote host")

func NewRemoteCategory() cli.Category {
	return cli.Category{
		Config: cli.Config{
			Name:    "remote",
			Aliases: []string{"r"},
			Usage:   "Execute commands on the configured SSH host",
			Description: `These commands connect to the host configured in the [SSH] section of the
configuration file, using password or private key authentication.`,
		},
		SubCommands: []cli.Command{
			NewExecCommand(),
			NewCheckCommand(),
		},
	}
}
