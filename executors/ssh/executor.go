package ssh

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors/ssh/internal/client"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

type connectClientFunc func(ctx context.Context, network string, addr string, config *ssh.ClientConfig, readTimeout time.Duration) (client.Client, error)

type executor struct {
	logger logging.Logger

	connectClient connectClientFunc

	stdout io.Writer
	stderr io.Writer
}

// Option customizes the executor created by NewExecutor
type Option func(e *executor)

// WithOutput forwards the complete stdout and stderr of every executed
// command to the given writers. Without it only the last chunk of output is
// kept, in executors.Result.Output.
func WithOutput(stdout io.Writer, stderr io.Writer) Option {
	return func(e *executor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor is the constructor for an instance of the executor interface
func NewExecutor(logger logging.Logger, opts ...Option) executors.Executor {
	executor := new(executor)
	executor.logger = logger

	executor.connectClient = client.NewConnectClient

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

func (s *executor) Connect(ctx context.Context, settings executors.ConnectionSettings) (executors.Connection, error) {
	settings = settings.WithDefaults()

	addr := net.JoinHostPort(settings.Hostname, strconv.Itoa(settings.Port))
	logger := s.logger.WithFields(logging.Fields{
		"host": addr,
		"user": settings.Username,
	})

	logger.Debug("[Connect] Will connect to server via SSH")

	probe := new(authProbe)

	authMethods, err := probe.authMethods(settings.Password, settings.PrivateKey)
	if err != nil {
		logger.WithError(err).Warning("Get SSH connection failed")
		return nil, err
	}

	hostKeyCallback := settings.HostKeyCallback
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	config := &ssh.ClientConfig{
		User:            settings.Username,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         settings.ConnectTimeout,
	}

	cli, err := s.connectClient(ctx, "tcp", addr, config, settings.ReadTimeout)
	if err != nil {
		if probe.reached() || isAuthenticationFailure(err) {
			authErr := &AuthenticationError{Methods: probe.methods(), inner: err}
			logger.Warning(authErr.Error())

			return nil, authErr
		}

		logger.WithError(err).Warning("Get SSH connection failed")

		return nil, fmt.Errorf("connecting to server %q as user %q: %w", addr, settings.Username, err)
	}

	logger.Debug("[Connect] Successfully connected to server")

	conn := &connection{
		client:   cli,
		logger:   logger,
		settings: settings,
		stdout:   s.stdout,
		stderr:   s.stderr,
	}

	return conn, nil
}

func isAuthenticationFailure(err error) bool {
	return strings.Contains(err.Error(), "unable to authenticate")
}
