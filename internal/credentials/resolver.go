// Package credentials resolves the secrets used to authenticate SSH sessions
package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/aws"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/config"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/env"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

var ErrNoCredentials = errors.New("no SSH password or private key configured")

// Resolver finds the password and the private key for the configured SSH
// user
type Resolver interface {
	Password(ctx context.Context, cfg config.SSH) (string, error)
	PrivateKey(cfg config.SSH) ([]byte, error)
}

type promptFunc func(prompt string) (string, error)

type resolver struct {
	logger logging.Logger
	env    env.Env
	fs     fs.FS

	// Parameter store is created lazily so that AWS is only touched when a
	// parameter is actually configured
	parameterStore func() (aws.ParameterStore, error)

	prompt promptFunc
}

func NewResolver(logger logging.Logger, e env.Env, fileSystem fs.FS, awsRegion string) Resolver {
	r := &resolver{
		logger: logger,
		env:    e,
		fs:     fileSystem,
		prompt: terminalPrompt(os.Stdin, os.Stderr),
	}

	r.parameterStore = func() (aws.ParameterStore, error) {
		store := aws.NewParameterStore(logger, awsRegion)

		err := store.Init()
		if err != nil {
			return nil, err
		}

		return store, nil
	}

	return r
}

func (r *resolver) Password(ctx context.Context, cfg config.SSH) (string, error) {
	switch {
	case cfg.Password != "":
		r.logger.Debug("[Password] Using password from configuration")
		return cfg.Password, nil

	case cfg.PasswordEnv != "":
		return r.fromEnv(cfg.PasswordEnv)

	case cfg.PasswordFile != "":
		return r.fromFile(cfg.PasswordFile)

	case cfg.PasswordSSMParameter != "":
		return r.fromParameterStore(ctx, cfg.PasswordSSMParameter)

	case cfg.AskPassword:
		return r.prompt(fmt.Sprintf("%s@%s's password: ", cfg.Username, cfg.Host))
	}

	if cfg.PrivateKeyFile != "" {
		return "", nil
	}

	return "", ErrNoCredentials
}

func (r *resolver) fromEnv(name string) (string, error) {
	r.logger.WithField("variable", name).Debug("[Password] Will read password from environment")

	value, ok := r.env.Lookup(name)
	if !ok || value == "" {
		return "", fmt.Errorf("environment variable %q is empty or not set", name)
	}

	return value, nil
}

func (r *resolver) fromFile(path string) (string, error) {
	r.logger.WithField("file", path).Debug("[Password] Will read password from file")

	data, err := r.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("couldn't read password file: %w", err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

func (r *resolver) fromParameterStore(ctx context.Context, name string) (string, error) {
	r.logger.WithField("parameter", name).Debug("[Password] Will read password from SSM parameter store")

	store, err := r.parameterStore()
	if err != nil {
		return "", fmt.Errorf("couldn't initialize parameter store: %w", err)
	}

	return store.GetSecureString(ctx, name)
}

func (r *resolver) PrivateKey(cfg config.SSH) ([]byte, error) {
	if cfg.PrivateKeyFile == "" {
		return nil, nil
	}

	r.logger.WithField("file", cfg.PrivateKeyFile).Debug("[PrivateKey] Will read private key")

	data, err := r.fs.ReadFile(cfg.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("couldn't read private key file: %w", err)
	}

	return data, nil
}

var errNotATerminal = errors.New("password prompt requires a terminal")

func terminalPrompt(in *os.File, out io.Writer) promptFunc {
	return func(prompt string) (string, error) {
		fd := int(in.Fd())
		if !term.IsTerminal(fd) {
			return "", errNotATerminal
		}

		_, _ = fmt.Fprint(out, prompt)
		defer func() { _, _ = fmt.Fprintln(out) }()

		password, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return string(password), nil
	}
}
