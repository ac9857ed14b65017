package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/ssh"
)

var (
	// ErrIdleTimeout is returned when the remote command produced no output
	// and didn't exit within the idle timeout
	ErrIdleTimeout = errors.New("timeout while waiting for data from peer")

	// ErrNoExitStatus is returned when the remote side closed the channel
	// without reporting an exit status
	ErrNoExitStatus = errors.New("command exited without exit status")
)

const noExitStatus = -1

type Session interface {
	// Run executes the command and returns its exit status
	Run(ctx context.Context, command string) (int, error)

	// LastOutput returns the tail of stdout/stderr drained by Run
	LastOutput() []byte

	Close()
}

// Settings for a single command execution
type Settings struct {
	IdleTimeout time.Duration
	SettleDelay time.Duration

	// Optional sinks receiving the complete streams
	Stdout io.Writer
	Stderr io.Writer
}

// remote is the subset of *ssh.Session used by the session
type remote interface {
	Start(cmd string) error
	Wait() error
	Signal(sig ssh.Signal) error
	Close() error
}

func New(s *ssh.Session, settings Settings) Session {
	ds := newSession(s, settings)

	s.Stdout = ds.output.stream(settings.Stdout)
	s.Stderr = ds.output.stream(settings.Stderr)

	return ds
}

func newSession(r remote, settings Settings) *defaultSession {
	return &defaultSession{
		internal: r,
		settings: settings,
		output:   newOutput(),
	}
}

type defaultSession struct {
	internal remote
	settings Settings
	output   *output
}

func (s *defaultSession) Run(ctx context.Context, command string) (int, error) {
	err := sleepContext(ctx, s.settings.SettleDelay)
	if err != nil {
		return noExitStatus, fmt.Errorf("waiting before starting command: %w", err)
	}

	err = s.internal.Start(command)
	if err != nil {
		return noExitStatus, fmt.Errorf("starting SSH command: %w", err)
	}

	waitErr := make(chan error, 1)

	go func() {
		waitErr <- s.internal.Wait()
	}()

	idle := time.NewTimer(s.settings.IdleTimeout)
	defer idle.Stop()

	for {
		select {
		case err := <-waitErr:
			status, err := exitStatus(err)
			if err != nil {
				return noExitStatus, err
			}

			err = sleepContext(ctx, s.settings.SettleDelay)
			if err != nil {
				return noExitStatus, fmt.Errorf("waiting after command exit: %w", err)
			}

			return status, nil
		case <-s.output.activity:
			idle.Reset(s.settings.IdleTimeout)
		case <-idle.C:
			_ = s.internal.Signal(ssh.SIGKILL)

			return noExitStatus, ErrIdleTimeout
		case <-ctx.Done():
			err := s.internal.Signal(ssh.SIGINT)
			if err != nil {
				return noExitStatus, fmt.Errorf("interrupting SSH command: %w", err)
			}

			return noExitStatus, fmt.Errorf("waiting for SSH command: %w", ctx.Err())
		}
	}
}

func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitStatus(), nil
	}

	var missingErr *ssh.ExitMissingError
	if errors.As(err, &missingErr) {
		return noExitStatus, ErrNoExitStatus
	}

	return noExitStatus, fmt.Errorf("waiting for SSH command: %w", err)
}

func (s *defaultSession) LastOutput() []byte {
	return s.output.last()
}

func (s *defaultSession) Close() {
	_ = s.internal.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
