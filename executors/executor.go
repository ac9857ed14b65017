// Package executors provides abstractions for executing shell commands remotely
package executors

import (
	"context"
	"time"

	"golang.org/x/crypto/ssh"
)

const (
	DefaultPort    = 22
	DefaultRetries = 3

	// NoExitCode is reported when no attempt produced an exit status
	NoExitCode = -1

	DefaultConnectTimeout = 60 * time.Second
	DefaultReadTimeout    = 60 * time.Second
	DefaultIdleTimeout    = 120 * time.Second
)

// Executor is the interface to provide operations related to command execution
type Executor interface {
	// Connect opens an authenticated connection to the host. On failure no
	// connection is returned.
	Connect(ctx context.Context, settings ConnectionSettings) (Connection, error)
}

// Connection is a handle to an authenticated remote session. It is owned by
// the caller and must be released with Disconnect.
type Connection interface {
	// RunCommandOnce executes the command a single time
	RunCommandOnce(ctx context.Context, command string) (Result, error)

	// RunCommand retries the command until it exits with code 0 or the
	// attempts are exhausted
	RunCommand(ctx context.Context, command string, retries int) bool

	// RunCommandWithExitCode returns the exit code of the first attempt that
	// didn't fail to execute, or NoExitCode
	RunCommandWithExitCode(ctx context.Context, command string, retries int) int

	// Disconnect closes the transport. Calling it more than once is a no-op.
	Disconnect() error
}

// ConnectionSettings centralizes attributes related to the remote host settings
type ConnectionSettings struct {
	Hostname string
	Port     int
	Username string
	Password string

	// PrivateKey is a PEM encoded key; publickey authentication is tried
	// before the password when set
	PrivateKey []byte

	// HostKeyCallback verifies the server key; nil accepts any key
	HostKeyCallback ssh.HostKeyCallback

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	IdleTimeout    time.Duration

	// SettleDelay is waited after opening a session and after the command
	// exits. Some SSH servers drop commands sent right after the channel
	// opens.
	SettleDelay time.Duration
}

// WithDefaults returns a copy of the settings where unset values are
// replaced by the package defaults
func (s ConnectionSettings) WithDefaults() ConnectionSettings {
	if s.Port < 1 {
		s.Port = DefaultPort
	}

	if s.ConnectTimeout <= 0 {
		s.ConnectTimeout = DefaultConnectTimeout
	}

	if s.ReadTimeout <= 0 {
		s.ReadTimeout = DefaultReadTimeout
	}

	if s.IdleTimeout <= 0 {
		s.IdleTimeout = DefaultIdleTimeout
	}

	return s
}

// Result of a single command execution
type Result struct {
	ExitCode int

	// Output holds only the last chunk read from stdout/stderr
	Output []byte
}

// Success reports whether the command exited with code 0
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Disconnect releases conn. A nil connection is ignored.
func Disconnect(conn Connection) error {
	if conn == nil {
		return nil
	}

	return conn.Disconnect()
}

// RetriesOrDefault normalizes the attempts count received by the retry loops
func RetriesOrDefault(retries int) int {
	if retries < 1 {
		return DefaultRetries
	}

	return retries
}
