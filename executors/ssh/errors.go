package ssh

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConnected is returned when the connection was already closed
var ErrNotConnected = errors.New("not connected to server")

// errInvalidPrivateKey will be used to wrap a ssh internal error
type errInvalidPrivateKey struct {
	inner error
}

func (e *errInvalidPrivateKey) Error() string {
	return fmt.Sprintf("invalid private key: %v", e.inner)
}

func (e *errInvalidPrivateKey) Unwrap() error {
	return e.inner
}

func (e *errInvalidPrivateKey) Is(err error) bool {
	_, ok := err.(*errInvalidPrivateKey)
	return ok
}

// AuthenticationError is returned by Connect when the server rejected the
// credentials. Methods lists the authentication methods the server offered.
type AuthenticationError struct {
	Methods []string

	inner error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("SSH authentication failed, supported authentication methods are [%s]", strings.Join(e.Methods, ", "))
}

func (e *AuthenticationError) Unwrap() error {
	return e.inner
}

func (e *AuthenticationError) Is(err error) bool {
	_, ok := err.(*AuthenticationError)
	return ok
}

// ExecutionError marks a failed attempt of running a command. It is retried
// by RunCommand and RunCommandWithExitCode.
type ExecutionError struct {
	op    string
	inner error
}

func newExecutionError(op string, err error) *ExecutionError {
	return &ExecutionError{op: op, inner: err}
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("SSH execution failed while %s: %v", e.op, e.inner)
}

func (e *ExecutionError) Unwrap() error {
	return e.inner
}

func (e *ExecutionError) Is(err error) bool {
	_, ok := err.(*ExecutionError)
	return ok
}
