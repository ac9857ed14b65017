// Package exit maps command errors on the process exit code
package exit

import (
	"fmt"
)

// CommandFailureError reports a remote command that finished with a
// non-zero exit code
type CommandFailureError struct {
	ExitCode int
}

func NewCommandFailureError(exitCode int) *CommandFailureError {
	return &CommandFailureError{ExitCode: exitCode}
}

func (e *CommandFailureError) Error() string {
	return fmt.Sprintf("command failed with exit code %d", e.ExitCode)
}

func (e *CommandFailureError) Is(err error) bool {
	_, ok := err.(*CommandFailureError)

	return ok
}
