package exit

import (
	"errors"
	"os"
)

// SystemFailureExitCode is used for everything that isn't a remote command
// failure: configuration, connection or authentication problems. It follows
// the convention of the OpenSSH client.
const SystemFailureExitCode = 255

var osExiter = os.Exit

// Code returns the exit code the process should finish with for err
func Code(err error) int {
	if err == nil {
		return 0
	}

	var failure *CommandFailureError
	if errors.As(err, &failure) {
		return failure.ExitCode
	}

	return SystemFailureExitCode
}

func FromError(err error) {
	osExiter(Code(err))
}
