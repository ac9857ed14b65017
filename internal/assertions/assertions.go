package assertions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ErrorIs(t *testing.T, err error, expected error) bool {
	return assert.Truef(
		t,
		errors.Is(err, expected),
		"Unexpected error: %#v is not %#v",
		err,
		expected,
	)
}

// NoErrorOrIs expects no error when expected is nil and behaves like ErrorIs otherwise
func NoErrorOrIs(t *testing.T, err error, expected error) bool {
	if expected == nil {
		return assert.NoError(t, err)
	}

	return ErrorIs(t, err, expected)
}
