package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	testKey   = "SSHCMD_TEST_VARIABLE"
	testValue = "test value"
)

func testEnv(t *testing.T, e Env) {
	tests := map[string]struct {
		value       string
		expectedSet bool
	}{
		testKey:   {value: testValue, expectedSet: true},
		"unknown": {value: "", expectedSet: false},
	}

	for key, tt := range tests {
		assert.Equal(t, tt.value, e.Get(key))

		value, ok := e.Lookup(key)
		assert.Equal(t, tt.value, value)
		assert.Equal(t, tt.expectedSet, ok)
	}
}

func TestOsEnv(t *testing.T) {
	t.Setenv(testKey, testValue)

	testEnv(t, New())
}

func TestStubbedEnv(t *testing.T) {
	testEnv(t, NewWithStubs(Stubs{testKey: testValue}))
}
