// Package env abstracts reading of process environment variables
package env

import (
	"os"
)

type Env interface {
	Get(key string) string
	Lookup(key string) (string, bool)
}

func New() Env {
	return new(osEnv)
}

type osEnv struct{}

func (e *osEnv) Get(key string) string {
	return os.Getenv(key)
}

func (e *osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

type Stubs map[string]string

func NewWithStubs(stubs Stubs) Env {
	return &stubbedEnv{
		stubs: stubs,
	}
}

type stubbedEnv struct {
	stubs Stubs
}

func (e *stubbedEnv) Get(key string) string {
	value, _ := e.Lookup(key)

	return value
}

func (e *stubbedEnv) Lookup(key string) (string, bool) {
	value, ok := e.stubs[key]

	return value, ok
}
