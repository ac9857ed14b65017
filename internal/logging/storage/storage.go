// Package storage provides log sinks other than the standard error stream
package storage

import (
	"io"
)

type Storage interface {
	io.WriteCloser

	Open() error
}
