package storage

import (
	"errors"
	"fmt"
	"io"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
)

var ErrLogFileNotOpened = errors.New("file not opened")

const logFilePerm = 0600

type File struct {
	fs      fs.FS
	path    string
	storage io.WriteCloser
}

func NewFile(fileSystem fs.FS, path string) Storage {
	return &File{
		fs:   fileSystem,
		path: path,
	}
}

func (f *File) Open() error {
	var err error

	f.storage, err = f.fs.OpenAppend(f.path, logFilePerm)
	if err != nil {
		return fmt.Errorf("couldn't open log file %q for appending: %w", f.path, err)
	}

	return nil
}

func (f *File) Close() error {
	if f.storage == nil {
		return fmt.Errorf("couldn't close log file %q: %w", f.path, ErrLogFileNotOpened)
	}

	err := f.storage.Close()
	f.storage = nil
	if err != nil {
		return fmt.Errorf("couldn't close log file %q: %w", f.path, err)
	}

	return nil
}

func (f *File) Write(p []byte) (int, error) {
	if f.storage == nil {
		return 0, fmt.Errorf("couldn't write to log file %q: %w", f.path, ErrLogFileNotOpened)
	}

	return f.storage.Write(p)
}
