package fs

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

type FS interface {
	ReadFile(filename string) ([]byte, error)
	Exists(path string) (bool, error)
	OpenAppend(filename string, perm os.FileMode) (io.WriteCloser, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error
}

type fs struct {
	afs afero.Fs
}

func NewOS() FS {
	return &fs{afs: afero.NewOsFs()}
}

// NewMem returns an in-memory FS, used by tests of the packages depending on FS
func NewMem() FS {
	return &fs{afs: afero.NewMemMapFs()}
}

func (f *fs) ReadFile(filename string) ([]byte, error) {
	return afero.ReadFile(f.afs, filename)
}

func (f *fs) Exists(path string) (bool, error) {
	return afero.Exists(f.afs, path)
}

func (f *fs) OpenAppend(filename string, perm os.FileMode) (io.WriteCloser, error) {
	return f.afs.OpenFile(filename, os.O_WRONLY|os.O_APPEND|os.O_CREATE, perm)
}

func (f *fs) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(f.afs, filename, data, perm)
}
