// Package filesystem routes every disk access of the application through afero,
// so tests can run against an in-memory tree.
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Use installs fs and returns a func that puts the previous backend back.
func Use(fs afero.Fs) (restore func()) {
	previous := backend
	backend = afero.Afero{Fs: fs}
	return func() { backend = previous }
}

// GacheFs lets gache caches (query history, catalog responses, release info)
// live on the active backend.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
