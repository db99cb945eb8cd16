package filesystem

import (
	"io/fs"
	"time"

	"github.com/arthur-debert/overlay/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

// NewReadOnly wraps base so that every mutation fails. Listing runs use it
// to guarantee they never write.
func NewReadOnly(base afero.Fs) types.FS {
	return NewAferoFS(afero.NewReadOnlyFs(base))
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Chmod(name string, mode fs.FileMode) error {
	return a.fs.Chmod(name, mode)
}

func (a *aferoFS) Chtimes(name string, atime, mtime time.Time) error {
	return a.fs.Chtimes(name, atime, mtime)
}
