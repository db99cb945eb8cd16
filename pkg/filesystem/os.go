package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/overlay/pkg/types"
	"github.com/google/renameio/v2"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile replaces name atomically: the data is written and synced to a
// temporary file in the same directory, which is then renamed over name.
// An interrupted write never leaves a truncated target behind. When name is
// a symlink the file it points to is replaced and the link is kept.
func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if resolved, err := filepath.EvalSymlinks(name); err == nil {
		name = resolved
	}
	return renameio.WriteFile(name, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

func (o *osFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}
