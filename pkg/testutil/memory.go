package testutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/overlay/pkg/filesystem"
	"github.com/arthur-debert/overlay/pkg/types"
	"github.com/spf13/afero"
)

// MemoryRoot is the working tree root used by in-memory fixtures
const MemoryRoot = "/work"

// NewMemoryFS returns an in-memory filesystem holding files, whose paths are
// relative to MemoryRoot. The backing afero.Fs is returned as well so tests
// can wrap it, for instance in a read-only view.
func NewMemoryFS(t *testing.T, files map[string]string) (types.FS, afero.Fs) {
	t.Helper()

	base := afero.NewMemMapFs()
	if err := base.MkdirAll(MemoryRoot, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", MemoryRoot, err)
	}
	for name, content := range files {
		path := filepath.Join(MemoryRoot, filepath.FromSlash(name))
		if err := afero.WriteFile(base, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	return filesystem.NewAferoFS(base), base
}

// ReadMemoryFile returns the content of a MemoryRoot-relative file
func ReadMemoryFile(t *testing.T, fsys types.FS, name string) string {
	t.Helper()

	content, err := fsys.ReadFile(filepath.Join(MemoryRoot, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(content)
}

// Snapshot returns every regular file under the backing filesystem with its
// content, keyed by absolute path.
func Snapshot(t *testing.T, base afero.Fs) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := afero.Walk(base, "/", func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		content, err := afero.ReadFile(base, path)
		if err != nil {
			return err
		}
		files[path] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot filesystem: %v", err)
	}
	return files
}
