package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/types"
)

// Exists reports whether name exists. Errors other than "not exist" are
// returned so callers do not mistake an unreadable path for a missing one.
func Exists(fsys types.FS, name string) (bool, error) {
	_, err := fsys.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CopyFile copies src over dst, carrying permissions and modification time.
// dst's parent directory must already exist.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFileAccess, "cannot copy directory %s", src)
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}

	mode := info.Mode().Perm()
	if err := fsys.WriteFile(dst, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}

	// WriteFile only applies mode to newly created files
	if err := fsys.Chmod(dst, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set permissions on %s", dst)
	}

	mtime := info.ModTime()
	if err := fsys.Chtimes(dst, mtime, mtime); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set times on %s", dst)
	}

	return nil
}

// FileMode returns the permission bits of name, or fallback when it does not exist
func FileMode(fsys types.FS, name string, fallback fs.FileMode) fs.FileMode {
	info, err := fsys.Stat(name)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}
