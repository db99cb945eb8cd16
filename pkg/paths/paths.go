// Package paths resolves the locations overlay works with. Paths from
// configuration and flags may start with ~ and are otherwise relative to
// the working tree root.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/overlay/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// GetHomeDirectory returns the user's home directory, falling back to $HOME
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading ~ or ~/ to the home directory. Other paths,
// including ~user forms, are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// Resolve expands ~ in path and joins relative results onto root
func Resolve(root, path string) string {
	path = ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// ContainsPath reports whether child is parent or lies beneath it
func ContainsPath(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// RelativeTo returns path relative to base when it lies beneath base and
// path unchanged otherwise
func RelativeTo(base, path string) string {
	if !ContainsPath(base, path) {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
