package patch

import (
	"bytes"
	"context"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/filesystem"
	"github.com/arthur-debert/overlay/pkg/types"
	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// BuiltinEngine applies unified diffs without an external tool
type BuiltinEngine struct {
	fs types.FS
}

// NewBuiltinEngine creates an engine that reads and writes through fsys
func NewBuiltinEngine(fsys types.FS) *BuiltinEngine {
	return &BuiltinEngine{fs: fsys}
}

// Name implements Engine
func (e *BuiltinEngine) Name() string {
	return EngineBuiltin
}

// Apply implements Engine. The patch must describe exactly one file. A
// missing target is patched as empty content, which lets a diff create it.
func (e *BuiltinEngine) Apply(_ context.Context, target, patchFile string) error {
	data, err := e.fs.ReadFile(patchFile)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read patch %s", patchFile)
	}

	files, _, err := gitdiff.Parse(bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(err, errors.ErrPatchFailed, "cannot parse patch %s", patchFile)
	}
	if len(files) != 1 {
		return errors.Newf(errors.ErrPatchFailed, "patch %s must describe exactly one file, found %d", patchFile, len(files))
	}

	var src []byte
	exists, err := filesystem.Exists(e.fs, target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", target)
	}
	if exists {
		if src, err = e.fs.ReadFile(target); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", target)
		}
	}

	var out bytes.Buffer
	if err := gitdiff.Apply(&out, bytes.NewReader(src), files[0]); err != nil {
		return errors.Newf(errors.ErrPatchFailed, "builtin patch failed: %v", err).
			WithDetail("target", target)
	}

	mode := filesystem.FileMode(e.fs, target, 0644)
	if err := e.fs.WriteFile(target, out.Bytes(), mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
	}

	return nil
}
