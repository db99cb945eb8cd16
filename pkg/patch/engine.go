package patch

import (
	"context"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/types"
)

// Engine names
const (
	EngineExternal = "external"
	EngineBuiltin  = "builtin"
)

// Engine applies a unified diff to a single target file. Any hunk that does
// not apply fails the whole operation with ErrPatchFailed.
type Engine interface {
	Name() string
	Apply(ctx context.Context, target, patchFile string) error
}

// NewEngine returns the engine registered under name. The external engine
// runs command; the builtin engine reads and writes through fsys.
func NewEngine(name string, fsys types.FS, command string) (Engine, error) {
	switch name {
	case EngineExternal, "":
		return NewCommandEngine(command, nil), nil
	case EngineBuiltin:
		return NewBuiltinEngine(fsys), nil
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid, "unknown patch engine %q", name)
	}
}
