package overlay

import (
	"github.com/arthur-debert/overlay/pkg/filesystem"
	"github.com/arthur-debert/overlay/pkg/patch"
	"github.com/arthur-debert/overlay/pkg/paths"
	"github.com/arthur-debert/overlay/pkg/types"
)

// Default directory names, relative to the working tree root
const (
	DefaultOverlaysDir = "overlays"
	DefaultBackupsDir  = ".backups"
)

// Options configures an Applicator. Zero values fall back to defaults.
type Options struct {
	// Root is the working tree targets are relative to. Defaults to ".".
	Root string

	// OverlaysDir holds one directory per overlay. A leading ~ is expanded
	// and relative paths are resolved against Root.
	OverlaysDir string

	// BackupsDir receives one directory per overlay when Backup is set.
	// It is resolved like OverlaysDir.
	BackupsDir string

	// Backup copies every existing target aside before it is modified
	Backup bool

	FS       types.FS
	Engine   patch.Engine
	Reporter Reporter
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = "."
	}
	if o.OverlaysDir == "" {
		o.OverlaysDir = DefaultOverlaysDir
	}
	if o.BackupsDir == "" {
		o.BackupsDir = DefaultBackupsDir
	}
	o.OverlaysDir = paths.Resolve(o.Root, o.OverlaysDir)
	o.BackupsDir = paths.Resolve(o.Root, o.BackupsDir)

	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Engine == nil {
		o.Engine = patch.NewCommandEngine(patch.DefaultCommand, nil)
	}
	if o.Reporter == nil {
		o.Reporter = NopReporter{}
	}
	return o
}
