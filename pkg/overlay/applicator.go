package overlay

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/filesystem"
	"github.com/arthur-debert/overlay/pkg/logging"
	"github.com/arthur-debert/overlay/pkg/manifest"
	"github.com/arthur-debert/overlay/pkg/paths"
	"github.com/arthur-debert/overlay/pkg/types"
	"github.com/rs/zerolog"
)

// Result summarizes a completed or aborted Apply run
type Result struct {
	Overlay string
	// Processed holds the entries applied, in manifest order
	Processed []Outcome
	// BackupDir is set when backups were enabled, relative to Root when possible
	BackupDir string
}

// Applicator applies one overlay to a working tree
type Applicator struct {
	manifest  *types.Manifest
	opts      Options
	backupDir string
	logger    zerolog.Logger
}

// New loads the manifest of overlay name. It performs no writes, so an
// Applicator used only for List leaves the filesystem untouched.
func New(name string, opts Options) (*Applicator, error) {
	opts = opts.withDefaults()

	m, err := manifest.Load(opts.FS, opts.OverlaysDir, name)
	if err != nil {
		return nil, err
	}

	return &Applicator{
		manifest:  m,
		opts:      opts,
		backupDir: filepath.Join(opts.BackupsDir, name),
		logger:    logging.GetLogger("overlay").With().Str("overlay", name).Logger(),
	}, nil
}

// Manifest returns the loaded manifest
func (a *Applicator) Manifest() *types.Manifest {
	return a.manifest
}

// List returns the manifest entries in order
func (a *Applicator) List() []types.Entry {
	a.logger.Info().
		Int("entries", len(a.manifest.Entries)).
		Msgf("Files managed by overlay '%s'", a.manifest.Name)

	entries := make([]types.Entry, len(a.manifest.Entries))
	copy(entries, a.manifest.Entries)
	return entries
}

// Apply processes every entry in manifest order and stops at the first
// failure. The returned Result lists what was applied before the failure.
func (a *Applicator) Apply(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(a.logger, "apply")
	defer done()

	result := &Result{Overlay: a.manifest.Name}

	if a.opts.Backup {
		if err := a.opts.FS.MkdirAll(a.backupDir, 0755); err != nil {
			return result, a.fail(errors.Wrapf(err, errors.ErrDirCreate,
				"cannot create backup directory %s", a.backupDir))
		}
		result.BackupDir = a.display(a.backupDir)
	}

	a.opts.Reporter.Start(a.manifest)

	for _, entry := range a.manifest.Entries {
		if err := ctx.Err(); err != nil {
			return result, a.fail(errors.Wrap(err, errors.ErrInternal, "overlay application interrupted"))
		}

		a.opts.Reporter.Processing(entry)

		outcome, err := a.applyEntry(ctx, entry)
		if err != nil {
			a.logger.Debug().
				Str("target", entry.Target).
				Str("directive", entry.Directive.Raw()).
				Msg("Entry failed")
			return result, a.fail(err)
		}

		result.Processed = append(result.Processed, outcome)
		a.opts.Reporter.Applied(outcome)
	}

	a.logger.Info().Int("files", len(result.Processed)).Msg("Overlay applied")
	a.opts.Reporter.Finished(result)

	return result, nil
}

func (a *Applicator) fail(err error) error {
	a.logger.Debug().Err(err).Msg("Overlay application failed")
	a.opts.Reporter.Failed(err)
	return err
}

func (a *Applicator) applyEntry(ctx context.Context, entry types.Entry) (Outcome, error) {
	target := a.targetPath(entry.Target)

	backup, err := a.backup(entry.Target, target)
	if err != nil {
		return Outcome{}, err
	}

	if err := a.opts.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrDirCreate,
			"cannot create directory for %s", entry.Target)
	}

	var outcome Outcome
	switch entry.Directive.Strategy {
	case types.StrategyMerge:
		outcome, err = a.applyMerge(entry, target)
	case types.StrategyPatch:
		outcome, err = a.applyPatch(ctx, entry, target)
	case types.StrategyReplace:
		outcome, err = a.applyReplace(entry, target)
	default:
		err = errors.Newf(errors.ErrInternal, "unknown strategy %s for %s", entry.Directive.Strategy, entry.Target)
	}
	if err != nil {
		return Outcome{}, err
	}

	outcome.Entry = entry
	outcome.Backup = backup

	a.logger.Debug().
		Str("target", entry.Target).
		Str("strategy", entry.Directive.Strategy.String()).
		Str("source", outcome.Source).
		Msg("Entry applied")

	return outcome, nil
}

// backup copies an existing target into the backup directory and returns
// the backup path, or "" when nothing was copied.
func (a *Applicator) backup(relTarget, target string) (string, error) {
	if !a.opts.Backup {
		return "", nil
	}

	exists, err := filesystem.Exists(a.opts.FS, target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", target)
	}
	if !exists {
		return "", nil
	}

	path := filepath.Join(a.backupDir, BackupName(relTarget))
	if err := filesystem.CopyFile(a.opts.FS, target, path); err != nil {
		return "", err
	}

	a.logger.Debug().Str("target", relTarget).Str("backup", path).Msg("Backup created")
	return a.display(path), nil
}

// BackupName flattens a manifest target into a single file name
func BackupName(target string) string {
	return strings.ReplaceAll(filepath.ToSlash(target), "/", "_")
}

// targetPath places relative targets under Root; absolute ones are kept
func (a *Applicator) targetPath(target string) string {
	target = filepath.FromSlash(target)
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(a.opts.Root, target)
}

// display shortens paths under Root for progress output
func (a *Applicator) display(path string) string {
	return paths.RelativeTo(a.opts.Root, path)
}
