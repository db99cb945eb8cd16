package overlay

import (
	"context"
	"fmt"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/filesystem"
	"github.com/arthur-debert/overlay/pkg/jsondoc"
	"github.com/arthur-debert/overlay/pkg/merge"
	"github.com/arthur-debert/overlay/pkg/patch"
	"github.com/arthur-debert/overlay/pkg/types"
)

// Method records how a target was rewritten
type Method string

const (
	MethodReplaced     Method = "replaced"
	MethodMerged       Method = "merged"
	MethodPatched      Method = "patched"
	MethodReplacements Method = "replacements"
)

// Outcome describes one applied entry
type Outcome struct {
	Entry  types.Entry
	Method Method
	// Source is the overlay file used, relative to Root when possible
	Source string
	// Engine names the patch engine for MethodPatched
	Engine string
	// Replacements counts the rules applied for MethodReplacements
	Replacements int
	// Backup is the backup path relative to Root when possible, empty when
	// no backup was taken
	Backup string
}

// Detail is a one-line description of what was done to the target
func (o Outcome) Detail() string {
	switch o.Method {
	case MethodReplaced:
		return fmt.Sprintf("Replaced with %s", o.Source)
	case MethodMerged:
		return fmt.Sprintf("Merged with %s", o.Source)
	case MethodPatched:
		if o.Engine == patch.EngineExternal {
			return fmt.Sprintf("Applied Unix patch %s", o.Source)
		}
		return fmt.Sprintf("Applied %s patch %s", o.Engine, o.Source)
	case MethodReplacements:
		return fmt.Sprintf("Applied %d string replacement(s)", o.Replacements)
	default:
		return string(o.Method)
	}
}

func (a *Applicator) applyReplace(entry types.Entry, target string) (Outcome, error) {
	source := entry.Directive.ReplaceSource(a.manifest.Dir)

	if err := a.requireSource(source, "source file not found: %s"); err != nil {
		return Outcome{}, err
	}
	if err := filesystem.CopyFile(a.opts.FS, source, target); err != nil {
		return Outcome{}, err
	}

	return Outcome{Method: MethodReplaced, Source: a.display(source)}, nil
}

func (a *Applicator) applyMerge(entry types.Entry, target string) (Outcome, error) {
	source := types.MergeSource(a.manifest.Dir, entry.Target)

	if err := a.requireSource(source, "overlay config not found: %s"); err != nil {
		return Outcome{}, err
	}

	base := jsondoc.NewObject()
	exists, err := filesystem.Exists(a.opts.FS, target)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", target)
	}
	if exists {
		if base, err = a.readObject(target); err != nil {
			return Outcome{}, err
		}
	}

	doc, err := a.readObject(source)
	if err != nil {
		return Outcome{}, err
	}

	out, err := jsondoc.Encode(merge.DeepMerge(base, doc))
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrInternal, "cannot encode merged %s", entry.Target)
	}
	if err := a.write(target, out); err != nil {
		return Outcome{}, err
	}

	return Outcome{Method: MethodMerged, Source: a.display(source)}, nil
}

func (a *Applicator) applyPatch(ctx context.Context, entry types.Entry, target string) (Outcome, error) {
	patchFile, replacementsFile := types.PatchSources(a.manifest.Dir, entry.Target)

	hasPatch, err := filesystem.Exists(a.opts.FS, patchFile)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", patchFile)
	}
	if hasPatch {
		if err := a.opts.Engine.Apply(ctx, target, patchFile); err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Method: MethodPatched,
			Source: a.display(patchFile),
			Engine: a.opts.Engine.Name(),
		}, nil
	}

	hasReplacements, err := filesystem.Exists(a.opts.FS, replacementsFile)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", replacementsFile)
	}
	if !hasReplacements {
		return Outcome{}, errors.Newf(errors.ErrSourceNotFound,
			"no patch file found for %s (looked for %s or %s)",
			entry.Target, a.display(patchFile), a.display(replacementsFile)).
			WithDetail("target", entry.Target)
	}

	return a.applyReplacements(target, replacementsFile)
}

// applyReplacements loads the rules before looking at the target, so a
// malformed rules file is reported even when the target is missing.
func (a *Applicator) applyReplacements(target, replacementsFile string) (Outcome, error) {
	data, err := a.opts.FS.ReadFile(replacementsFile)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", replacementsFile)
	}
	rules, err := patch.ParseReplacements(data)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrInvalidJSON, "invalid JSON in %s", a.display(replacementsFile))
	}

	exists, err := filesystem.Exists(a.opts.FS, target)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", target)
	}
	if !exists {
		return Outcome{}, errors.Newf(errors.ErrTargetNotFound,
			"target file not found for patching: %s", a.display(target))
	}

	content, err := a.opts.FS.ReadFile(target)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", target)
	}

	out := patch.ApplyReplacements(string(content), rules)
	if err := a.write(target, []byte(out)); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Method:       MethodReplacements,
		Source:       a.display(replacementsFile),
		Replacements: len(rules),
	}, nil
}

func (a *Applicator) requireSource(source, format string) error {
	exists, err := filesystem.Exists(a.opts.FS, source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", source)
	}
	if !exists {
		return errors.Newf(errors.ErrSourceNotFound, format, a.display(source)).
			WithDetail("source", source)
	}
	return nil
}

func (a *Applicator) readObject(path string) (*jsondoc.Object, error) {
	data, err := a.opts.FS.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	obj, err := jsondoc.DecodeObject(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidJSON, "invalid JSON in %s", a.display(path))
	}
	return obj, nil
}

// write keeps the permissions of an existing target
func (a *Applicator) write(target string, data []byte) error {
	mode := filesystem.FileMode(a.opts.FS, target, 0644)
	if err := a.opts.FS.WriteFile(target, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
	}
	return nil
}
