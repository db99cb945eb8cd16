// Package manifest loads overlay manifests (overlay.config.json).
//
// A manifest is decoded once, with the order of its files section preserved,
// and every directive is resolved into a types.Directive up front so that
// the applicator never inspects raw directive strings.
package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/jsondoc"
	"github.com/arthur-debert/overlay/pkg/logging"
	"github.com/arthur-debert/overlay/pkg/types"
)

// Default metadata values shown when a manifest omits them
const (
	DefaultDescription = "No description"
	DefaultVersion     = "Unknown"
)

// Load reads the manifest of overlay name under overlaysDir
func Load(fsys types.FS, overlaysDir, name string) (*types.Manifest, error) {
	logger := logging.GetLogger("manifest")

	overlayDir := filepath.Join(overlaysDir, name)
	if _, err := fsys.Stat(overlayDir); err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrOverlayNotFound, "overlay directory not found: %s", overlayDir).
				WithDetail("overlay", name)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access overlay directory %s", overlayDir)
	}

	manifestPath := filepath.Join(overlayDir, types.ManifestFileName)
	data, err := fsys.ReadFile(manifestPath)
	if err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestNotFound, "configuration file not found: %s", manifestPath).
				WithDetail("overlay", name)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", manifestPath)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestMalformed, "invalid manifest %s", manifestPath)
	}
	m.Name = name
	m.Dir = overlayDir

	logger.Debug().
		Str("overlay", name).
		Str("manifest", manifestPath).
		Int("entries", len(m.Entries)).
		Msg("Manifest loaded")

	return m, nil
}

// Parse decodes manifest content. Name and Dir are left for the caller.
// Errors are plain; Load classifies them as malformed manifests.
func Parse(data []byte) (*types.Manifest, error) {
	doc, err := jsondoc.DecodeObject(data)
	if err != nil {
		return nil, err
	}

	rawFiles, ok := doc.Get("files")
	if !ok {
		return nil, fmt.Errorf("overlay.config.json must contain a 'files' section")
	}
	files, ok := rawFiles.(*jsondoc.Object)
	if !ok {
		return nil, fmt.Errorf("'files' must be an object, got %s", jsondoc.TypeName(rawFiles))
	}

	m := &types.Manifest{
		Entries: make([]types.Entry, 0, files.Len()),
	}

	for _, target := range files.Keys() {
		value, _ := files.Get(target)
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("directive for %q must be a string, got %s", target, jsondoc.TypeName(value))
		}
		m.Entries = append(m.Entries, types.Entry{
			Target:    target,
			Directive: types.ParseDirective(raw),
		})
	}

	if rawMeta, ok := doc.Get("metadata"); ok {
		m.Metadata = parseMetadata(rawMeta)
	}

	return m, nil
}

// parseMetadata is lenient: metadata is informational, so wrong types are
// rendered as text rather than rejected.
func parseMetadata(v any) *types.Metadata {
	meta := &types.Metadata{
		Description: DefaultDescription,
		Version:     DefaultVersion,
	}

	obj, ok := v.(*jsondoc.Object)
	if !ok {
		return meta
	}

	if s, ok := field(obj, "name"); ok {
		meta.Name = s
	}
	if s, ok := field(obj, "description"); ok {
		meta.Description = s
	}
	if s, ok := field(obj, "version"); ok {
		meta.Version = s
	}
	return meta
}

func field(obj *jsondoc.Object, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	out, err := jsondoc.Encode(v)
	if err != nil {
		return "", false
	}
	return string(out), true
}
