package types

import "path/filepath"

// Strategy identifies how an overlay entry is applied to its target
type Strategy int

const (
	// StrategyReplace copies an overlay file over the target
	StrategyReplace Strategy = iota
	// StrategyMerge deep merges configs/<basename> into the target JSON
	StrategyMerge
	// StrategyPatch applies patches/<basename>.patch or patches/<basename>.json
	StrategyPatch
)

// Reserved directive tokens
const (
	DirectiveMerge = "merge"
	DirectivePatch = "patch"
)

// String returns the strategy name used in listings and logs
func (s Strategy) String() string {
	switch s {
	case StrategyMerge:
		return "merge"
	case StrategyPatch:
		return "patch"
	case StrategyReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Directive is a manifest directive resolved at load time. Source is only
// meaningful for StrategyReplace and holds the path relative to the overlay
// directory, exactly as written in the manifest.
type Directive struct {
	Strategy Strategy
	Source   string
}

// ParseDirective resolves a raw manifest directive. Anything other than the
// reserved tokens is a replacement source, whether or not it exists.
func ParseDirective(raw string) Directive {
	switch raw {
	case DirectiveMerge:
		return Directive{Strategy: StrategyMerge}
	case DirectivePatch:
		return Directive{Strategy: StrategyPatch}
	default:
		return Directive{Strategy: StrategyReplace, Source: raw}
	}
}

// Raw returns the directive as it appears in the manifest
func (d Directive) Raw() string {
	switch d.Strategy {
	case StrategyMerge:
		return DirectiveMerge
	case StrategyPatch:
		return DirectivePatch
	default:
		return d.Source
	}
}

// MergeSource returns the merge source for target under overlayDir
func MergeSource(overlayDir, target string) string {
	return filepath.Join(overlayDir, "configs", filepath.Base(filepath.FromSlash(target)))
}

// PatchSources returns the unified-diff and string-replacement candidates
// for target under overlayDir, in precedence order.
func PatchSources(overlayDir, target string) (patchFile, replacementsFile string) {
	base := filepath.Base(filepath.FromSlash(target))
	dir := filepath.Join(overlayDir, "patches")
	return filepath.Join(dir, base+".patch"), filepath.Join(dir, base+".json")
}

// ReplaceSource returns the replacement source for d under overlayDir
func (d Directive) ReplaceSource(overlayDir string) string {
	return filepath.Join(overlayDir, filepath.FromSlash(d.Source))
}
