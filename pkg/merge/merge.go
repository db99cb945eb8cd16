// Package merge implements the deep merge used by the merge strategy.
package merge

import "github.com/arthur-debert/overlay/pkg/jsondoc"

// DeepMerge returns base with overlay merged into it. For every overlay key,
// when base holds the same key and both values are objects the two are
// merged recursively; otherwise the overlay value replaces the base value as
// a whole, so arrays are overwritten and never concatenated. Keys only found
// in base are kept untouched and in place; new keys are appended in overlay
// order. Neither argument is modified.
func DeepMerge(base, overlay *jsondoc.Object) *jsondoc.Object {
	result := base.Clone()

	for _, key := range overlay.Keys() {
		value, _ := overlay.Get(key)

		if existing, ok := result.Get(key); ok {
			baseObj, baseIsObj := existing.(*jsondoc.Object)
			overlayObj, overlayIsObj := value.(*jsondoc.Object)
			if baseIsObj && overlayIsObj {
				result.Set(key, DeepMerge(baseObj, overlayObj))
				continue
			}
		}

		result.Set(key, value)
	}

	return result
}
