package patch

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/overlay/pkg/jsondoc"
)

// Replacement replaces every occurrence of Old with New
type Replacement struct {
	Old string
	New string
}

// ParseReplacements reads a replacement source: a JSON object whose values
// are strings. The result keeps document order.
func ParseReplacements(data []byte) ([]Replacement, error) {
	obj, err := jsondoc.DecodeObject(data)
	if err != nil {
		return nil, err
	}

	replacements := make([]Replacement, 0, obj.Len())
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("replacement for %q must be a string, got %s", key, jsondoc.TypeName(value))
		}
		replacements = append(replacements, Replacement{Old: key, New: s})
	}

	return replacements, nil
}

// ApplyReplacements applies replacements in order. Later replacements see
// the output of earlier ones, so {"a":"b","b":"c"} turns "a" into "c".
func ApplyReplacements(content string, replacements []Replacement) string {
	for _, r := range replacements {
		content = strings.ReplaceAll(content, r.Old, r.New)
	}
	return content
}
