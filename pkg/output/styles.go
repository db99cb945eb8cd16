package output

import (
	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/output/styles"
)

// LoadStylesFromFile layers a YAML styles file over the terminal styles.
// A file that cannot be read or parsed is a configuration error and leaves
// the current styles in place.
func LoadStylesFromFile(path string) error {
	if err := styles.LoadStyles(path); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load styles from %s", path)
	}
	return nil
}
