package cli

import (
	"github.com/arthur-debert/overlay/pkg/errors"
)

// FormatError renders err as the single stderr line of a failed run.
// Configuration problems (missing overlay, manifest or source, bad JSON,
// bad flags) and everything else get different prefixes.
func FormatError(err error) string {
	prefix := MsgUnexpectedError
	if errors.IsConfigurationError(err) {
		prefix = MsgConfigurationError
	}
	return prefix + ": " + errors.Message(err)
}
