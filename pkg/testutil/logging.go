package testutil

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SilenceLogs discards everything written through the global logger.
// Packages whose code logs through logging.GetLogger call it from TestMain
// so that `go test` output only shows test results.
func SilenceLogs() {
	log.Logger = zerolog.Nop()
}
