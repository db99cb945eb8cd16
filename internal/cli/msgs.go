package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Apply configuration overlays to a working tree"
	MsgVersionShort    = "Print version information"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgVersionFormat = "overlay version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error prefixes shown on stderr
	MsgConfigurationError = "Configuration error"
	MsgUnexpectedError    = "Unexpected error"

	// Error messages
	MsgErrArgs          = "invalid arguments"
	MsgErrFlags         = "invalid flags"
	MsgErrOverlayTwice  = "overlay named twice: %q and --overlay %q"
	MsgErrWriteOutput   = "failed to write output"
	MsgErrGenCompletion = "failed to generate %s completion"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot        = "Working tree root holding the overlays directory and targets"
	MsgFlagConfig      = "Configuration file layered over the defaults"
	MsgFlagSet         = "Set a configuration key, e.g. --set patch.engine=builtin (repeatable)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagPatchEngine = "Patch engine: external (the patch command) or builtin"
	MsgFlagLogFile     = "Also append logs to $XDG_STATE_HOME/overlay/overlay.log"
	MsgFlagOverlay     = "Overlay to apply, for names that collide with a subcommand"
	MsgFlagList        = "List the files managed by the overlay without applying it"
	MsgFlagBackup      = "Copy existing targets to the backup directory before changing them"
	MsgFlagDefaults    = "Print the builtin defaults instead of the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
