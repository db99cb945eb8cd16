package patch

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultCommand is the patch tool used when none is configured
const DefaultCommand = "patch"

// Runner runs an external command and returns its captured output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

// ExecRunner returns a Runner backed by os/exec
func ExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CommandEngine applies patches with an external patch tool
type CommandEngine struct {
	command string
	runner  Runner
	logger  zerolog.Logger
}

// NewCommandEngine creates an engine running command. A nil runner uses os/exec.
func NewCommandEngine(command string, runner Runner) *CommandEngine {
	if command == "" {
		command = DefaultCommand
	}
	if runner == nil {
		runner = ExecRunner()
	}
	return &CommandEngine{
		command: command,
		runner:  runner,
		logger:  logging.GetLogger("patch.command"),
	}
}

// Name implements Engine
func (e *CommandEngine) Name() string {
	return EngineExternal
}

// Apply implements Engine
func (e *CommandEngine) Apply(ctx context.Context, target, patchFile string) error {
	e.logger.Debug().
		Str("command", e.command).
		Str("target", target).
		Str("patch", patchFile).
		Msg("Executing patch command")

	stdout, stderr, err := e.runner.Run(ctx, e.command, target, patchFile)
	if len(stdout) > 0 {
		e.logger.Debug().Str("output", string(stdout)).Msg("Patch stdout")
	}

	if err != nil {
		diagnostic := strings.TrimSpace(string(stderr))
		if diagnostic == "" {
			diagnostic = strings.TrimSpace(string(stdout))
		}

		e.logger.Debug().
			Err(err).
			Str("target", target).
			Str("stderr", string(stderr)).
			Msg("Patch command failed")

		if diagnostic == "" {
			return errors.Wrapf(err, errors.ErrPatchFailed, "unix patch failed").
				WithDetail("target", target)
		}
		return errors.Newf(errors.ErrPatchFailed, "unix patch failed: %s", diagnostic).
			WithDetail("target", target).
			WithDetail("exit", err.Error())
	}

	return nil
}
