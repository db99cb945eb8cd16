package config

import (
	"strings"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/output"
	"github.com/arthur-debert/overlay/pkg/patch"
	"github.com/pelletier/go-toml/v2"
)

// Config is the effective configuration
type Config struct {
	Overlay Overlay `koanf:"overlay" toml:"overlay"`
	Paths   Paths   `koanf:"paths" toml:"paths"`
	Patch   Patch   `koanf:"patch" toml:"patch"`
	Logging Logging `koanf:"logging" toml:"logging"`
	Output  Output  `koanf:"output" toml:"output"`
}

// Overlay selects what is applied
type Overlay struct {
	// Default is the overlay applied when none is named
	Default string `koanf:"default" toml:"default"`
}

// Paths locates overlays and backups. Relative paths are resolved against
// the working tree root.
type Paths struct {
	Overlays string `koanf:"overlays" toml:"overlays"`
	Backups  string `koanf:"backups" toml:"backups"`
}

// Patch configures unified diff application
type Patch struct {
	Engine  string `koanf:"engine" toml:"engine"`
	Command string `koanf:"command" toml:"command"`
}

// Logging configures the optional log file
type Logging struct {
	File bool `koanf:"file" toml:"file"`
}

// Output configures user-facing rendering
type Output struct {
	Format string `koanf:"format" toml:"format"`
	Styles string `koanf:"styles" toml:"styles"`
}

// Validate rejects settings no command could run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Overlay.Default) == "" {
		return invalid("overlay.default", "must not be empty")
	}
	if strings.TrimSpace(c.Paths.Overlays) == "" {
		return invalid("paths.overlays", "must not be empty")
	}
	if strings.TrimSpace(c.Paths.Backups) == "" {
		return invalid("paths.backups", "must not be empty")
	}

	switch c.Patch.Engine {
	case patch.EngineExternal, patch.EngineBuiltin:
	default:
		return invalid("patch.engine", "must be %q or %q, got %q", patch.EngineExternal, patch.EngineBuiltin, c.Patch.Engine)
	}
	if c.Patch.Engine == patch.EngineExternal && strings.TrimSpace(c.Patch.Command) == "" {
		return invalid("patch.command", "must not be empty with the %s engine", patch.EngineExternal)
	}

	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return invalid("output.format", "unknown format %q", c.Output.Format)
	}

	return nil
}

// OutputFormat returns the parsed output format. Call Validate first.
func (c *Config) OutputFormat() output.Format {
	f, _ := output.ParseFormat(c.Output.Format)
	return f
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}

func invalid(key, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrConfigInvalid, "invalid configuration: %s "+format, append([]interface{}{key}, args...)...).
		WithDetail("key", key)
}
