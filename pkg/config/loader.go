package config

import (
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/logging"
	"github.com/arthur-debert/overlay/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes environment overrides
	EnvPrefix = "OVERLAY_"
	// RootConfigFile is looked up in the working tree root
	RootConfigFile = ".overlay.toml"
	// UserConfigFile is looked up under $XDG_CONFIG_HOME
	UserConfigFile = "overlay/config.toml"
)

// LoadOptions selects the layers to load
type LoadOptions struct {
	// Root is the working tree root holding RootConfigFile
	Root string
	// File is an explicit configuration file; it must exist
	File string
	// Set holds key=value pairs using dotted keys, e.g. patch.engine=builtin
	Set []string
	// Overrides is merged last; only non-zero fields apply
	Overrides *Config
	// SkipUser ignores the XDG user configuration
	SkipUser bool
}

// Load builds the effective configuration and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	var files []string
	if !opts.SkipUser {
		if path, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
			files = append(files, path)
		}
	}
	if opts.Root != "" {
		path := filepath.Join(opts.Root, RootConfigFile)
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	if opts.File != "" {
		path := paths.ExpandHome(opts.File)
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file not found: %s", opts.File)
		}
		files = append(files, path)
	}

	for _, path := range files {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		logger.Debug().Str("file", path).Msg("Loaded config file")
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	if len(opts.Set) > 0 {
		values, err := parseSet(opts.Set)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load --set values")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      false,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if opts.Overrides != nil {
		if err := mergo.Merge(&cfg, opts.Overrides, mergo.WithOverride); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to apply flag overrides")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Output.Styles = paths.ExpandHome(cfg.Output.Styles)

	logger.Debug().
		Str("engine", cfg.Patch.Engine).
		Str("overlays", cfg.Paths.Overlays).
		Str("format", cfg.Output.Format).
		Msg("Configuration loaded")

	return &cfg, nil
}

func parseSet(pairs []string) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrConfigInvalid, "invalid --set value %q, expected key=value", pair)
		}
		values[key] = value
	}
	return values, nil
}
