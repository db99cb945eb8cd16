// Package config loads overlay's own settings.
//
// Settings are layered with koanf, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. $XDG_CONFIG_HOME/overlay/config.toml
//  3. <root>/.overlay.toml
//  4. the file given with --config
//  5. OVERLAY_* environment variables (OVERLAY_PATCH_ENGINE → patch.engine)
//  6. --set key=value pairs
//  7. dedicated command line flags, merged onto the result
//
// Overlay manifests are not configuration in this sense; see pkg/manifest.
package config
