// Package styles holds the named lipgloss styles of overlay's terminal
// output. Defaults are embedded from styles.yaml; a user file given with
// output.styles is layered on top, style by style.
package styles

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// Theme is the YAML form of a styles file. Colors are adaptive and are
// referenced by name from Styles.
type Theme struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// ColorDef is an adaptive color: Light on light backgrounds, Dark otherwise
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one named style
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Faint      bool   `yaml:"faint,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

var (
	colors   map[string]lipgloss.AdaptiveColor
	registry map[string]lipgloss.Style
)

func init() {
	if err := Reset(); err != nil {
		panic(fmt.Sprintf("invalid embedded styles: %v", err))
	}
}

// Reset restores the embedded defaults
func Reset() error {
	colors = map[string]lipgloss.AdaptiveColor{}
	registry = map[string]lipgloss.Style{}
	return Apply(defaultStyles)
}

// LoadStyles layers the styles of a YAML file over the current ones
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return Apply(data)
}

// Apply layers the theme in data over the current styles. Colors and styles
// it names replace the current ones; everything else is kept. A theme that
// fails to parse changes nothing.
func Apply(data []byte) error {
	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return fmt.Errorf("failed to parse styles: %w", err)
	}

	for name, def := range theme.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for name, def := range theme.Styles {
		registry[name] = build(def)
	}
	return nil
}

func build(def StyleDef) lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline).
		Faint(def.Faint)

	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	return style
}

// GetStyle returns the named style, or an empty style for unknown names
func GetStyle(name string) lipgloss.Style {
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Names lists the registered styles, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
