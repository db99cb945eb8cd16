package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics for the terminal
type GlamourRenderer struct {
	Style string // "dark", "light", "notty", "auto" or a path to a style file
	Width int    // 0 keeps glamour's default wrapping
}

// NewGlamourRenderer creates a renderer with automatic style detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output. Other formats, and
// anything glamour fails on, are returned unchanged.
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "dracula", "ascii", "pink":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
