// Package markdown renders documents for the preview pane and the preview command.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// tightStyle drops the document margins so the preview lines up with the
// editor pane.
const tightStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Style names accepted by New.
const (
	StyleAuto  = "auto"
	StyleDark  = styles.DarkStyle
	StyleLight = styles.LightStyle
	// StylePlain renders without colour, for pipes and tests.
	StylePlain = styles.NoTTYStyle
)

// Renderer wraps glamour with inkwell's configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a renderer that wraps at width. An empty style means auto.
func New(width int, style string) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	if style == "" {
		style = StyleAuto
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style {
	case StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	case StyleDark, StyleLight, StylePlain:
		opts = append(opts, glamour.WithStandardStyle(style))
	default:
		return nil, fmt.Errorf("unknown markdown style: %s", style)
	}
	opts = append(opts, glamour.WithStylesFromJSONBytes([]byte(tightStyle)))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int { return r.width }

// Style returns the style name the renderer was built with.
func (r *Renderer) Style() string { return r.style }

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// StyleForMode maps a theme mode to a markdown style.
func StyleForMode(mode string) string {
	switch mode {
	case "dark":
		return StyleDark
	case "light":
		return StyleLight
	}
	return StyleAuto
}
