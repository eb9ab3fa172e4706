// Package display renders the framed console blocks printed after a
// rename and when the plugin is applied.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles of one output stream. Colors follow the color
// profile of the renderer it was built from.
type Theme struct {
	frame  lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	accent lipgloss.Style
	rule   lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
}

// NewRenderer returns a renderer for w. Without color every style renders
// as plain text; with force, colors are kept even when w is not a terminal.
func NewRenderer(w io.Writer, color, force bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)

	switch {
	case !color:
		r.SetColorProfile(termenv.Ascii)
	case force:
		r.SetColorProfile(termenv.ANSI256)
	}

	return r
}

// NewTheme builds the styles on r, or on lipgloss' default renderer when r is nil
func NewTheme(r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	return &Theme{
		frame: r.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("8")),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		label:  r.NewStyle().Foreground(lipgloss.Color("12")),
		accent: r.NewStyle().Foreground(lipgloss.Color("11")),
		rule:   r.NewStyle().Foreground(lipgloss.Color("8")),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
	}
}

// RenameSummary renders the completion notice for a renamed artifact
func (t *Theme) RenameSummary(dir, name string) string {
	lines := []string{
		t.title.Render("📦 APK Successfully Generated."),
		t.label.Render("📁 Output Directory:") + " " + dir,
		t.label.Render("🏷️ APK File Name:") + " " + name,
	}

	return t.frame.Render(strings.Join(lines, "\n"))
}

// Banner renders the line printed when the plugin is applied
func (t *Theme) Banner(version, built string) string {
	parts := []string{
		"Andromeda Plugin",
		t.accent.Render(fmt.Sprintf("[v%s]", version)),
	}

	if built != "" {
		parts = append(parts, t.label.Render("["+built+"]"))
	}

	return strings.Join(parts, " ") + " applied successfully!"
}
