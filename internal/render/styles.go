// Package render formats reports, tool listings and agent definitions for
// the terminal.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vinayprograms/edinburgh/internal/entropy"
)

// DefaultWidth is the wrap width when the caller gives none.
const DefaultWidth = 80

// Options controls terminal output.
type Options struct {
	Width int  // wrap width; 0 means DefaultWidth
	Color bool // emit ANSI styling
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

// styles is the palette for one writer. Without color every style renders
// plain text.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	dim    lipgloss.Style
	value  lipgloss.Style
	bullet lipgloss.Style
	plus   lipgloss.Style // score penalties
	minus  lipgloss.Style // score bonuses
	levels map[entropy.Level]lipgloss.Style
}

func newStyles(w io.Writer, opts Options) styles {
	r := lipgloss.NewRenderer(w)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	level := func(color string) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")), // White bold - headers
		label:  r.NewStyle().Foreground(lipgloss.Color("8")),             // Gray - labels
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		value:  r.NewStyle().Foreground(lipgloss.Color("15")),
		bullet: r.NewStyle().Foreground(lipgloss.Color("12")), // Blue
		plus:   r.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		minus:  r.NewStyle().Foreground(lipgloss.Color("10")), // Green
		levels: map[entropy.Level]lipgloss.Style{
			entropy.LevelChaos:      level("9"),   // Red
			entropy.LevelTurbulence: level("208"), // Orange
			entropy.LevelStructure:  level("11"),  // Yellow
			entropy.LevelClarity:    level("10"),  // Green
		},
	}
}
