// Package statusbar renders the single-line status bar and the help panel
// shown beneath the list.
package statusbar

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/vlist/pkg/ui/theme"
	"github.com/macropower/vlist/pkg/version"
)

const helpText = " ? Help "

type Style int

const (
	StyleNormal Style = iota
	StyleSuccess
	StyleError
)

// StatusBarRenderer renders the status bar for one frame.
type StatusBarRenderer struct {
	theme   *theme.Theme
	message string
	width   int
	style   Style
}

type StatusBarOpt func(*StatusBarRenderer)

// WithMessage replaces the note with a transient message.
func WithMessage(message string, style Style) StatusBarOpt {
	return func(r *StatusBarRenderer) {
		r.message = message
		r.style = style
	}
}

func NewStatusBarRenderer(t *theme.Theme, width int, opts ...StatusBarOpt) *StatusBarRenderer {
	r := &StatusBarRenderer{theme: t, width: width}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render lays out the logo, the note (or message), the position text, the
// scroll percentage and the help hint across the full width.
func (r *StatusBarRenderer) Render(note, position string, percent float64) string {
	logo := r.theme.LogoStyle.Render(fmt.Sprintf(" vlist %s ", version.GetVersion()))
	help := r.theme.StatusBarHelpStyle.Render(helpText)

	pct := math.Max(0, math.Min(1, percent))
	pos := r.theme.StatusBarPosStyle.Render(fmt.Sprintf(" %s %3.f%% ", position, pct*100))

	if r.message != "" {
		note = r.message
	}

	note = strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))
	avail := max(0, r.width-ansi.StringWidth(logo)-ansi.StringWidth(pos)-ansi.StringWidth(help))
	note = truncate.StringWithTail(" "+note+" ", uint(avail), theme.Ellipsis) //nolint:gosec // Uses max.

	noteStyle := r.noteStyle()
	gap := max(0, avail-ansi.StringWidth(note))

	return logo + noteStyle.Render(note) + noteStyle.Render(strings.Repeat(" ", gap)) + pos + help
}

func (r *StatusBarRenderer) noteStyle() lipgloss.Style {
	switch r.style {
	case StyleError:
		return r.theme.StatusBarErrorStyle
	case StyleSuccess:
		return r.theme.StatusBarMessageStyle
	default:
		return r.theme.StatusBarStyle
	}
}
