package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/vlist/pkg/ui/theme"
)

type KeyBindRenderer interface {
	Render(width int) string
}

// HelpRenderer renders key binding help in a padded panel.
type HelpRenderer struct {
	theme    *theme.Theme
	keyBinds KeyBindRenderer
}

func NewHelpRenderer(t *theme.Theme, keyBinds KeyBindRenderer) *HelpRenderer {
	return &HelpRenderer{theme: t, keyBinds: keyBinds}
}

// Render returns the help panel for the given width.
func (r *HelpRenderer) Render(width int) string {
	content := lipgloss.NewStyle().
		Padding(1, 0).
		Render(r.keyBinds.Render(width))

	return r.theme.HelpStyle.Render(content)
}

// Height returns the number of lines [HelpRenderer.Render] produces.
func (r *HelpRenderer) Height(width int) int {
	return strings.Count(r.Render(width), "\n") + 1
}
