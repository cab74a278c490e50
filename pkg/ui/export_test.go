package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/pkg/ui/vlist"
)

//nolint:ireturn // Test helper.
func NewModel(cfg *Config, lc vlist.Config) (tea.Model, error) {
	return newModel(cfg, lc)
}
