// Package ui provides the main UI for vlist.
package ui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/pkg/ui/common"
	"github.com/macropower/vlist/pkg/ui/statusbar"
	"github.com/macropower/vlist/pkg/ui/theme"
	"github.com/macropower/vlist/pkg/ui/vlist"
)

// NewProgram returns a new Tea program showing the list described by lc.
// UI settings from cfg take precedence over the matching fields of lc.
func NewProgram(cfg *Config, lc vlist.Config, opts ...tea.ProgramOption) (*tea.Program, error) {
	slog.Debug("starting vlist ui")

	m, err := newModel(cfg, lc)
	if err != nil {
		return nil, err
	}

	popts := []tea.ProgramOption{tea.WithAltScreen()}
	if *cfg.Mouse {
		popts = append(popts, tea.WithMouseCellMotion())
	}

	return tea.NewProgram(m, append(popts, opts...)...), nil
}

type model struct {
	cm   *common.CommonModel
	kb   *KeyBinds
	list *vlist.Model
}

func newModel(cfg *Config, lc vlist.Config) (*model, error) {
	cfg.EnsureDefaults()

	cm := &common.CommonModel{
		Theme:    theme.New(cfg.Theme),
		KeyBinds: cfg.KeyBinds.Common,
	}

	lc.CommonModel = cm
	lc.KeyBinds = cfg.KeyBinds.List
	lc.LineNumbers = *cfg.LineNumbers
	lc.WheelLines = cfg.WheelLines

	list, err := vlist.NewModel(lc)
	if err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	return &model{
		cm:   cm,
		kb:   cfg.KeyBinds,
		list: list,
	}, nil
}

func (m *model) Init() tea.Cmd {
	return m.list.Init()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	// Window size is received when starting up and on every resize.
	case tea.WindowSizeMsg:
		m.cm.Width = msg.Width
		m.cm.Height = msg.Height

		return m, m.list.SetSize(msg.Width, msg.Height)

	case common.StatusMessageTimeoutMsg:
		m.cm.ClearStatusMessage()

		return m, nil

	case common.ErrMsg:
		return m, m.cm.SendStatusMessage(msg.Error(), statusbar.StyleError)

	case vlist.WindowChangedMsg:
		slog.Debug("window changed",
			slog.Int("first", msg.Range.First),
			slog.Int("last", msg.Range.Last),
			slog.Int("rows", m.list.Len()),
		)

		return m, nil
	}

	_, cmd := m.list.Update(msg)

	return m, cmd
}

func (m *model) View() string {
	return m.list.View()
}

// handleGlobalKeys handles keys that work across all contexts.
func (m *model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	// Always allow suspend and ctrl+c to work, even in a prompt.
	if m.kb.Common.Suspend.Match(key) {
		return tea.Suspend, true
	}
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}

	if !m.list.Capturing() && m.kb.Common.Quit.Match(key) {
		return tea.Quit, true
	}

	return nil, false
}
