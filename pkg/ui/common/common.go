// Package common holds state shared by the UI models.
package common

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/pkg/keys"
	"github.com/macropower/vlist/pkg/ui/statusbar"
	"github.com/macropower/vlist/pkg/ui/theme"
)

// StatusMessageTimeout is how long status messages are shown.
const StatusMessageTimeout = 3 * time.Second

type CommonModel struct {
	Theme              *theme.Theme
	KeyBinds           *KeyBinds
	StatusMessageTimer *time.Timer
	StatusMessage      StatusMessage
	Width              int
	Height             int
	ShowStatusMessage  bool
}

type (
	StatusMessage struct {
		Message string
		Style   statusbar.Style
	}
	StatusMessageTimeoutMsg struct{}
)

// GetStatusBar returns a renderer for the current frame, showing the status
// message if one is active.
func (m *CommonModel) GetStatusBar() *statusbar.StatusBarRenderer {
	if m.ShowStatusMessage && m.StatusMessage.Message != "" {
		return statusbar.NewStatusBarRenderer(m.Theme, m.Width,
			statusbar.WithMessage(m.StatusMessage.Message, m.StatusMessage.Style))
	}

	return statusbar.NewStatusBarRenderer(m.Theme, m.Width)
}

// SendStatusMessage shows msg in the status bar until the timeout fires.
// A newer message restarts the timeout.
func (m *CommonModel) SendStatusMessage(msg string, style statusbar.Style) tea.Cmd {
	m.ShowStatusMessage = true
	m.StatusMessage = StatusMessage{
		Message: msg,
		Style:   style,
	}

	if m.StatusMessageTimer != nil {
		m.StatusMessageTimer.Stop()
	}

	m.StatusMessageTimer = time.NewTimer(StatusMessageTimeout)

	return WaitForStatusMessageTimeout(m.StatusMessageTimer)
}

// ClearStatusMessage hides the status message.
func (m *CommonModel) ClearStatusMessage() {
	m.ShowStatusMessage = false
}

type ErrMsg struct{ Err error } //nolint:errname // Tea message.

func (e ErrMsg) Error() string { return e.Err.Error() }

// WaitForStatusMessageTimeout returns a command that fires when t does. A
// stopped timer never fires, so superseded waits simply never return.
func WaitForStatusMessageTimeout(t *time.Timer) tea.Cmd {
	return func() tea.Msg {
		<-t.C

		return StatusMessageTimeoutMsg{}
	}
}

// KeyBinds are the bindings handled by the top-level model.
type KeyBinds struct {
	Quit    *keys.KeyBind `json:"quit,omitempty"`
	Suspend *keys.KeyBind `json:"suspend,omitempty"`
	Help    *keys.KeyBind `json:"help,omitempty"`
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Quit, keys.NewBind("quit", keys.New("q")))
	// Always ensure that ctrl+c is bound to quit.
	kb.Quit.AddKey(keys.New("ctrl+c", keys.WithAlias("⌃c"), keys.Hidden()))

	keys.SetDefaultBind(&kb.Suspend,
		keys.NewBind("suspend",
			keys.New("ctrl+z", keys.WithAlias("⌃z"), keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Help,
		keys.NewBind("toggle help",
			keys.New("?"),
		))
}

func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Quit,
		*kb.Suspend,
		*kb.Help,
	}
}
