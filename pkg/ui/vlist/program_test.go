package vlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/pkg/source"
	"github.com/macropower/vlist/pkg/ui/vlist"
	"github.com/macropower/vlist/pkg/uitest"
)

func TestModel_Program(t *testing.T) {
	t.Parallel()

	m, err := vlist.NewModel(newConfig(source.NewGenerator(500)))
	require.NoError(t, err)

	tm := uitest.NewTestModel(t, m, uitest.Compact)

	uitest.WaitFor(t, tm.Output(), uitest.Contains("number 0", "of 50"))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	tm.Type("30")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	uitest.WaitFor(t, tm.Output(), uitest.Contains("number 30"))

	require.NoError(t, tm.Quit())
	uitest.Finish(t, tm)

	assert.Equal(t, 30, m.TopRow())
}

func TestModel_MatchStyle(t *testing.T) {
	uitest.UseTrueColor(t)

	m := newModel(t, newConfig(source.NewGenerator(100)), 80, 10)

	press(m, "/")
	typeText(m, "number 7")
	press(m, "enter")
	require.Equal(t, 7, m.TopRow())

	view := m.View()

	match, ok := uitest.StyleOf(view, "number 7")
	require.True(t, ok)
	assert.True(t, match.Bold)
	assert.NotEmpty(t, match.Foreground)

	other, ok := uitest.StyleOf(view, "number 8")
	require.True(t, ok)
	assert.False(t, other.Bold)
}
