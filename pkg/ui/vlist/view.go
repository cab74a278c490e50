package vlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/macropower/vlist/pkg/ui/theme"
)

func (m *Model) View() string {
	parts := []string{m.listView()}

	if m.mode == modeNormal {
		parts = append(parts, m.statusBarView())
	} else {
		parts = append(parts, m.promptView())
	}

	if m.ShowHelp {
		parts = append(parts, m.helpRenderer.Render(m.width))
	}

	return lipgloss.JoinVertical(lipgloss.Top, parts...)
}

// listView renders the visible slice of the materialized rows. Lines that
// fall in the spacer padding are left blank until the next recompute.
func (m *Model) listView() string {
	height := m.region.ClientHeight()
	if height == 0 {
		return ""
	}

	content := m.contentLines()
	offset := m.region.ContentOffset()
	lines := make([]string, height)

	for i := range lines {
		j := offset + i
		if j >= 0 && j < len(content) {
			lines[i] = content[j]
		}
	}

	return strings.Join(lines, "\n")
}

// contentLines lays out the materialized rows, each padded to the row height
// and followed by the row gap.
func (m *Model) contentLines() []string {
	g := m.engine.Geometry()
	rows := m.engine.Rows()
	lines := make([]string, 0, len(rows)*g.Extent())

	for _, row := range rows {
		rowLines := strings.Split(row, "\n")
		for i := range g.RowHeight {
			if i < len(rowLines) {
				lines = append(lines, rowLines[i])
			} else {
				lines = append(lines, "")
			}
		}

		for range g.RowGap {
			lines = append(lines, "")
		}
	}

	return lines
}

func (m *Model) renderRow(item string, index int) string {
	text := item
	if m.search.isCurrent(index) {
		text = m.cm.Theme.MatchStyle.Render(item)
	} else if m.highlight != nil {
		text = m.highlight(item)
	}

	if m.lineNumbers {
		width := len(strconv.Itoa(max(0, m.engine.Len()-1)))
		text = m.cm.Theme.LineNumberStyle.Render(fmt.Sprintf("%*d ", width, index)) + text
	}

	if m.width > 0 {
		text = ansi.Truncate(text, m.width, theme.Ellipsis)
	}

	return text
}

func (m *Model) statusBarView() string {
	note := m.src.Name()
	if m.loading {
		note += " (loading)"
	}

	return m.cm.GetStatusBar().Render(note, m.position(), m.region.Percent())
}

// position describes the visible rows and the materialized window.
func (m *Model) position() string {
	n := m.engine.Len()
	if n == 0 {
		return "no rows"
	}

	top := m.region.ScrollTop()
	first := m.engine.IndexAt(top)
	last := m.engine.IndexAt(top + max(0, m.region.ClientHeight()-1))

	return fmt.Sprintf("rows %s-%s of %s %s",
		humanize.Comma(int64(first)),
		humanize.Comma(int64(last)),
		humanize.Comma(int64(n)),
		m.engine.Range(),
	)
}

func (m *Model) promptView() string {
	prefix := ":"
	if m.mode == modeSearch {
		prefix = "/"
	}

	return m.cm.Theme.PromptStyle.Render(prefix) + m.input.View()
}
