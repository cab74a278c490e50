package vlist

import (
	"fmt"
	"slices"

	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/pkg/expr"
	"github.com/macropower/vlist/pkg/ui/statusbar"
)

// search holds the state of a fuzzy search over the loaded rows. Rows and
// queries are compared after [expr.Fold].
type search struct {
	query string

	// Folded rows, aligned with the dataset.
	folded []string

	// Matching row indices, ascending.
	matches []int
	current int
}

func (s *search) active() bool {
	return s.query != "" && len(s.matches) > 0
}

func (s *search) clear() {
	s.query = ""
	s.matches = nil
	s.current = -1
}

func (s *search) set(query string) {
	s.query = expr.Fold(query)
	s.matches = nil
	s.current = -1
	// Rows must be matched again against the new query.
	s.folded = s.folded[:0]
}

// update matches the rows that were loaded since the last call.
func (s *search) update(rows []string) {
	if s.query == "" || len(rows) <= len(s.folded) {
		return
	}

	offset := len(s.folded)
	added := make([]string, 0, len(rows)-offset)

	for _, row := range rows[offset:] {
		added = append(added, expr.Fold(row))
	}

	s.folded = append(s.folded, added...)

	found := fuzzy.Find(s.query, added)
	for _, f := range found {
		s.matches = append(s.matches, offset+f.Index)
	}

	slices.Sort(s.matches)
}

// seek selects the first match at or after row, wrapping to the first match.
func (s *search) seek(row int) {
	i, _ := slices.BinarySearch(s.matches, row)
	if i >= len(s.matches) {
		i = 0
	}

	s.current = i
}

func (s *search) step(dir int) {
	n := len(s.matches)
	s.current = ((s.current+dir)%n + n) % n
}

func (s *search) isCurrent(row int) bool {
	return s.current >= 0 && s.current < len(s.matches) && s.matches[s.current] == row
}

func (m *Model) submitSearch(query string) tea.Cmd {
	m.search.set(query)
	m.search.update(m.engine.Data())

	if !m.search.active() {
		m.search.clear()

		return m.cm.SendStatusMessage(fmt.Sprintf("no matches for %q", query), statusbar.StyleError)
	}

	m.search.seek(m.TopRow())

	return m.showMatch()
}

func (m *Model) nextMatch(dir int) tea.Cmd {
	if !m.search.active() {
		return nil
	}

	m.search.update(m.engine.Data())
	m.search.step(dir)

	return m.showMatch()
}

func (m *Model) showMatch() tea.Cmd {
	row := m.search.matches[m.search.current]
	msg := fmt.Sprintf("match %d of %d", m.search.current+1, len(m.search.matches))

	return tea.Batch(
		m.jumpTo(row),
		m.cm.SendStatusMessage(msg, statusbar.StyleNormal),
	)
}
